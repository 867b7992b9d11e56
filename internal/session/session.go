package session

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"strings"
	"sync"

	"photosuite/internal/domain"
	"photosuite/internal/encoder"
	"photosuite/internal/imagegen"
	"photosuite/internal/infra"
	"photosuite/internal/providers/prompt"
)

// Status is the coarse state of a session.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusReady    Status = "ready"
	StatusInFlight Status = "in_flight"
	StatusError    Status = "error"
)

// Error codes attached to a failed attempt so that the presentation layer
// can localize the message.
const (
	ErrorCodeProcessing  = "processing_failed"
	ErrorCodeValidation  = "validation"
	ErrorCodeEncoding    = "encoding"
	ErrorCodeUnknownTool = "unknown_tool"
	ErrorCodeUnknown     = "unknown"
)

// ResultMediaType is the media type used for every generated image.
const ResultMediaType = "image/png"

var allowedMediaTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/webp": {},
}

// UploadedImage is the single image owned by a session.
type UploadedImage struct {
	Name   string
	Source encoder.Bytes
	Ref    Ref
}

// Deps are the collaborators of a Session.
type Deps struct {
	Refs        *Refs
	Transformer imagegen.Transformer
	Inspirer    prompt.Inspirer
	Logger      *infra.Logger
}

func (d Deps) logger() *infra.Logger {
	if d.Logger == nil {
		return infra.NopLogger()
	}
	return d.Logger
}

// Session is the upload/transform/display state machine for one browser.
// Methods are safe for concurrent use; the lock is never held across I/O.
type Session struct {
	mu          sync.Mutex
	refs        *Refs
	transformer imagegen.Transformer
	inspirer    prompt.Inspirer
	logger      *infra.Logger

	image       *UploadedImage
	sel         domain.ToolSelection
	result      string
	errCode     string
	errMsg      string
	errDetail   string
	inFlight    bool
	showWelcome bool

	// epoch changes on Upload and Reset so that an attempt finishing after
	// either of them cannot write into the new state.
	epoch  uint64
	cancel context.CancelFunc
}

// New returns a session in the Idle state with the welcome overlay showing.
func New(deps Deps) *Session {
	refs := deps.Refs
	if refs == nil {
		refs = NewRefs()
	}
	return &Session{
		refs:        refs,
		transformer: deps.Transformer,
		inspirer:    deps.Inspirer,
		logger:      deps.logger(),
		sel:         domain.NewToolSelection(),
		showWelcome: true,
	}
}

// Upload replaces the current image. The previous displayable reference is
// released, results, errors and tool parameters are cleared and the create
// tool becomes active. Encoding is deferred until Generate.
func (s *Session) Upload(name, mediaType string, data []byte) error {
	mediaType, err := normalizeMediaType(mediaType)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: empty file", domain.ErrValidation)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "image.png"
	}
	owned := make([]byte, len(data))
	copy(owned, data)

	ref := s.refs.Acquire(Blob{Data: owned, MediaType: mediaType, Name: name})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.abandonLocked()
	s.releaseLocked()
	s.image = &UploadedImage{
		Name:   name,
		Source: encoder.Bytes{Data: owned, Type: mediaType},
		Ref:    ref,
	}
	s.result = ""
	s.clearErrorLocked()
	s.sel.Active = domain.ToolCreate
	s.sel.Create.Prompt = ""
	s.sel.Create.NegativePrompt = ""
	s.sel.Background.Prompt = ""
	s.showWelcome = false
	return nil
}

// SelectTool switches the active tool. Parameters of every tool survive.
func (s *Session) SelectTool(tool domain.Tool) {
	s.mu.Lock()
	s.sel.Active = tool
	s.mu.Unlock()
}

func (s *Session) SetCreatePrompt(v string) {
	s.mu.Lock()
	s.sel.Create.Prompt = v
	s.mu.Unlock()
}

func (s *Session) SetNegativePrompt(v string) {
	s.mu.Lock()
	s.sel.Create.NegativePrompt = v
	s.mu.Unlock()
}

// SelectStyle stores key verbatim; unknown keys are resolved when the
// instruction is built.
func (s *Session) SelectStyle(key string) {
	s.mu.Lock()
	s.sel.Create.Style = strings.TrimSpace(key)
	s.mu.Unlock()
}

func (s *Session) SetBackgroundPrompt(v string) {
	s.mu.Lock()
	s.sel.Background.Prompt = v
	s.mu.Unlock()
}

// Inspire fills the create prompt with a suggestion.
func (s *Session) Inspire(ctx context.Context, locale string) error {
	if s.inspirer == nil {
		return nil
	}
	suggestion, err := s.inspirer.Random(ctx, locale)
	if err != nil {
		return err
	}
	s.SetCreatePrompt(suggestion)
	return nil
}

// DismissWelcome hides the welcome overlay until the next Reset.
func (s *Session) DismissWelcome() {
	s.mu.Lock()
	s.showWelcome = false
	s.mu.Unlock()
}

// Generate runs one transformation for the active tool. It returns false
// without side effects when there is no image, an attempt is already in
// flight, or the active tool lacks required input. Otherwise it blocks until
// the attempt finishes and returns true; the outcome is read through View.
func (s *Session) Generate(ctx context.Context) bool {
	s.mu.Lock()
	if s.image == nil || s.inFlight || !s.sel.Submittable() {
		s.mu.Unlock()
		return false
	}
	s.inFlight = true
	s.result = ""
	s.clearErrorLocked()
	epoch := s.epoch
	src := s.image.Source
	sel := s.sel
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	encoded, err := s.run(ctx, src, sel)
	log := infra.LoggerFrom(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		log.Debug().Str("tool", string(sel.Active)).Msg("session: discarding outcome of abandoned attempt")
		return true
	}
	s.inFlight = false
	s.cancel = nil
	if err != nil {
		s.errCode, s.errMsg = describeError(err)
		if perr, ok := imagegen.AsError(err); ok {
			s.errDetail = perr.Detail
		}
		log.Warn().Err(err).Str("tool", string(sel.Active)).Str("code", s.errCode).Msg("session: transformation failed")
		return true
	}
	s.result = "data:" + ResultMediaType + ";base64," + encoded
	return true
}

func (s *Session) run(ctx context.Context, src encoder.Source, sel domain.ToolSelection) (string, error) {
	img, err := encoder.Encode(ctx, src)
	if err != nil {
		return "", err
	}
	instruction, err := imagegen.BuildInstruction(sel)
	if err != nil {
		return "", err
	}
	if s.transformer == nil {
		return "", fmt.Errorf("%w: no transformer configured", domain.ErrProcessingFailed)
	}
	return s.transformer.Transform(ctx, img, instruction)
}

// Reset returns the session to Idle: the displayable reference is released,
// every field goes back to its default and the welcome overlay shows again.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.abandonLocked()
	s.releaseLocked()
	s.image = nil
	s.sel = domain.NewToolSelection()
	s.result = ""
	s.clearErrorLocked()
	s.inFlight = false
	s.showWelcome = true
}

// Original returns the uploaded image, if any.
func (s *Session) Original() (UploadedImage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.image == nil {
		return UploadedImage{}, false
	}
	return *s.image, true
}

// Result returns the decoded generated image and the original file name.
func (s *Session) Result() ([]byte, string, bool) {
	s.mu.Lock()
	result := s.result
	var name string
	if s.image != nil {
		name = s.image.Name
	}
	s.mu.Unlock()
	if result == "" {
		return nil, "", false
	}
	raw, err := encoder.Decode(strings.TrimPrefix(result, "data:"+ResultMediaType+";base64,"))
	if err != nil {
		return nil, "", false
	}
	return raw, name, true
}

// abandonLocked detaches any attempt in flight from the session state.
func (s *Session) abandonLocked() {
	s.epoch++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.inFlight = false
}

func (s *Session) releaseLocked() {
	if s.image == nil || s.image.Ref.IsZero() {
		return
	}
	if err := s.refs.Release(s.image.Ref); err != nil {
		s.logger.Error().Err(err).Msg("session: release displayable reference")
	}
	s.image.Ref = Ref{}
}

func (s *Session) clearErrorLocked() {
	s.errCode = ""
	s.errMsg = ""
	s.errDetail = ""
}

func (s *Session) busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

func normalizeMediaType(raw string) (string, error) {
	mt, _, err := mime.ParseMediaType(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedMedia, raw)
	}
	if mt == "image/jpg" {
		mt = "image/jpeg"
	}
	if _, ok := allowedMediaTypes[mt]; !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedMedia, mt)
	}
	return mt, nil
}

func describeError(err error) (string, string) {
	const prefix = "Could not process the image. "
	if perr, ok := imagegen.AsError(err); ok {
		msg := prefix + "The AI model could not process the image."
		if perr.Detail != "" {
			msg += " (" + perr.Detail + ")"
		}
		return ErrorCodeProcessing, msg
	}
	switch {
	case errors.Is(err, domain.ErrValidation):
		return ErrorCodeValidation, prefix + "The new background description must not be empty."
	case errors.Is(err, domain.ErrEncoding):
		return ErrorCodeEncoding, prefix + "The uploaded file could not be read."
	case errors.Is(err, domain.ErrUnknownTool):
		return ErrorCodeUnknownTool, prefix + "Invalid tool selected."
	case errors.Is(err, domain.ErrProcessingFailed):
		return ErrorCodeProcessing, prefix + "The AI model could not process the image."
	default:
		return ErrorCodeUnknown, prefix + "An unknown error occurred."
	}
}
