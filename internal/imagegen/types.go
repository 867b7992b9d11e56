package imagegen

import (
	"context"
	"errors"
	"strings"

	"photosuite/internal/domain"
	"photosuite/internal/encoder"
	"photosuite/internal/providers/genai"
)

// Editor performs one remote image edit. *genai.Client implements it.
type Editor interface {
	EditImage(ctx context.Context, req genai.ImageRequest) (*genai.ImageAsset, error)
}

// Transformer turns an encoded image plus instruction text into an encoded
// result image. Implementations make exactly one remote call per invocation.
type Transformer interface {
	Transform(ctx context.Context, img encoder.Encoded, instruction string) (string, error)
}

// Error is the single error kind reported for any failed transformation. It
// matches domain.ErrProcessingFailed under errors.Is; Detail is a short
// diagnostic that may be shown next to the generic message.
type Error struct {
	Detail string
	cause  error
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return domain.ErrProcessingFailed.Error()
	}
	return domain.ErrProcessingFailed.Error() + ": " + e.Detail
}

func (e *Error) Is(target error) bool {
	return target == domain.ErrProcessingFailed
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(detail string, cause error) *Error {
	return &Error{Detail: strings.TrimSpace(detail), cause: cause}
}

// AsError extracts an *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
