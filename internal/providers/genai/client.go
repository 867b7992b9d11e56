package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	sdk "google.golang.org/genai"

	"photosuite/internal/domain"
	"photosuite/internal/infra"
)

const (
	// DefaultModel is the Gemini model able to return edited images inline.
	DefaultModel   = "gemini-2.5-flash-image"
	defaultTimeout = 120 * time.Second
)

// ErrNoImage is returned when the model answered without an inline image.
var ErrNoImage = errors.New("no image returned by the model")

// Options controls how the Gemini client is configured.
type Options struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// ContentGenerator is the slice of the genai SDK used here. *sdk.Models
// satisfies it; tests provide fakes.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*sdk.Content, config *sdk.GenerateContentConfig) (*sdk.GenerateContentResponse, error)
}

// Client is a thin facade over the genai SDK for single-shot image edits.
type Client struct {
	models ContentGenerator
	model  string
	logger *infra.Logger
}

// ImageRequest carries one edit: the raw source image and the instruction.
type ImageRequest struct {
	Data        []byte
	MediaType   string
	Instruction string
}

// ImageAsset is the first inline image found in the model response.
type ImageAsset struct {
	Data     []byte
	MIMEType string
}

// NewClient constructs a Gemini client backed by the genai SDK.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("genai: %w", domain.ErrMissingAPIKey)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	cfg := &sdk.ClientConfig{
		APIKey:     apiKey,
		Backend:    sdk.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		cfg.HTTPOptions = sdk.HTTPOptions{BaseURL: base}
	}
	sc, err := sdk.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("genai: create client: %w", err)
	}
	return NewClientWithGenerator(sc.Models, opts.Model, opts.Logger), nil
}

// NewClientWithGenerator wires an arbitrary ContentGenerator.
func NewClientWithGenerator(models ContentGenerator, model string, logger *infra.Logger) *Client {
	model = strings.TrimPrefix(strings.TrimSpace(model), "models/")
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = infra.NopLogger()
	}
	return &Client{models: models, model: model, logger: logger}
}

// Model returns the configured Gemini model identifier.
func (c *Client) Model() string {
	return c.model
}

// EditImage sends the image and instruction in one request asking for an
// image-typed response, and returns the first inline image part.
func (c *Client) EditImage(ctx context.Context, req ImageRequest) (*ImageAsset, error) {
	if len(req.Data) == 0 {
		return nil, errors.New("genai: empty source image")
	}
	parts := []*sdk.Part{
		sdk.NewPartFromBytes(req.Data, req.MediaType),
		sdk.NewPartFromText(req.Instruction),
	}
	contents := []*sdk.Content{sdk.NewContentFromParts(parts, sdk.RoleUser)}
	config := &sdk.GenerateContentConfig{
		ResponseModalities: []string{string(sdk.ModalityImage)},
	}

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("genai: generate content: %w", err)
	}

	asset, err := firstInlineImage(resp)
	if err != nil {
		return nil, err
	}
	infra.LoggerFrom(ctx, c.logger).Debug().
		Str("model", c.model).
		Str("mime", asset.MIMEType).
		Int("bytes", len(asset.Data)).
		Dur("elapsed", time.Since(start)).
		Msg("genai: received edited image")
	return asset, nil
}

func firstInlineImage(resp *sdk.GenerateContentResponse) (*ImageAsset, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return nil, fmt.Errorf("%w (prompt blocked: %s)", ErrNoImage, resp.PromptFeedback.BlockReason)
		}
		return nil, ErrNoImage
	}
	candidate := resp.Candidates[0]
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			return &ImageAsset{Data: part.InlineData.Data, MIMEType: part.InlineData.MIMEType}, nil
		}
	}
	if candidate.FinishReason != sdk.FinishReasonUnspecified && candidate.FinishReason != sdk.FinishReasonStop {
		return nil, fmt.Errorf("%w (finish reason: %s)", ErrNoImage, candidate.FinishReason)
	}
	return nil, ErrNoImage
}
