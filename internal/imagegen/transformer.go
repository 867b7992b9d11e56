package imagegen

import (
	"context"
	"encoding/base64"
	"errors"

	"photosuite/internal/encoder"
	"photosuite/internal/infra"
	"photosuite/internal/providers/genai"
)

// Service adapts an Editor to the Transformer contract and owns the error
// normalization policy: every failure becomes one *Error.
type Service struct {
	editor Editor
	logger *infra.Logger
}

// NewService wires editor with an optional logger.
func NewService(editor Editor, logger *infra.Logger) *Service {
	if logger == nil {
		logger = infra.NopLogger()
	}
	return &Service{editor: editor, logger: logger}
}

// Transform decodes img, sends it with instruction to the editor once and
// returns the first produced image as base64 text.
func (s *Service) Transform(ctx context.Context, img encoder.Encoded, instruction string) (string, error) {
	log := infra.LoggerFrom(ctx, s.logger)
	raw, err := encoder.Decode(img.Data)
	if err != nil {
		log.Error().Err(err).Str("media_type", img.MediaType).Msg("imagegen: source payload is not valid base64")
		return "", newError("the uploaded image could not be read", err)
	}

	asset, err := s.editor.EditImage(ctx, genai.ImageRequest{
		Data:        raw,
		MediaType:   img.MediaType,
		Instruction: instruction,
	})
	if err != nil {
		log.Error().Err(err).Str("media_type", img.MediaType).Int("bytes", len(raw)).Msg("imagegen: image edit failed")
		return "", newError(detailFor(err), err)
	}
	if asset == nil || len(asset.Data) == 0 {
		log.Error().Str("media_type", img.MediaType).Msg("imagegen: editor returned an empty asset")
		return "", newError("no image was returned", genai.ErrNoImage)
	}
	return base64.StdEncoding.EncodeToString(asset.Data), nil
}

func detailFor(err error) string {
	switch {
	case errors.Is(err, genai.ErrNoImage):
		return "no image was returned"
	case errors.Is(err, context.DeadlineExceeded):
		return "the request timed out"
	case errors.Is(err, context.Canceled):
		return "the request was cancelled"
	default:
		return "the image service returned an error"
	}
}

var _ Transformer = (*Service)(nil)
