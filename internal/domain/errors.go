package domain

import "errors"

var (
	ErrValidation        = errors.New("validation failed")
	ErrEncoding          = errors.New("image encoding failed")
	ErrProcessingFailed  = errors.New("the AI model could not process the image")
	ErrUnknownTool       = errors.New("unknown tool")
	ErrUnsupportedMedia  = errors.New("unsupported media type")
	ErrMissingAPIKey     = errors.New("API key is required")
	ErrReferenceReleased = errors.New("reference already released")
)
