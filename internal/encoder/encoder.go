package encoder

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"photosuite/internal/domain"
)

// Source supplies the raw bytes of an uploaded image and its declared type.
type Source interface {
	Open() (io.ReadCloser, error)
	MediaType() string
}

// Encoded is an image ready to be embedded in a request body.
type Encoded struct {
	Data      string `json:"data"`
	MediaType string `json:"media_type"`
}

// DataURL renders the value as a data URL suitable for an <img> src.
func (e Encoded) DataURL() string {
	return "data:" + e.MediaType + ";base64," + e.Data
}

// Encode reads src fully and returns its base64 text together with the
// declared media type. Read failures are reported as domain.ErrEncoding.
func Encode(ctx context.Context, src Source) (Encoded, error) {
	if err := ctx.Err(); err != nil {
		return Encoded{}, fmt.Errorf("%w: %v", domain.ErrEncoding, err)
	}
	if src == nil {
		return Encoded{}, fmt.Errorf("%w: no source", domain.ErrEncoding)
	}
	rc, err := src.Open()
	if err != nil {
		return Encoded{}, fmt.Errorf("%w: open: %v", domain.ErrEncoding, err)
	}
	defer rc.Close()

	var buf strings.Builder
	enc := base64.NewEncoder(base64.StdEncoding, &buf)
	if _, err := io.Copy(enc, rc); err != nil {
		return Encoded{}, fmt.Errorf("%w: read: %v", domain.ErrEncoding, err)
	}
	if err := enc.Close(); err != nil {
		return Encoded{}, fmt.Errorf("%w: flush: %v", domain.ErrEncoding, err)
	}
	return Encoded{Data: buf.String(), MediaType: src.MediaType()}, nil
}

// Decode reverses Encode's text form.
func Decode(data string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrEncoding, err)
	}
	return raw, nil
}

// Bytes is an in-memory Source. Uploads are held this way for the lifetime of
// the session.
type Bytes struct {
	Data []byte
	Type string
}

func (b Bytes) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.Data)), nil
}

func (b Bytes) MediaType() string {
	return b.Type
}

// Size returns the number of raw bytes held.
func (b Bytes) Size() int {
	return len(b.Data)
}
