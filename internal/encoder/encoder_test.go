package encoder

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photosuite/internal/domain"
)

type failingSource struct {
	openErr error
}

func (f failingSource) Open() (io.ReadCloser, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return io.NopCloser(errReader{}), nil
}

func (f failingSource) MediaType() string { return "image/png" }

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestEncode(t *testing.T) {
	enc, err := Encode(context.Background(), Bytes{Data: []byte("hello"), Type: "image/jpeg"})
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8=", enc.Data)
	assert.Equal(t, "image/jpeg", enc.MediaType)
	assert.Equal(t, "data:image/jpeg;base64,aGVsbG8=", enc.DataURL())

	raw, err := Decode(enc.Data)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(raw))
}

func TestEncodeFailures(t *testing.T) {
	t.Run("open error", func(t *testing.T) {
		_, err := Encode(context.Background(), failingSource{openErr: errors.New("permission denied")})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrEncoding)
	})

	t.Run("read error", func(t *testing.T) {
		_, err := Encode(context.Background(), failingSource{})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrEncoding)
		assert.Contains(t, err.Error(), "disk gone")
	})

	t.Run("nil source", func(t *testing.T) {
		_, err := Encode(context.Background(), nil)
		assert.ErrorIs(t, err, domain.ErrEncoding)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Encode(ctx, Bytes{Data: []byte("x"), Type: "image/png"})
		assert.ErrorIs(t, err, domain.ErrEncoding)
	})
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode("***")
	assert.ErrorIs(t, err, domain.ErrEncoding)
}
