package imagegen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photosuite/internal/domain"
	"photosuite/internal/encoder"
	"photosuite/internal/providers/genai"
)

type fakeEditor struct {
	calls int
	last  genai.ImageRequest
	asset *genai.ImageAsset
	err   error
}

func (f *fakeEditor) EditImage(ctx context.Context, req genai.ImageRequest) (*genai.ImageAsset, error) {
	f.calls++
	f.last = req
	return f.asset, f.err
}

func TestServiceTransform(t *testing.T) {
	editor := &fakeEditor{asset: &genai.ImageAsset{Data: []byte("result"), MIMEType: "image/png"}}
	svc := NewService(editor, nil)

	out, err := svc.Transform(context.Background(), encoder.Encoded{Data: "c291cmNl", MediaType: "image/webp"}, "do it")
	require.NoError(t, err)
	assert.Equal(t, "cmVzdWx0", out)

	assert.Equal(t, 1, editor.calls)
	assert.Equal(t, []byte("source"), editor.last.Data)
	assert.Equal(t, "image/webp", editor.last.MediaType)
	assert.Equal(t, "do it", editor.last.Instruction)
}

func TestServiceTransformCollapsesFailures(t *testing.T) {
	tests := []struct {
		name       string
		editor     *fakeEditor
		input      string
		wantCalls  int
		wantDetail string
	}{
		{
			name:       "call error",
			editor:     &fakeEditor{err: errors.New("401 unauthorized")},
			input:      "eA==",
			wantCalls:  1,
			wantDetail: "the image service returned an error",
		},
		{
			name:       "no image part",
			editor:     &fakeEditor{err: genai.ErrNoImage},
			input:      "eA==",
			wantCalls:  1,
			wantDetail: "no image was returned",
		},
		{
			name:       "empty asset",
			editor:     &fakeEditor{asset: &genai.ImageAsset{}},
			input:      "eA==",
			wantCalls:  1,
			wantDetail: "no image was returned",
		},
		{
			name:       "deadline",
			editor:     &fakeEditor{err: context.DeadlineExceeded},
			input:      "eA==",
			wantCalls:  1,
			wantDetail: "the request timed out",
		},
		{
			name:       "invalid payload",
			editor:     &fakeEditor{},
			input:      "not base64!",
			wantCalls:  0,
			wantDetail: "the uploaded image could not be read",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewService(tc.editor, nil)
			out, err := svc.Transform(context.Background(), encoder.Encoded{Data: tc.input, MediaType: "image/png"}, "x")
			require.Error(t, err)
			assert.Empty(t, out)
			assert.ErrorIs(t, err, domain.ErrProcessingFailed)

			perr, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, tc.wantDetail, perr.Detail)
			assert.Equal(t, tc.wantCalls, tc.editor.calls, "no retries")
		})
	}
}

func TestErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("boom")
	err := newError("detail", cause)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, domain.ErrProcessingFailed)
	assert.Equal(t, "the AI model could not process the image: detail", err.Error())
}
