package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestID(t *testing.T) {
	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{name: "caller id kept", header: "abc-123", keep: true},
		{name: "missing id issued"},
		{name: "oversized id replaced", header: strings.Repeat("a", maxRequestIDLen+1)},
		{name: "control characters replaced", header: "abc\r\nX-Evil: 1"},
		{name: "spaces replaced", header: "abc 123"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var seen string
			h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = RequestIDFromContext(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(RequestIDHeader, tc.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if seen == "" || rr.Header().Get(RequestIDHeader) != seen {
				t.Fatalf("context id = %q, header = %q", seen, rr.Header().Get(RequestIDHeader))
			}
			if tc.keep != (seen == tc.header) {
				t.Fatalf("id = %q, header = %q, keep = %v", seen, tc.header, tc.keep)
			}
		})
	}
}

func TestRequestIDFromEmptyContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := RequestIDFromContext(req.Context()); got != "" {
		t.Fatalf("RequestIDFromContext() = %q", got)
	}
}
