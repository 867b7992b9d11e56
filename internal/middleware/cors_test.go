package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	reached := false
	h := CORS([]string{"https://app.example.com/"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	t.Run("allowed origin", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest(http.MethodGet, "/v1/session", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if !reached {
			t.Fatal("handler not reached")
		}
		if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
			t.Fatalf("Allow-Origin = %q", got)
		}
		if rr.Header().Get("Access-Control-Allow-Methods") != "" {
			t.Fatal("simple request must not carry preflight headers")
		}
	})

	t.Run("unknown origin", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest(http.MethodGet, "/v1/session", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if !reached {
			t.Fatal("handler not reached")
		}
		if rr.Header().Get("Access-Control-Allow-Origin") != "" {
			t.Fatal("unknown origin allowed")
		}
		if rr.Header().Get("Vary") != "Origin" {
			t.Fatalf("Vary = %q", rr.Header().Get("Vary"))
		}
	})

	t.Run("preflight", func(t *testing.T) {
		reached = false
		req := httptest.NewRequest(http.MethodOptions, "/v1/session", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if reached {
			t.Fatal("preflight reached handler")
		}
		if rr.Code != http.StatusNoContent {
			t.Fatalf("code = %d", rr.Code)
		}
		if got := rr.Header().Get("Access-Control-Allow-Methods"); got != "GET, OPTIONS" {
			t.Fatalf("Allow-Methods = %q", got)
		}
		if rr.Header().Get("Access-Control-Max-Age") != "600" {
			t.Fatalf("Max-Age = %q", rr.Header().Get("Access-Control-Max-Age"))
		}
	})
}
