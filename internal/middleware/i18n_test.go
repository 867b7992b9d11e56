package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

type assertError string

func (e assertError) Error() string { return string(e) }

func TestDetectLocale(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		setup    func(r *http.Request)
		fallback string
		country  string
		want     string
	}{
		{
			name:   "query parameter wins",
			target: "/?lang=en",
			setup: func(r *http.Request) {
				r.Header.Set("X-Locale", "es")
			},
			want: "en",
		},
		{
			name: "x-locale overrides",
			setup: func(r *http.Request) {
				r.Header.Set("X-Locale", "EN")
			},
			country: "MX",
			want:    "en",
		},
		{
			name: "cookie used",
			setup: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: LocaleCookie, Value: "en"})
				r.Header.Set("Accept-Language", "es-ES")
			},
			want: "en",
		},
		{
			name: "accept-language used",
			setup: func(r *http.Request) {
				r.Header.Set("Accept-Language", "en-US,en;q=0.9")
			},
			want: "en",
		},
		{
			name: "accept-language regional spanish",
			setup: func(r *http.Request) {
				r.Header.Set("Accept-Language", "es-AR,en;q=0.5")
			},
			want: "es",
		},
		{
			name: "unsupported language falls through to country",
			setup: func(r *http.Request) {
				r.Header.Set("Accept-Language", "fr-FR")
			},
			country: "CO",
			want:    "es",
		},
		{
			name:    "spanish speaking country",
			country: "MX",
			want:    "es",
		},
		{
			name:    "other country falls back to en",
			country: "US",
			want:    "en",
		},
		{
			name:     "configured fallback",
			fallback: "en",
			want:     "en",
		},
		{
			name: "default to es",
			want: "es",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			target := tc.target
			if target == "" {
				target = "/"
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tc.setup != nil {
				tc.setup(req)
			}
			got := detectLocale(req, tc.fallback, tc.country)
			if got != tc.want {
				t.Fatalf("detectLocale() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestResolveCountry(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(r *http.Request)
		resolver CountryLookup
		want     string
	}{
		{
			name: "header precedence",
			setup: func(r *http.Request) {
				r.Header.Set("X-Country-Code", "mx")
				r.Header.Set("CF-IPCountry", "us")
			},
			want: "MX",
		},
		{
			name: "locale region fallback",
			setup: func(r *http.Request) {
				r.Header.Set("X-Locale", "es-CL")
			},
			want: "CL",
		},
		{
			name: "accept-language region",
			setup: func(r *http.Request) {
				r.Header.Set("Accept-Language", "en-GB,en;q=0.9")
			},
			want: "GB",
		},
		{
			name: "resolver fallback",
			resolver: func(ip string) (string, error) {
				if ip != "203.0.113.4" {
					t.Fatalf("unexpected ip: %s", ip)
				}
				return "pe", nil
			},
			want: "PE",
		},
		{
			name: "resolver error returns empty",
			resolver: func(ip string) (string, error) {
				return "", assertError("boom")
			},
			want: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "203.0.113.4:80"
			if tc.setup != nil {
				tc.setup(req)
			}
			got := ResolveCountry(req, tc.resolver)
			if got != tc.want {
				t.Fatalf("ResolveCountry() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestI18NStoresLocaleAndCookie(t *testing.T) {
	var gotLocale, gotCountry string
	h := I18N("es", func(string) (string, error) { return "us", nil })(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLocale = LocaleFromContext(r.Context())
		gotCountry = CountryFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if gotLocale != "en" || gotCountry != "US" {
		t.Fatalf("locale=%q country=%q", gotLocale, gotCountry)
	}
	if rr.Header().Get("Content-Language") != "en" {
		t.Fatalf("Content-Language = %q", rr.Header().Get("Content-Language"))
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != LocaleCookie || cookies[0].Value != "en" {
		t.Fatalf("cookies = %#v", cookies)
	}
}

func TestLocaleFromContext(t *testing.T) {
	ctx := context.Background()
	if got := LocaleFromContext(ctx); got != "es" {
		t.Fatalf("LocaleFromContext() default = %q, want %q", got, "es")
	}
	ctx = context.WithValue(ctx, LocaleKey, "en")
	if got := LocaleFromContext(ctx); got != "en" {
		t.Fatalf("LocaleFromContext() with value = %q, want %q", got, "en")
	}
	if got := TagFromContext(ctx).String(); got != "en" {
		t.Fatalf("TagFromContext() = %q", got)
	}
}
