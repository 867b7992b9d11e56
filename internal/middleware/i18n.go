package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

type localeContextKey struct{}
type countryContextKey struct{}

var (
	LocaleKey  = localeContextKey{}
	CountryKey = countryContextKey{}
)

// DefaultLocale is used when nothing in the request identifies a language.
const DefaultLocale = "es"

// LocaleCookie remembers an explicit language choice made through ?lang=.
const LocaleCookie = "photosuite_lang"

// SupportedLocales lists the UI languages in preference order.
var SupportedLocales = []language.Tag{language.Spanish, language.English}

var localeMatcher = language.NewMatcher(SupportedLocales)

var spanishSpeaking = map[string]struct{}{
	"AR": {}, "BO": {}, "CL": {}, "CO": {}, "CR": {}, "CU": {}, "DO": {}, "EC": {},
	"ES": {}, "GQ": {}, "GT": {}, "HN": {}, "MX": {}, "NI": {}, "PA": {}, "PE": {},
	"PR": {}, "PY": {}, "SV": {}, "UY": {}, "VE": {},
}

// CountryLookup resolves ISO country codes for an IP address.
type CountryLookup func(ip string) (string, error)

// I18N stores the negotiated locale ("es" or "en") and, when known, the
// client's country in the request context.
func I18N(defaultLocale string, lookup CountryLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if choice, ok := matchLocale(r.URL.Query().Get("lang")); ok {
				http.SetCookie(w, &http.Cookie{
					Name:     LocaleCookie,
					Value:    choice,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			country := ResolveCountry(r, lookup)
			locale := detectLocale(r, defaultLocale, country)
			ctx := context.WithValue(r.Context(), LocaleKey, locale)
			if country != "" {
				ctx = context.WithValue(ctx, CountryKey, strings.ToUpper(country))
			}
			w.Header().Set("Content-Language", locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func detectLocale(r *http.Request, fallback string, country string) string {
	if v, ok := matchLocale(r.URL.Query().Get("lang")); ok {
		return v
	}
	if v, ok := matchLocale(r.Header.Get("X-Locale")); ok {
		return v
	}
	if c, err := r.Cookie(LocaleCookie); err == nil {
		if v, ok := matchLocale(c.Value); ok {
			return v
		}
	}
	if v, ok := matchLocale(r.Header.Get("Accept-Language")); ok {
		return v
	}
	if country != "" {
		if _, ok := spanishSpeaking[strings.ToUpper(country)]; ok {
			return "es"
		}
		return "en"
	}
	if v, ok := matchLocale(fallback); ok {
		return v
	}
	return DefaultLocale
}

// matchLocale maps an Accept-Language style value onto a supported locale.
func matchLocale(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, idx, conf := localeMatcher.Match(tags...)
	if conf == language.No {
		return "", false
	}
	base, _ := SupportedLocales[idx].Base()
	return base.String(), true
}

// ClientIP returns the best-effort client IP address for the request.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		parts := strings.Split(xf, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(LocaleKey).(string); ok {
		return v
	}
	return DefaultLocale
}

// TagFromContext returns the negotiated locale as a language tag.
func TagFromContext(ctx context.Context) language.Tag {
	return language.Make(LocaleFromContext(ctx))
}

// CountryFromContext returns the ISO country code stored in the request context.
func CountryFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CountryKey).(string); ok {
		return v
	}
	return ""
}

// ResolveCountry resolves a best-effort ISO country code for the given request.
func ResolveCountry(r *http.Request, lookup CountryLookup) string {
	if r == nil {
		return ""
	}
	headerHints := []string{"X-Country-Code", "X-IP-Country", "CF-IPCountry", "X-Appengine-Country"}
	for _, key := range headerHints {
		if val := strings.TrimSpace(r.Header.Get(key)); val != "" {
			return strings.ToUpper(val)
		}
	}
	if region := localeRegion(r.Header.Get("X-Locale")); region != "" {
		return region
	}
	if region := localeRegion(r.Header.Get("Accept-Language")); region != "" {
		return region
	}
	if lookup != nil {
		if ip := ClientIP(r); ip != "" {
			if country, err := lookup(ip); err == nil && country != "" {
				return strings.ToUpper(country)
			}
		}
	}
	return ""
}

// localeRegion returns the explicit region of the first tag, e.g. "MX" for
// "es-MX". Tags without a region yield "".
func localeRegion(accept string) string {
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return ""
	}
	region, conf := tags[0].Region()
	if conf != language.Exact {
		return ""
	}
	return region.String()
}
