package handlers

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	"photosuite/internal/infra"
	"photosuite/internal/session"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// App holds the dependencies shared by every handler.
type App struct {
	Sessions       *session.Store
	Logger         *infra.Logger
	MaxUploadBytes int64
	SecureCookies  bool
}

// NewApp wires the handlers to a session store.
func NewApp(store *session.Store, logger *infra.Logger, maxUploadBytes int64) *App {
	if logger == nil {
		logger = infra.NopLogger()
	}
	return &App{Sessions: store, Logger: logger, MaxUploadBytes: maxUploadBytes}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, kind, msg string) {
	a.json(w, code, errorBody{Error: errorDetail{Code: kind, Message: msg}})
}

// session returns the caller's session, issuing a cookie for new ones.
func (a *App) session(w http.ResponseWriter, r *http.Request) *session.Session {
	var id string
	if c, err := r.Cookie(session.CookieName); err == nil {
		id = c.Value
	}
	newID, s := a.Sessions.Get(id)
	if newID != id {
		http.SetCookie(w, &http.Cookie{
			Name:     session.CookieName,
			Value:    newID,
			Path:     "/",
			HttpOnly: true,
			Secure:   a.SecureCookies,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return s
}

// existing returns the caller's session without creating one.
func (a *App) existing(r *http.Request) (*session.Session, bool) {
	c, err := r.Cookie(session.CookieName)
	if err != nil || c.Value == "" {
		return nil, false
	}
	return a.Sessions.Lookup(c.Value)
}

// peek is existing for rendering: callers without a session see a blank one
// that is not tracked.
func (a *App) peek(r *http.Request) *session.Session {
	if s, ok := a.existing(r); ok {
		return s
	}
	return a.Sessions.Blank()
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// done answers a state-changing request: JSON clients get the new snapshot,
// browsers are sent back to the page.
func (a *App) done(w http.ResponseWriter, r *http.Request, s *session.Session, code int) {
	if wantsJSON(r) {
		a.json(w, code, s.View())
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
