package handlers

import (
	"net/http"

	"photosuite/internal/imagegen"
	"photosuite/internal/middleware"
	"photosuite/internal/session"
)

type sessionResponse struct {
	session.View
	Error        string `json:"error_text,omitempty"`
	DownloadName string `json:"download_name,omitempty"`
	CanGenerate  bool   `json:"can_generate"`
	ButtonLabel  string `json:"button_label"`
}

// SessionSnapshot returns the caller's session together with the derived
// presentation state.
func (a *App) SessionSnapshot(w http.ResponseWriter, r *http.Request) {
	v := a.peek(r).View()
	page := BuildPage(v, middleware.TagFromContext(r.Context()))
	a.json(w, http.StatusOK, sessionResponse{
		View:         v,
		Error:        page.Error,
		DownloadName: page.DownloadName,
		CanGenerate:  v.HasImage && !page.GenerateDisabled,
		ButtonLabel:  page.GenerateLabel,
	})
}

type styleResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Styles lists the style catalogue in display order.
func (a *App) Styles(w http.ResponseWriter, r *http.Request) {
	tag := middleware.TagFromContext(r.Context())
	keys := imagegen.Styles()
	items := make([]styleResponse, 0, len(keys))
	for _, key := range keys {
		items = append(items, styleResponse{Key: key, Label: imagegen.StyleLabel(key, tag)})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
