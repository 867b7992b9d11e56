package handlers

import "net/http"

type healthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
	LiveRefs int    `json:"live_refs"`
}

// Health reports liveness along with the in-memory session load.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Sessions: a.Sessions.Len(),
		LiveRefs: a.Sessions.Refs().Live(),
	})
}
