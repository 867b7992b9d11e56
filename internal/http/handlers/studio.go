package handlers

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"photosuite/internal/domain"
	"photosuite/internal/middleware"
	"photosuite/internal/session"
	"photosuite/pkg/zip"
)

// Index renders the studio page for the caller's session.
func (a *App) Index(w http.ResponseWriter, r *http.Request) {
	s := a.peek(r)
	a.render(w, r, s, http.StatusOK, "")
}

func (a *App) render(w http.ResponseWriter, r *http.Request, s *session.Session, code int, notice string) {
	page := BuildPage(s.View(), middleware.TagFromContext(r.Context()))
	if notice != "" {
		page.Notice = page.T(notice)
	}
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		a.Logger.Error().Err(err).Msg("render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	_, _ = w.Write(buf.Bytes())
}

// fail reports a rejected request in the format the client expects.
func (a *App) fail(w http.ResponseWriter, r *http.Request, s *session.Session, code int, kind, notice string) {
	if wantsJSON(r) {
		p := NewPrinter(middleware.TagFromContext(r.Context()))
		a.error(w, code, kind, p.Sprintf(notice))
		return
	}
	a.render(w, r, s, code, notice)
}

// Upload accepts a multipart "file" field and makes it the session image.
func (a *App) Upload(w http.ResponseWriter, r *http.Request) {
	s := a.session(w, r)
	r.Body = http.MaxBytesReader(w, r.Body, a.MaxUploadBytes+(1<<20))

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.fail(w, r, s, http.StatusRequestEntityTooLarge, "too_large", msgUploadTooLarge)
			return
		}
		a.fail(w, r, s, http.StatusBadRequest, "bad_request", msgUploadMissing)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, a.MaxUploadBytes+1))
	if err != nil {
		a.Logger.Warn().Err(err).Msg("read upload")
		a.fail(w, r, s, http.StatusBadRequest, "bad_request", msgUploadMissing)
		return
	}
	if int64(len(data)) > a.MaxUploadBytes {
		a.fail(w, r, s, http.StatusRequestEntityTooLarge, "too_large", msgUploadTooLarge)
		return
	}

	mediaType := header.Header.Get("Content-Type")
	if mt, _, err := mime.ParseMediaType(mediaType); err != nil || mt == "application/octet-stream" {
		mediaType = http.DetectContentType(data)
	}

	if err := s.Upload(header.Filename, mediaType, data); err != nil {
		switch {
		case errors.Is(err, domain.ErrUnsupportedMedia):
			a.fail(w, r, s, http.StatusUnsupportedMediaType, "unsupported_media", msgUploadUnsupported)
		default:
			a.fail(w, r, s, http.StatusBadRequest, "bad_request", msgUploadMissing)
		}
		return
	}
	a.Logger.Info().Str("name", header.Filename).Str("media_type", mediaType).Int("bytes", len(data)).Msg("image uploaded")
	a.done(w, r, s, http.StatusOK)
}

// SelectTool switches the active tool from the "tool" form field.
func (a *App) SelectTool(w http.ResponseWriter, r *http.Request) {
	s := a.session(w, r)
	if err := r.ParseForm(); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid form")
		return
	}
	s.SelectTool(domain.NormalizeTool(r.PostForm.Get("tool")))
	a.done(w, r, s, http.StatusOK)
}

// Params updates whichever tool parameters are present in the form.
func (a *App) Params(w http.ResponseWriter, r *http.Request) {
	s := a.session(w, r)
	if err := r.ParseForm(); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid form")
		return
	}
	applyParams(s, r)
	a.done(w, r, s, http.StatusOK)
}

func applyParams(s *session.Session, r *http.Request) {
	if v, ok := r.PostForm["prompt"]; ok {
		s.SetCreatePrompt(strings.Join(v, ""))
	}
	if v, ok := r.PostForm["negative_prompt"]; ok {
		s.SetNegativePrompt(strings.Join(v, ""))
	}
	if v, ok := r.PostForm["style"]; ok {
		s.SelectStyle(strings.Join(v, ""))
	}
	if v, ok := r.PostForm["background_prompt"]; ok {
		s.SetBackgroundPrompt(strings.Join(v, ""))
	}
}

// Inspire fills the create prompt with a random suggestion.
func (a *App) Inspire(w http.ResponseWriter, r *http.Request) {
	s := a.session(w, r)
	if err := s.Inspire(r.Context(), middleware.LocaleFromContext(r.Context())); err != nil {
		a.Logger.Warn().Err(err).Msg("inspire")
	}
	a.done(w, r, s, http.StatusOK)
}

// Generate applies submitted parameters and runs one transformation. A
// request that cannot start (no image, already running, blank background)
// changes nothing and answers 409 to JSON clients.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	s := a.session(w, r)
	if err := r.ParseForm(); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid form")
		return
	}
	applyParams(s, r)
	if !s.Generate(r.Context()) {
		a.done(w, r, s, http.StatusConflict)
		return
	}
	a.done(w, r, s, http.StatusOK)
}

func (a *App) Reset(w http.ResponseWriter, r *http.Request) {
	s := a.session(w, r)
	s.Reset()
	a.done(w, r, s, http.StatusOK)
}

func (a *App) DismissWelcome(w http.ResponseWriter, r *http.Request) {
	s := a.session(w, r)
	s.DismissWelcome()
	a.done(w, r, s, http.StatusOK)
}

// Ref serves the original upload behind a live displayable reference.
func (a *App) Ref(w http.ResponseWriter, r *http.Request) {
	blob, ok := a.Sessions.Refs().Lookup(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", blob.MediaType)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	_, _ = w.Write(blob.Data)
}

// DownloadResult serves the generated image as an attachment named after
// the original upload.
func (a *App) DownloadResult(w http.ResponseWriter, r *http.Request) {
	s, ok := a.existing(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	data, name, ok := s.Result()
	if !ok {
		http.NotFound(w, r)
		return
	}
	p := NewPrinter(middleware.TagFromContext(r.Context()))
	filename := DownloadName(p.Sprintf(msgDownloadPrefix), name)
	w.Header().Set("Content-Type", session.ResultMediaType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	_, _ = w.Write(data)
}

// DownloadBundle serves the original upload and the generated image in one
// zip archive.
func (a *App) DownloadBundle(w http.ResponseWriter, r *http.Request) {
	s, ok := a.existing(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	data, name, ok := s.Result()
	original, hasOriginal := s.Original()
	if !ok || !hasOriginal {
		http.NotFound(w, r)
		return
	}
	p := NewPrinter(middleware.TagFromContext(r.Context()))
	prefix := p.Sprintf(msgDownloadPrefix)
	archive, err := zip.Archive([]zip.Entry{
		{Filename: original.Name, Data: original.Source.Data, Modified: time.Now()},
		{Filename: DownloadName(prefix, name), Data: data, Modified: time.Now()},
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("build result bundle")
		a.error(w, http.StatusInternalServerError, "internal", "could not build archive")
		return
	}
	filename := DownloadName(prefix, strings.TrimSuffix(name, path.Ext(name))+".zip")
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	_, _ = w.Write(archive)
}
