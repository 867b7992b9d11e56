package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"photosuite/internal/http/handlers"
	"photosuite/internal/infra"
	"photosuite/internal/middleware"
)

// Options configures the router's middleware stack.
type Options struct {
	Logger          infra.Logger
	DefaultLocale   string
	CountryLookup   middleware.CountryLookup
	RateLimitPerMin int
	AllowedOrigins  []string
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Logger(opts.Logger),
		chimw.Recoverer,
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
	)

	r.Get("/", app.Index)
	r.Post("/upload", app.Upload)
	r.Post("/tool", app.SelectTool)
	r.Post("/params", app.Params)
	r.Post("/inspire", app.Inspire)
	r.Post("/reset", app.Reset)
	r.Post("/welcome/dismiss", app.DismissWelcome)
	r.With(middleware.RateLimit(opts.RateLimitPerMin, time.Minute)).Post("/generate", app.Generate)

	r.Get("/refs/{id}", app.Ref)
	r.Get("/result/download", app.DownloadResult)
	r.Get("/result/bundle", app.DownloadBundle)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.CORS(opts.AllowedOrigins))
		r.Get("/healthz", app.Health)
		r.Get("/session", app.SessionSnapshot)
		r.Get("/styles", app.Styles)
	})

	return r
}
