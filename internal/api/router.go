// Package api wires handlers and middleware into the HTTP router.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/wheemin1/MobileSiteCheck/internal/api/middleware"
	"github.com/wheemin1/MobileSiteCheck/internal/api/response"
)

// Dependencies holds all handler and middleware dependencies for the router.
type Dependencies struct {
	RateLimit *mw.RateLimit

	HealthHandler     http.HandlerFunc
	AnalyzeHandler    http.HandlerFunc
	PreviewHandler    http.HandlerFunc
	GetReportHandler  http.HandlerFunc
	ReportPDFHandler  http.HandlerFunc
	ScreenshotHandler http.HandlerFunc
	RegisterHandler   http.HandlerFunc
	LoginHandler      http.HandlerFunc
}

// NewRouter builds the Chi router with the middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Logger)
	r.Use(mw.Recovery)

	r.Get("/api/health", orNotImplemented(deps.HealthHandler))

	r.Group(func(r chi.Router) {
		if deps.RateLimit != nil {
			r.Use(deps.RateLimit.Limit)
		}

		r.Post("/api/analyze", orNotImplemented(deps.AnalyzeHandler))
		r.Post("/api/preview", orNotImplemented(deps.PreviewHandler))

		r.Get("/api/reports/{id}", orNotImplemented(deps.GetReportHandler))
		r.Get("/api/reports/{id}/pdf", orNotImplemented(deps.ReportPDFHandler))
		r.Get("/api/reports/{id}/screenshot", orNotImplemented(deps.ScreenshotHandler))

		r.Post("/api/register", orNotImplemented(deps.RegisterHandler))
		r.Post("/api/login", orNotImplemented(deps.LoginHandler))
	})

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "Endpoint not yet implemented")
	}
}
