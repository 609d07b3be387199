// Package handler contains the HTTP handlers for the MobileSiteCheck API.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wheemin1/MobileSiteCheck/internal/api/response"
	"github.com/wheemin1/MobileSiteCheck/internal/audit"
	"github.com/wheemin1/MobileSiteCheck/pkg/models"
)

// Analyzer is the interface the analyze handler depends on.
type Analyzer interface {
	Analyze(ctx context.Context, url string) (*models.AnalysisReport, error)
}

type urlRequest struct {
	URL string `json:"url"`
}

// NewAnalyzeHandler returns an http.HandlerFunc for POST /api/analyze.
func NewAnalyzeHandler(svc Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req urlRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if req.URL == "" {
			response.Error(w, http.StatusBadRequest, "url is required")
			return
		}

		report, err := svc.Analyze(r.Context(), req.URL)
		if err != nil {
			switch {
			case errors.Is(err, audit.ErrInvalidURL):
				response.Error(w, http.StatusBadRequest,
					"Please enter a valid URL, e.g. https://example.com")
			case errors.Is(err, audit.ErrAnalysisFailed):
				response.Error(w, http.StatusBadRequest,
					"Analysis failed. Please check the URL and try again.")
			default:
				response.Error(w, http.StatusInternalServerError,
					"An unexpected error occurred")
			}
			return
		}

		response.JSON(w, report)
	}
}
