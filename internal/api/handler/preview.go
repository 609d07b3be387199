package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/wheemin1/MobileSiteCheck/internal/api/response"
	"github.com/wheemin1/MobileSiteCheck/internal/audit"
	"github.com/wheemin1/MobileSiteCheck/internal/cache"
	"github.com/wheemin1/MobileSiteCheck/internal/preview"
)

// Previewer is the interface the preview handler depends on.
type Previewer interface {
	Generate(ctx context.Context, url string) (*preview.Preview, error)
}

type previewResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Screenshot  string `json:"screenshot"`
}

// NewPreviewHandler returns an http.HandlerFunc for POST /api/preview.
// Generated previews are cached by URL; a nil cache disables caching.
func NewPreviewHandler(svc Previewer, c cache.Cache, ttl time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req urlRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		u, err := audit.ValidateURL(req.URL)
		if err != nil {
			response.Error(w, http.StatusBadRequest,
				"Please enter a valid URL, e.g. https://example.com")
			return
		}

		key := cache.PreviewKey(u)
		if c != nil {
			if data, ok, err := c.Get(r.Context(), key); err == nil && ok {
				var cached previewResponse
				if json.Unmarshal(data, &cached) == nil {
					response.JSON(w, cached)
					return
				}
			}
		}

		p, err := svc.Generate(r.Context(), u)
		if err != nil {
			slog.Warn("preview generation failed", "url", u, "error", err)
			response.Error(w, http.StatusBadRequest, "Failed to generate the website preview")
			return
		}

		resp := previewResponse{
			Title:       p.Title,
			Description: p.Description,
			Screenshot:  base64.StdEncoding.EncodeToString(p.Screenshot),
		}

		if c != nil {
			if data, err := json.Marshal(resp); err == nil {
				_ = c.Set(r.Context(), key, data, ttl)
			}
		}

		response.JSON(w, resp)
	}
}
