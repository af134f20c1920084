package summary

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/izuchukwuMcGibson/HNG-Task-2/pkg/app/errors"
	apphttp "github.com/izuchukwuMcGibson/HNG-Task-2/pkg/app/http"
)

// HTTP wraps the Service to provide the summary image endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers summary image endpoints on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Get("/image", apphttp.HandleError(h.serveImage))
	r.Post("/image/refresh", apphttp.HandleError(h.regenerate))
}

// serveImage serves the cached summary PNG, 404 until first generated.
func (h *HTTP) serveImage(w http.ResponseWriter, r *http.Request) error {
	path := h.service.ImagePath()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return apperrors.ResourceNotFoundError(err, "Summary image not generated yet")
		}
		return apperrors.GeneralError(err)
	}

	w.Header().Set("Content-Type", "image/png")
	http.ServeFile(w, r, path)
	return nil
}

// regenerate recomputes the projection from the store and rerenders the
// image. Render failure is surfaced to the caller here, unlike the inline
// generation during a refresh cycle.
func (h *HTTP) regenerate(w http.ResponseWriter, r *http.Request) error {
	path, err := h.service.Regenerate(r.Context())
	if err != nil {
		h.logger.Error("Summary image regeneration failed", zap.Error(err))
		return apperrors.GeneralError(err)
	}

	apphttp.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Summary image regenerated",
		"path":    path,
	})
	return nil
}
