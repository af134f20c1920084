package refresh

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apphttp "github.com/izuchukwuMcGibson/HNG-Task-2/pkg/app/http"
)

// HTTP wraps the Service to provide the refresh endpoint
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers the refresh endpoint on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Post("/refresh", apphttp.HandleError(h.refresh))
}

type refreshResponse struct {
	Message         string `json:"message"`
	Total           int    `json:"total_updated_or_inserted"`
	LastRefreshedAt string `json:"last_refreshed_at"`
}

func (h *HTTP) refresh(w http.ResponseWriter, r *http.Request) error {
	result, err := h.service.Refresh(r.Context())
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusOK, &refreshResponse{
		Message:         "Countries refreshed successfully",
		Total:           result.Total,
		LastRefreshedAt: result.LastRefreshedAt.UTC().Format(time.RFC3339),
	})
	return nil
}
