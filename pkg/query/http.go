package query

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apphttp "github.com/izuchukwuMcGibson/HNG-Task-2/pkg/app/http"
	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/country"
	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/countrystore"
)

// HTTP wraps the Service to provide the read-side endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers the read-side endpoints on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Get("/countries", apphttp.HandleError(h.list))
	r.Get("/countries/{name}", apphttp.HandleError(h.getByName))
	r.Delete("/countries/{name}", apphttp.HandleError(h.deleteByName))
	r.Get("/status", apphttp.HandleError(h.status))
}

func (h *HTTP) list(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	filter := Filter{
		Region:       q.Get("region"),
		CurrencyCode: q.Get("currency"),
		Sort:         countrystore.ParseSort(q.Get("sort")),
	}

	countries, err := h.service.List(r.Context(), filter)
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusOK, country.Views(countries))
	return nil
}

func (h *HTTP) getByName(w http.ResponseWriter, r *http.Request) error {
	c, err := h.service.GetByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusOK, c.ToView())
	return nil
}

func (h *HTTP) deleteByName(w http.ResponseWriter, r *http.Request) error {
	if err := h.service.DeleteByName(r.Context(), chi.URLParam(r, "name")); err != nil {
		return err
	}

	apphttp.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Country deleted successfully",
	})
	return nil
}

type statusResponse struct {
	TotalCountries  int     `json:"total_countries"`
	LastRefreshedAt *string `json:"last_refreshed_at"`
}

func (h *HTTP) status(w http.ResponseWriter, r *http.Request) error {
	st, err := h.service.Status(r.Context())
	if err != nil {
		return err
	}

	resp := &statusResponse{TotalCountries: st.TotalCountries}
	if st.LastRefreshedAt != nil {
		ts := st.LastRefreshedAt.UTC().Format(time.RFC3339)
		resp.LastRefreshedAt = &ts
	}

	apphttp.WriteJSON(w, http.StatusOK, resp)
	return nil
}
