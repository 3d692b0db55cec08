// AngelaMos | 2026
// handler.go

package dashboard

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/templates/dashboard-backend/internal/core"
	"github.com/carterperez-dev/templates/dashboard-backend/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts both views behind authentication. Neither needs the
// admin role.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/metrics", h.AdminMetrics)
		r.Get("/user/dashboard", h.UserDashboard)
	})
}

func (h *Handler) AdminMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.service.ComputeAdminMetrics(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, metrics)
}

func (h *Handler) UserDashboard(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.JSONError(w, core.UnauthorizedError(""))
		return
	}

	metrics, err := h.service.ComputeUserMetrics(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, metrics)
}
