// AngelaMos | 2026
// handler.go

package activity

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/templates/dashboard-backend/internal/core"
	"github.com/carterperez-dev/templates/dashboard-backend/internal/middleware"
)

type AddInterestRequest struct {
	Sport string `json:"sport" validate:"required,max=100"`
	Level string `json:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
}

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.With(authenticator).Post("/user/interests", h.AddInterest)
}

func (h *Handler) AddInterest(w http.ResponseWriter, r *http.Request) {
	var req AddInterestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	interest, err := h.service.AddInterest(
		r.Context(),
		middleware.GetPrincipal(r.Context()),
		req.Sport,
		req.Level,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.JSONError(w, err)
		return
	}

	core.Created(w, interest)
}
