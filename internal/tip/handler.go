// AngelaMos | 2026
// handler.go

package tip

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/tipster-platform/internal/core"
	"github.com/carterperez-dev/tipster-platform/internal/middleware"
)

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
	r.Route("/tips", func(r chi.Router) {
		r.Get("/", h.ListTips)
		r.Get("/{tipID}", h.GetTip)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.With(middleware.RequireTipster).Post("/", h.CreateTip)
			r.With(middleware.RequireTipster).Put("/{tipID}", h.UpdateTip)
			r.With(middleware.RequireTipster).Delete("/{tipID}", h.DeleteTip)
			r.Post("/{tipID}/reviews", h.AddReview)
		})
	})
}

func (h *Handler) ListTips(w http.ResponseWriter, r *http.Request) {
	params := ListTipsParams{
		Sport:     r.URL.Query().Get("sport"),
		TipsterID: r.URL.Query().Get("tipsterId"),
		Status:    r.URL.Query().Get("status"),
	}

	tips, err := h.service.ListTips(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, TipListResponse{Tips: tips})
}

func (h *Handler) GetTip(w http.ResponseWriter, r *http.Request) {
	tipID := chi.URLParam(r, "tipID")

	resp, err := h.service.GetTip(r.Context(), tipID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "tip")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) CreateTip(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	var req CreateTipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.CreateTip(r.Context(), userID, req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, resp)
}

func (h *Handler) UpdateTip(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	userRole := middleware.GetUserRole(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	tipID := chi.URLParam(r, "tipID")

	var req UpdateTipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.UpdateTip(r.Context(), tipID, userID, userRole, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "tip")
			return
		}
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "you can only update your own tips")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) DeleteTip(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	userRole := middleware.GetUserRole(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	tipID := chi.URLParam(r, "tipID")

	if err := h.service.DeleteTip(r.Context(), tipID, userID, userRole); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "tip")
			return
		}
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "you can only delete your own tips")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) AddReview(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	tipID := chi.URLParam(r, "tipID")

	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.AddReview(r.Context(), tipID, userID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "tip")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, resp)
}
