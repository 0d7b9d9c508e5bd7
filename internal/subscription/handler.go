// AngelaMos | 2026
// handler.go

package subscription

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
	r.Route("/subscriptions", func(r chi.Router) {
		r.Use(authenticator)
		r.Post("/subscribe", h.Subscribe)
		r.Post("/unsubscribe", h.Unsubscribe)
		r.Get("/my-subscriptions", h.MySubscriptions)
		r.Get("/my-subscribers", h.MySubscribers)
		r.Get("/status/{tipsterID}", h.Status)
	})
}

func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Subscribe(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, core.ErrSelfSubscription) {
			core.BadRequest(w, "cannot subscribe to yourself")
			return
		}
		if errors.Is(err, core.ErrAlreadySubscribed) {
			core.BadRequest(w, "already subscribed to this tipster")
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "tipster")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, resp)
}

func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	var req UnsubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Unsubscribe(r.Context(), userID, req.TipsterID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "subscription")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) MySubscriptions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	subs, err := h.service.ListSubscriptions(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, SubscriptionListResponse{Subscriptions: subs})
}

func (h *Handler) MySubscribers(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	subs, err := h.service.ListSubscribers(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, SubscriptionListResponse{Subscriptions: subs})
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	tipsterID := chi.URLParam(r, "tipsterID")
	if tipsterID == "" {
		core.BadRequest(w, "tipster ID required")
		return
	}

	resp, err := h.service.GetStatus(r.Context(), userID, tipsterID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, StatusResponse{Subscription: resp})
}
