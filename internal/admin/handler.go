// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"runtime"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/tipster-platform/internal/core"
	"github.com/carterperez-dev/tipster-platform/internal/middleware"
	"github.com/carterperez-dev/tipster-platform/internal/subscription"
	"github.com/carterperez-dev/tipster-platform/internal/tip"
	"github.com/carterperez-dev/tipster-platform/internal/user"
)

type Handler struct {
	users      *user.Service
	tips       *tip.Service
	subs       *subscription.Service
	validator  *validator.Validate
	dbStats    func() sql.DBStats
	redisStats func() *redis.PoolStats
	redisPing  func(ctx context.Context) error
	dbPing     func(ctx context.Context) error
}

type HandlerConfig struct {
	Users      *user.Service
	Tips       *tip.Service
	Subs       *subscription.Service
	DBStats    func() sql.DBStats
	RedisStats func() *redis.PoolStats
	RedisPing  func(ctx context.Context) error
	DBPing     func(ctx context.Context) error
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		users:      cfg.Users,
		tips:       cfg.Tips,
		subs:       cfg.Subs,
		validator:  validator.New(validator.WithRequiredStructEnabled()),
		dbStats:    cfg.DBStats,
		redisStats: cfg.RedisStats,
		redisPing:  cfg.RedisPing,
		dbPing:     cfg.DBPing,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/dashboard", h.GetDashboard)

		r.Get("/users", h.ListUsers)
		r.Put("/users/{userID}/role", h.UpdateUserRole)
		r.Put("/users/{userID}/activate", h.ActivateUser)
		r.Put("/users/{userID}/deactivate", h.DeactivateUser)

		r.Get("/tips", h.ListTips)
		r.Put("/tips/{tipID}/status", h.UpdateTipStatus)
		r.Delete("/tips/{tipID}", h.DeleteTip)

		r.Get("/stats", h.GetSystemStats)
		r.Get("/stats/db", h.GetDatabaseStats)
		r.Get("/stats/redis", h.GetRedisStats)
		r.Get("/stats/runtime", h.GetRuntimeStats)
	})
}

type DashboardResponse struct {
	TotalUsers          int `json:"totalUsers"`
	TotalTips           int `json:"totalTips"`
	ActiveSubscriptions int `json:"activeSubscriptions"`
	TotalReviews        int `json:"totalReviews"`
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	totalUsers, err := h.users.CountUsers(ctx)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	totalTips, err := h.tips.CountTips(ctx)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	activeSubs, err := h.subs.CountActive(ctx)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	totalReviews, err := h.tips.CountReviews(ctx)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, DashboardResponse{
		TotalUsers:          totalUsers,
		TotalTips:           totalTips,
		ActiveSubscriptions: activeSubs,
		TotalReviews:        totalReviews,
	})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	params := user.ListUsersParams{
		Role: r.URL.Query().Get("role"),
	}

	if raw := r.URL.Query().Get("is_active"); raw != "" {
		active := raw == "true"
		params.IsActive = &active
	}

	users, err := h.users.ListUsers(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, user.ToUserResponseList(users))
}

func (h *Handler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req user.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	updated, err := h.users.UpdateUserRole(r.Context(), userID, req.Role)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "invalid role")
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, user.ToUserResponse(updated))
}

func (h *Handler) ActivateUser(w http.ResponseWriter, r *http.Request) {
	h.setUserActive(w, r, true)
}

func (h *Handler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	h.setUserActive(w, r, false)
}

func (h *Handler) setUserActive(
	w http.ResponseWriter,
	r *http.Request,
	active bool,
) {
	userID := chi.URLParam(r, "userID")

	updated, err := h.users.SetUserActive(r.Context(), userID, active)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, user.ToUserResponse(updated))
}

func (h *Handler) ListTips(w http.ResponseWriter, r *http.Request) {
	params := tip.ListTipsParams{
		Status:    r.URL.Query().Get("status"),
		Sport:     r.URL.Query().Get("sport"),
		TipsterID: r.URL.Query().Get("tipsterId"),
	}

	tips, err := h.tips.ListTips(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, tip.TipListResponse{Tips: tips})
}

func (h *Handler) UpdateTipStatus(w http.ResponseWriter, r *http.Request) {
	tipID := chi.URLParam(r, "tipID")

	var req tip.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	updated, err := h.tips.UpdateTipStatus(r.Context(), tipID, req.Status)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "invalid status")
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "tip")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, updated)
}

func (h *Handler) DeleteTip(w http.ResponseWriter, r *http.Request) {
	tipID := chi.URLParam(r, "tipID")
	actorID := middleware.GetUserID(r.Context())
	actorRole := middleware.GetUserRole(r.Context())

	if err := h.tips.DeleteTip(r.Context(), tipID, actorID, actorRole); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "tip")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dbHealthy := true
	if h.dbPing != nil {
		if err := h.dbPing(ctx); err != nil {
			dbHealthy = false
		}
	}

	redisHealthy := true
	if h.redisPing != nil {
		if err := h.redisPing(ctx); err != nil {
			redisHealthy = false
		}
	}

	core.OK(w, SystemStatsResponse{
		Database: DatabaseStatus{
			Healthy: dbHealthy,
			Stats:   h.getDBStats(),
		},
		Redis: RedisStatus{
			Healthy: redisHealthy,
			Stats:   h.getRedisStats(),
		},
		Runtime: currentRuntimeStats(),
	})
}

func (h *Handler) GetDatabaseStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.getDBStats())
}

func (h *Handler) GetRedisStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.getRedisStats())
}

func (h *Handler) GetRuntimeStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, currentRuntimeStats())
}

func currentRuntimeStats() RuntimeStats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     memStats.Alloc,
		MemSys:       memStats.Sys,
		NumGC:        memStats.NumGC,
	}
}

func (h *Handler) getDBStats() *DBPoolStats {
	if h.dbStats == nil {
		return nil
	}

	stats := h.dbStats()
	return &DBPoolStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration.String(),
		MaxIdleClosed:      stats.MaxIdleClosed,
		MaxIdleTimeClosed:  stats.MaxIdleTimeClosed,
		MaxLifetimeClosed:  stats.MaxLifetimeClosed,
	}
}

func (h *Handler) getRedisStats() *RedisPoolStats {
	if h.redisStats == nil {
		return nil
	}

	stats := h.redisStats()
	return &RedisPoolStats{
		Hits:       stats.Hits,
		Misses:     stats.Misses,
		Timeouts:   stats.Timeouts,
		TotalConns: stats.TotalConns,
		IdleConns:  stats.IdleConns,
		StaleConns: stats.StaleConns,
	}
}

type SystemStatsResponse struct {
	Database DatabaseStatus `json:"database"`
	Redis    RedisStatus    `json:"redis"`
	Runtime  RuntimeStats   `json:"runtime"`
}

type DatabaseStatus struct {
	Healthy bool         `json:"healthy"`
	Stats   *DBPoolStats `json:"stats,omitempty"`
}

type RedisStatus struct {
	Healthy bool            `json:"healthy"`
	Stats   *RedisPoolStats `json:"stats,omitempty"`
}

type DBPoolStats struct {
	MaxOpenConnections int    `json:"max_open_connections"`
	OpenConnections    int    `json:"open_connections"`
	InUse              int    `json:"in_use"`
	Idle               int    `json:"idle"`
	WaitCount          int64  `json:"wait_count"`
	WaitDuration       string `json:"wait_duration"`
	MaxIdleClosed      int64  `json:"max_idle_closed"`
	MaxIdleTimeClosed  int64  `json:"max_idle_time_closed"`
	MaxLifetimeClosed  int64  `json:"max_lifetime_closed"`
}

type RedisPoolStats struct {
	Hits       uint32 `json:"hits"`
	Misses     uint32 `json:"misses"`
	Timeouts   uint32 `json:"timeouts"`
	TotalConns uint32 `json:"total_conns"`
	IdleConns  uint32 `json:"idle_conns"`
	StaleConns uint32 `json:"stale_conns"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	NumCPU       int    `json:"num_cpu"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
	MemSys       uint64 `json:"mem_sys_bytes"`
	NumGC        uint32 `json:"num_gc"`
}
