package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/segyhp/helbflow/internal/cache"
	"github.com/segyhp/helbflow/pkg/response"
)

type HealthHandler struct {
	db      *sqlx.DB
	cache   cache.Cache
	timeout time.Duration
}

func NewHealthHandler(db *sqlx.DB, cache cache.Cache, timeout time.Duration) *HealthHandler {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HealthHandler{
		db:      db,
		cache:   cache,
		timeout: timeout,
	}
}

type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Health performs a basic health check
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}

	response.Success(w, status)
}

// Ready performs readiness check including database and cache connectivity
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Checks:    make(map[string]string),
	}

	h.check(r.Context(), &status, "database", h.db.PingContext)
	h.check(r.Context(), &status, "redis", h.cache.Ping)

	if status.Status == "error" {
		response.ServiceUnavailable(w, "Service not ready", status)
		return
	}

	response.Success(w, status)
}

func (h *HealthHandler) check(ctx context.Context, status *HealthStatus, name string, ping func(context.Context) error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	if err := ping(ctx); err != nil {
		status.Status = "error"
		status.Checks[name] = "failed: " + err.Error()
		return
	}
	status.Checks[name] = "ok"
}
