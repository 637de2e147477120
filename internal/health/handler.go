package health

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/sangkips/registration-service/internal/handlers"
)

// Pinger is anything whose connectivity can be probed: the notification
// transport or the document store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type Handler struct {
	db     *sql.DB
	probes map[string]Pinger
}

// NewHandler checks the relational database plus any optional probes.
// Nil probes are skipped, so disabled components do not fail the check.
func NewHandler(db *sql.DB, probes map[string]Pinger) *Handler {
	active := make(map[string]Pinger, len(probes))
	for name, p := range probes {
		if p != nil {
			active[name] = p
		}
	}
	return &Handler{
		db:     db,
		probes: active,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string           `json:"status"`
	Checks    map[string]Check `json:"checks"`
	Timestamp time.Time        `json:"timestamp"`
}

// Check represents a single health check
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Health performs health checks on every configured dependency
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]Check)
	overallHealthy := true

	dbCheck := h.checkDatabase(ctx)
	checks["database"] = dbCheck
	if dbCheck.Status != "healthy" {
		overallHealthy = false
	}

	for name, p := range h.probes {
		c := checkProbe(ctx, name, p)
		checks[name] = c
		if c.Status != "healthy" {
			overallHealthy = false
		}
	}

	status := "healthy"
	statusCode := http.StatusOK
	if !overallHealthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	handlers.RespondWithJSON(w, statusCode, HealthResponse{
		Status:    status,
		Checks:    checks,
		Timestamp: time.Now(),
	})
}

// checkDatabase checks if the database is accessible
func (h *Handler) checkDatabase(ctx context.Context) Check {
	if h.db == nil {
		return Check{
			Status:  "unhealthy",
			Message: "database connection is nil",
		}
	}

	if err := h.db.PingContext(ctx); err != nil {
		return Check{
			Status:  "unhealthy",
			Message: "database connection failed: " + err.Error(),
		}
	}

	var result int
	if err := h.db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return Check{
			Status:  "unhealthy",
			Message: "database query failed: " + err.Error(),
		}
	}

	return Check{
		Status:  "healthy",
		Message: "database is accessible",
	}
}

func checkProbe(ctx context.Context, name string, p Pinger) Check {
	if err := p.Ping(ctx); err != nil {
		return Check{
			Status:  "unhealthy",
			Message: name + " connection failed: " + err.Error(),
		}
	}
	return Check{
		Status:  "healthy",
		Message: name + " is accessible",
	}
}
