package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// pingTimeout bounds the health-check ping so a wedged pool reports
// unavailable instead of hanging the probe.
const pingTimeout = 5 * time.Second

// PoolHealth is the payload of GET /health/db: a liveness ping plus a
// snapshot of pool utilization.
type PoolHealth struct {
	Status string `json:"status"`
	PingMS int64  `json:"ping_ms"`
	Error  string `json:"error,omitempty"`

	OpenConns    int32  `json:"open_conns"`
	IdleConns    int32  `json:"idle_conns"`
	BusyConns    int32  `json:"busy_conns"`
	MaxConns     int32  `json:"max_conns"`
	AcquireCount int64  `json:"acquire_count"`
	AcquireWait  string `json:"acquire_wait"`
}

func snapshotPool(pool *pgxpool.Pool) PoolHealth {
	s := pool.Stat()
	return PoolHealth{
		OpenConns:    s.TotalConns(),
		IdleConns:    s.IdleConns(),
		BusyConns:    s.AcquiredConns(),
		MaxConns:     s.MaxConns(),
		AcquireCount: s.AcquireCount(),
		AcquireWait:  s.AcquireDuration().String(),
	}
}

// HealthHandler serves the database health endpoint.
func HealthHandler(pool *pgxpool.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), pingTimeout)
		defer cancel()

		health := snapshotPool(pool)

		start := time.Now()
		if err := pool.Ping(ctx); err != nil {
			health.Status = "unavailable"
			health.Error = err.Error()
			return c.JSON(http.StatusServiceUnavailable, health)
		}
		health.Status = "ok"
		health.PingMS = time.Since(start).Milliseconds()
		return c.JSON(http.StatusOK, health)
	}
}
