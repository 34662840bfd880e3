package health

import (
	"context"

	"binder-backend/internal/middleware"
	"binder-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Handlers bundles health endpoints.
type Handlers struct {
	Rdb            *redis.Client
	DB             *gorm.DB
	HealthAdminKey string
}

// Dashboard GET / — JSON health summary.
func (h *Handlers) Dashboard(c *fiber.Ctx) error {
	result := CollectHealth(c.Context(), h.Rdb, h.dbPinger())
	return c.JSON(result)
}

// JSON GET /health/json — same payload, explicit path for monitors.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	result := CollectHealth(c.Context(), h.Rdb, h.dbPinger())
	return c.JSON(result)
}

// Reset GET /health/reset — clears traffic counters; requires admin key.
func (h *Handlers) Reset(c *fiber.Ctx) error {
	if h.HealthAdminKey == "" || c.Query("key") != h.HealthAdminKey {
		return response.Unauthorized(c, "Unauthorized")
	}
	if h.Rdb != nil {
		ctx := context.Background()
		h.Rdb.Del(ctx,
			middleware.KeyReqTotal,
			middleware.KeyReqErrors,
			middleware.KeyResTime,
			middleware.KeyResCount,
			middleware.KeyStartTime,
			middleware.KeyLastReq,
		)
	}
	return response.Success(c, "Health counters reset", nil, nil)
}

type gormPinger struct{ db *gorm.DB }

func (g gormPinger) Ping() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (h *Handlers) dbPinger() DBPinger {
	if h.DB == nil {
		return nil
	}
	return gormPinger{db: h.DB}
}
