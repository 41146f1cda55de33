package controller

import (
	"fmt"

	"contract-iq-be/internal/dto"
	"contract-iq-be/internal/pkg/serverutils"
	"contract-iq-be/pkg/cache"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Check(ctx *fiber.Ctx) error
}

type healthController struct {
	db             *gorm.DB
	resultCache    *cache.Cache
	completionMode string
	embeddingMode  string
}

func NewHealthController(db *gorm.DB, resultCache *cache.Cache, completionMode, embeddingMode string) IHealthController {
	return &healthController{
		db:             db,
		resultCache:    resultCache,
		completionMode: completionMode,
		embeddingMode:  embeddingMode,
	}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/health/v1")
	h.Get("", c.Check)
}

func (c *healthController) Check(ctx *fiber.Ctx) error {
	components := map[string]string{
		"completion": c.completionMode,
		"embedding":  c.embeddingMode,
		"cache":      fmt.Sprintf("ok (%d entries)", c.resultCache.ItemCount()),
	}

	status := "ok"
	sqlDB, err := c.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx.Context())
	}
	if err != nil {
		components["database"] = "unreachable"
		status = "degraded"
	} else {
		components["database"] = "ok"
	}

	res := &dto.HealthResponse{
		Status:     status,
		Components: components,
	}

	return ctx.JSON(serverutils.SuccessResponse("Health check", res))
}
