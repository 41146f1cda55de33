package controller

import (
	"contract-iq-be/internal/dto"
	"contract-iq-be/internal/pkg/apperrors"
	"contract-iq-be/internal/pkg/serverutils"
	"contract-iq-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAnalysisController interface {
	RegisterRoutes(r fiber.Router)
	Summarize(ctx *fiber.Ctx) error
	RiskAnalysis(ctx *fiber.Ctx) error
	Query(ctx *fiber.Ctx) error
}

type analysisController struct {
	analysisService service.IAnalysisService
}

func NewAnalysisController(analysisService service.IAnalysisService) IAnalysisController {
	return &analysisController{
		analysisService: analysisService,
	}
}

func (c *analysisController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/analysis/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("summarize", c.Summarize)
	h.Post("risk", c.RiskAnalysis)
	h.Post("query", c.Query)
}

func (c *analysisController) Summarize(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.SummarizeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.analysisService.Summarize(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Summary generated", res))
}

func (c *analysisController) RiskAnalysis(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.RiskAnalysisRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.analysisService.RiskAnalysis(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Risk analysis generated", res))
}

func (c *analysisController) Query(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.analysisService.Query(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Query answered", res))
}
