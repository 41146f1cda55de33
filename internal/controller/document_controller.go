package controller

import (
	"io"

	"contract-iq-be/internal/dto"
	"contract-iq-be/internal/pkg/apperrors"
	"contract-iq-be/internal/pkg/serverutils"
	"contract-iq-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	Process(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	DeleteAll(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
}

func NewDocumentController(documentService service.IDocumentService) IDocumentController {
	return &documentController{
		documentService: documentService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("upload", c.Upload)
	h.Post("process", c.Process)
	h.Get("", c.List)
	h.Delete("", c.DeleteAll)
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return apperrors.Validation("file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.Validation("failed to open uploaded file")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return apperrors.Validation("failed to read uploaded file")
	}

	res, err := c.documentService.Upload(ctx.Context(), userId, fileHeader.Filename, content)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Document uploaded and processed", res))
}

func (c *documentController) Process(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.ProcessDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.Process(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Document processed successfully", res))
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.documentService.List(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list documents", res))
}

func (c *documentController) DeleteAll(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.documentService.DeleteAll(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete documents", res))
}
