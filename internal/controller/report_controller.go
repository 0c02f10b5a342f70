package controller

import (
	"fmt"

	"github.com/mawuli2121/Priya-Project/internal/dto"
	"github.com/mawuli2121/Priya-Project/internal/pkg/serverutils"
	"github.com/mawuli2121/Priya-Project/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IReportController interface {
	RegisterRoutes(r fiber.Router)
	Preview(ctx *fiber.Ctx) error
	Download(ctx *fiber.Ctx) error
	Email(ctx *fiber.Ctx) error
}

type reportController struct {
	reportService service.IReportService
}

func NewReportController(reportService service.IReportService) IReportController {
	return &reportController{
		reportService: reportService,
	}
}

func (c *reportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/report/v1")
	h.Get("", c.Preview)
	h.Get("download", c.Download)
	h.Post("email", c.Email)
}

func (c *reportController) Preview(ctx *fiber.Ctx) error {
	res, err := c.reportService.Preview(serverutils.SessionID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Report preview", res))
}

func (c *reportController) Download(ctx *fiber.Ctx) error {
	session, err := c.reportService.Download(serverutils.SessionID(ctx))
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", session.ReportName))
	return ctx.Send(session.ReportBytes)
}

func (c *reportController) Email(ctx *fiber.Ctx) error {
	var req dto.EmailReportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.reportService.Email(ctx.Context(), serverutils.SessionID(ctx), req.To); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Report sent", nil))
}
