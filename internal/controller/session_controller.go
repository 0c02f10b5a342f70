package controller

import (
	"github.com/mawuli2121/Priya-Project/internal/pkg/serverutils"
	"github.com/mawuli2121/Priya-Project/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Reset(ctx *fiber.Ctx) error
}

type sessionController struct {
	analysisService service.IAnalysisService
}

func NewSessionController(analysisService service.IAnalysisService) ISessionController {
	return &sessionController{
		analysisService: analysisService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Post("reset", c.Reset)
}

// Reset discards all server-side resources for the session (best-effort)
// and clears local state, leaving the session as good as new.
func (c *sessionController) Reset(ctx *fiber.Ctx) error {
	if err := c.analysisService.Reset(ctx.Context(), serverutils.SessionID(ctx)); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Session reset", nil))
}
