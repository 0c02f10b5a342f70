package controller

import (
	"io"
	"strings"
	"sync"

	"github.com/mawuli2121/Priya-Project/internal/constant"
	"github.com/mawuli2121/Priya-Project/internal/dto"
	"github.com/mawuli2121/Priya-Project/internal/pkg/serverutils"
	"github.com/mawuli2121/Priya-Project/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAnalysisController interface {
	RegisterRoutes(r fiber.Router)
	Run(ctx *fiber.Ctx) error
	Info(ctx *fiber.Ctx) error
}

type analysisController struct {
	analysisService service.IAnalysisService
	sessionSecret   string

	// One run in flight per session; a second request gets a 409 instead
	// of a concurrent run on the same thread.
	running sync.Map
}

func NewAnalysisController(analysisService service.IAnalysisService, sessionSecret string) IAnalysisController {
	return &analysisController{
		analysisService: analysisService,
		sessionSecret:   sessionSecret,
	}
}

func (c *analysisController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/analysis/v1")
	h.Post("run", c.Run)
	h.Get("session", c.Info)
}

func (c *analysisController) Run(ctx *fiber.Ctx) error {
	sessionID := serverutils.SessionID(ctx)

	if _, inFlight := c.running.LoadOrStore(sessionID, struct{}{}); inFlight {
		return fiber.NewError(fiber.StatusConflict, "An analysis run is already in progress for this session")
	}
	defer c.running.Delete(sessionID)

	fileHeader, err := ctx.FormFile(constant.UploadedArchiveField)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing 'archive' file upload")
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".zip") {
		return fiber.NewError(fiber.StatusBadRequest, "Only .zip archives are accepted")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Unable to read uploaded archive")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Unable to read uploaded archive")
	}

	prompt := strings.TrimSpace(ctx.FormValue("prompt"))
	if prompt == "" {
		prompt = constant.DefaultPrompt
	}

	res, err := c.analysisService.RunAnalysis(ctx.Context(), sessionID, data, fileHeader.Filename, prompt)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Analysis complete", res))
}

func (c *analysisController) Info(ctx *fiber.Ctx) error {
	sessionID := serverutils.SessionID(ctx)
	session := c.analysisService.Session(sessionID)

	// The stream token lets the browser open the websocket; same claims as
	// the cookie, usable as a query param.
	token, err := serverutils.SignSessionToken(c.sessionSecret, sessionID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session info", dto.SessionInfoResponse{
		SessionID:   sessionID.String(),
		StreamToken: token,
		ThreadID:    session.ThreadID,
		ArchiveName: session.ArchiveName,
		RunFinished: session.RunFinished,
		HasReport:   session.HasReport(),
	}))
}
