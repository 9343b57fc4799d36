package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/showcase-pro/pptx-demo-backend/internal/constant"
	"github.com/showcase-pro/pptx-demo-backend/internal/service"
)

type ParseHandler struct {
	extractService service.ExtractService
}

func RegisterParseHandler(extractService service.ExtractService) {
	Handlers = append(Handlers, NewParseHandler(extractService))
}

func NewParseHandler(extractService service.ExtractService) *ParseHandler {
	return &ParseHandler{extractService: extractService}
}

func (h *ParseHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/parse-html", h.ParseHTML)
}

func (h *ParseHandler) ParseHTML(c *fiber.Ctx) error {
	req, err := service.DecodeParseHTMLRequest(c.Body())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(service.Error(err))
	}

	// fasthttp 请求上下文在服务关闭时取消
	slides, err := h.extractService.Extract(c.Context(), req.HTML)
	if err != nil {
		return c.Status(constant.GetErrorCode(err)).JSON(service.Error(err))
	}

	return c.JSON(service.NewParseHTMLResponse(slides))
}
