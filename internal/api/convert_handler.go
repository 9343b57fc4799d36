package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/showcase-pro/pptx-demo-backend/internal/constant"
	"github.com/showcase-pro/pptx-demo-backend/internal/service"
	"github.com/showcase-pro/pptx-demo-backend/pkg/logger"
)

type ConvertHandler struct {
	convertService service.ConvertService
}

func RegisterConvertHandler(convertService service.ConvertService) {
	Handlers = append(Handlers, NewConvertHandler(convertService))
}

func NewConvertHandler(convertService service.ConvertService) *ConvertHandler {
	return &ConvertHandler{convertService: convertService}
}

func (h *ConvertHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/convert", h.Convert)
}

func (h *ConvertHandler) Convert(c *fiber.Ctx) error {
	req, err := service.DecodeConvertRequest(c.Body())
	if err != nil {
		logger.Warn("转换请求参数错误", logger.F("ip", c.IP()), logger.F("error", err))
		return c.Status(fiber.StatusBadRequest).JSON(service.Error(err))
	}

	// fasthttp 请求上下文在服务关闭时取消，进行中的图片下载随之放弃
	result, err := h.convertService.Convert(c.Context(), req)
	if err != nil {
		return c.Status(constant.GetErrorCode(err)).JSON(service.Error(err))
	}

	return c.JSON(service.NewConvertResponse(result))
}
