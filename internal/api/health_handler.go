package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/showcase-pro/pptx-demo-backend/internal/service"
)

type HealthHandler struct{}

func RegisterHealthHandler() {
	Handlers = append(Handlers, NewHealthHandler())
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(service.HealthResponse{
		Status:  "ok",
		Message: "HTML to PPTX API is running",
	})
}
