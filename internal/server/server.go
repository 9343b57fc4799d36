package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	middlewareLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/showcase-pro/pptx-demo-backend/internal/api"
	"github.com/showcase-pro/pptx-demo-backend/internal/extract"
	"github.com/showcase-pro/pptx-demo-backend/internal/imageres"
	"github.com/showcase-pro/pptx-demo-backend/internal/markup"
	"github.com/showcase-pro/pptx-demo-backend/internal/middleware"
	"github.com/showcase-pro/pptx-demo-backend/internal/model"
	"github.com/showcase-pro/pptx-demo-backend/internal/render"
	"github.com/showcase-pro/pptx-demo-backend/internal/service"
	"github.com/showcase-pro/pptx-demo-backend/pkg/config"
	"github.com/showcase-pro/pptx-demo-backend/pkg/logger"
)

type Server struct {
	app  *fiber.App
	done chan struct{}

	parser markup.Parser

	// 各个service
	convertSrv service.ConvertService
	extractSrv service.ExtractService
}

func New() *Server {
	return &Server{done: make(chan struct{})}
}

// Setup 创建Fiber实例并完成服务、中间件与路由的装配
func (s *Server) Setup() error {
	s.app = fiber.New(fiber.Config{
		AppName:               config.GetString("server.app_name"),
		BodyLimit:             config.GetInt("server.body_limit"),
		EnablePrintRoutes:     config.GetBool("server.print_routes"),
		DisableStartupMessage: true,
	})

	if err := s.setupServices(); err != nil {
		return err
	}

	// 配置中间件
	s.setupMiddleware()

	// 注册路由
	s.registerHandlers()
	s.setupRoutes()
	return nil
}

// App 返回已装配的Fiber实例
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start() error {
	if err := s.Setup(); err != nil {
		return err
	}

	// 启动服务器
	addr := config.GetServerAddress()
	logger.Info("服务监听地址", logger.F("address", addr))

	// 优雅关闭
	go s.gracefulShutdown()

	if err := s.app.Listen(addr); err != nil {
		logger.Error("服务停止", logger.F("error", err))
		return err
	}
	return nil
}

func (s *Server) gracefulShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("服务关闭中...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Error("服务关闭失败", logger.F("error", err))
	}

	logger.Info("服务已关闭")
}

// Shutdown 停止接收请求并释放解析器
func (s *Server) Shutdown(ctx context.Context) error {
	select {
	case <-s.done:
	default:
		close(s.done)
	}

	var err error
	if s.app != nil {
		err = s.app.ShutdownWithContext(ctx)
	}
	if s.parser != nil {
		if closeErr := s.parser.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return err
}

// setupServices 配置服务层
func (s *Server) setupServices() error {
	parser, err := markup.New(markup.Config{
		Engine:     config.GetString("extract.engine"),
		BrowserBin: config.GetString("extract.browser_bin"),
	})
	if err != nil {
		return err
	}
	s.parser = parser

	resolver := imageres.New(imageres.Config{
		Timeout:   config.GetSeconds("image.fetch_timeout"),
		MaxBytes:  config.GetInt64("image.max_bytes"),
		UserAgent: config.GetString("image.user_agent"),
	})
	renderer := render.New(render.Config{
		Defaults: model.Options{
			Author:   config.GetString("presentation.author"),
			Company:  config.GetString("presentation.company"),
			Title:    config.GetString("presentation.title"),
			Subject:  config.GetString("presentation.subject"),
			Revision: config.GetString("presentation.revision"),
		},
		MaxImageBytes: config.GetInt64("image.max_bytes"),
	}, resolver)

	timeout := config.GetSeconds("server.request_timeout")
	s.convertSrv = service.NewConvertService(renderer, timeout)
	s.extractSrv = service.NewExtractService(extract.New(parser), timeout)

	logger.Info("服务初始化完成",
		logger.F("engine", config.GetString("extract.engine")),
		logger.F("requestTimeout", timeout.String()),
	)
	return nil
}

// setupMiddleware 配置中间件
func (s *Server) setupMiddleware() {
	// 异常恢复
	s.app.Use(recover.New())

	// CORS
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetString("security.allowed_origins"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// 请求ID
	s.app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	// 访问日志
	s.app.Use(middlewareLogger.New(middlewareLogger.Config{
		Format:     "[${ip}]-${time} ${locals:requestid} ${status} ${latency} ${method} ${path} | ${error}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
	}))
}

func (s *Server) registerHandlers() {
	api.Handlers = nil
	api.RegisterHealthHandler()
	api.RegisterConvertHandler(s.convertSrv)
	api.RegisterParseHandler(s.extractSrv)
}

// setupRoutes 配置 /api 路由
func (s *Server) setupRoutes() {
	var handlers []fiber.Handler
	if config.GetBool("rate_limit.enabled") {
		handlers = append(handlers, middleware.RateLimit(
			config.GetInt("rate_limit.max_requests"),
			config.GetSeconds("rate_limit.duration"),
			s.done,
		))
	}

	apiGroup := s.app.Group("/api", handlers...)
	for _, handler := range api.Handlers {
		handler.RegisterRoutes(apiGroup)
	}

	// 健康检查
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
}
