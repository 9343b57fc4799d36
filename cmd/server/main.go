package main

import (
	"fmt"
	"log"

	"github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/showcase-pro/pptx-demo-backend/internal/server"
	"github.com/showcase-pro/pptx-demo-backend/pkg/config"
	"github.com/showcase-pro/pptx-demo-backend/pkg/logger"
	"github.com/showcase-pro/pptx-demo-backend/pkg/util"
)

func main() {
	configFile := pflag.StringP("config", "c", "config.yaml", "配置文件路径")
	pflag.Parse()

	// 初始化配置
	if err := config.Init(*configFile); err != nil {
		log.Fatalf("初始化配置失败: %v", err)
	}

	if err := util.InitNode(config.GetUint64("server.node_id")); err != nil {
		log.Fatalf("初始化ID生成器失败: %v", err)
	}

	// 初始化日志
	logger.Init()
	defer logger.Sync()

	// 按容器CPU配额设置GOMAXPROCS
	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		logger.Info(fmt.Sprintf(format, args...))
	})); err != nil {
		logger.Warn("设置GOMAXPROCS失败", logger.F("error", err))
	}

	// 创建服务器实例
	srv := server.New()

	// 启动服务器
	if err := srv.Start(); err != nil {
		log.Fatalf("服务停止: %v", err)
	}
}
