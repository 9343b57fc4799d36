package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	config = newViper()
	once   sync.Once
)

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("PPTX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Init 初始化配置，配置文件不存在时仅使用默认值与环境变量
func Init(configFiles ...string) error {
	var err error
	once.Do(func() {
		configFile := "config.yaml"
		if len(configFiles) > 0 && configFiles[0] != "" {
			configFile = configFiles[0]
		}

		// 设置默认值
		setDefaults()

		// 兼容原有的 PORT 环境变量
		_ = config.BindEnv("server.port", "PPTX_SERVER_PORT", "PORT")

		if _, statErr := os.Stat(configFile); statErr != nil {
			if errors.Is(statErr, os.ErrNotExist) {
				return
			}
			err = fmt.Errorf("%w: %v", ErrInvalidConfig, statErr)
			return
		}

		config.SetConfigFile(configFile)
		// 读取配置文件
		if err = config.ReadInConfig(); err != nil {
			err = fmt.Errorf("%w: read config file failed: %v", ErrInvalidConfig, err)
			return
		}

		// 监听配置文件变化
		config.WatchConfig()
	})
	return err
}

// setDefaults 设置默认值
func setDefaults() {
	config.SetDefault("server.app_name", "pptx-converter")
	config.SetDefault("server.port", 8000)
	config.SetDefault("server.body_limit", 50*1024*1024)
	config.SetDefault("server.request_timeout", 120)
	config.SetDefault("server.print_routes", false)
	config.SetDefault("server.node_id", 1)

	config.SetDefault("log.filename", "logs/app.log")
	config.SetDefault("log.level", "info")
	config.SetDefault("log.console", true)
	config.SetDefault("log.max_size", 100)
	config.SetDefault("log.max_backups", 3)
	config.SetDefault("log.max_age", 28)
	config.SetDefault("log.compress", true)

	config.SetDefault("security.allowed_origins", "*")

	config.SetDefault("rate_limit.enabled", false)
	config.SetDefault("rate_limit.max_requests", 600)
	config.SetDefault("rate_limit.duration", 60)

	config.SetDefault("presentation.author", "HTML to PPTX Converter")
	config.SetDefault("presentation.company", "Demo Company")
	config.SetDefault("presentation.revision", "1.0.0")
	config.SetDefault("presentation.subject", "Converted Presentation")
	config.SetDefault("presentation.title", "Presentation")

	config.SetDefault("image.fetch_timeout", 15)
	config.SetDefault("image.max_bytes", 20*1024*1024)
	config.SetDefault("image.user_agent", "pptx-converter/1.0")

	config.SetDefault("extract.engine", "static")
	config.SetDefault("extract.browser_bin", "")
}

// Get 获取配置值
func Get(key string) interface{} {
	return config.Get(key)
}

// GetString 获取字符串配置值
func GetString(key string) string {
	return config.GetString(key)
}

// GetInt 获取整数配置值
func GetInt(key string) int {
	return config.GetInt(key)
}

// GetInt64 获取64位整数配置值
func GetInt64(key string) int64 {
	return config.GetInt64(key)
}

// GetUint64 获取64位无符号整数配置值
func GetUint64(key string) uint64 {
	return config.GetUint64(key)
}

// GetBool 获取布尔配置值
func GetBool(key string) bool {
	return config.GetBool(key)
}

// GetSeconds 将以秒为单位的整数配置转换为 time.Duration
func GetSeconds(key string) time.Duration {
	return time.Duration(config.GetInt64(key)) * time.Second
}

// Set 设置配置值
func Set(key string, value interface{}) {
	config.Set(key, value)
}

// IsSet 检查配置值是否已设置
func IsSet(key string) bool {
	return config.IsSet(key)
}

// AllSettings 获取所有配置
func AllSettings() map[string]interface{} {
	return config.AllSettings()
}

// GetServerAddress 获取服务器地址
func GetServerAddress() string {
	return fmt.Sprintf(":%d", GetInt("server.port"))
}
