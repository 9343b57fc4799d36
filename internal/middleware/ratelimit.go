package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/showcase-pro/pptx-demo-backend/internal/constant"
	"github.com/showcase-pro/pptx-demo-backend/internal/service"
	"github.com/showcase-pro/pptx-demo-backend/pkg/logger"
)

type rateLimiter struct {
	maxRequests int
	duration    time.Duration
	now         func() time.Time
	mu          sync.Mutex
	windows     map[string]*window
}

// window 固定时间窗口内的剩余请求数
type window struct {
	remaining int
	start     time.Time
}

// NewRateLimiter 创建限流器
func NewRateLimiter(maxRequests int, duration time.Duration) *rateLimiter {
	return &rateLimiter{
		maxRequests: maxRequests,
		duration:    duration,
		now:         time.Now,
		windows:     make(map[string]*window),
	}
}

// RateLimit 按客户端IP限流的中间件，done 关闭时停止清理任务
func RateLimit(maxRequests int, duration time.Duration, done <-chan struct{}) fiber.Handler {
	limiter := NewRateLimiter(maxRequests, duration)
	limiter.StartCleanup(duration, done)
	return limiter.Handler()
}

// Handler 返回限流中间件
func (rl *rateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		clientID := c.IP()

		if !rl.allow(clientID) {
			logger.Warn("rate limit exceeded",
				logger.F("clientId", clientID),
				logger.F("path", c.Path()),
			)
			return c.Status(fiber.StatusTooManyRequests).JSON(service.Error(constant.ErrTooManyRequests))
		}

		return c.Next()
	}
}

// allow 检查是否允许请求
func (rl *rateLimiter) allow(clientID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, exists := rl.windows[clientID]

	// 新客户端或窗口已过期
	if !exists || now.Sub(w.start) >= rl.duration {
		rl.windows[clientID] = &window{
			remaining: rl.maxRequests - 1, // 减1是因为当前请求
			start:     now,
		}
		return rl.maxRequests > 0
	}

	if w.remaining > 0 {
		w.remaining--
		return true
	}

	return false
}

// cleanup 清理过期的窗口
func (rl *rateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for clientID, w := range rl.windows {
		if now.Sub(w.start) >= rl.duration*2 {
			delete(rl.windows, clientID)
		}
	}
}

// StartCleanup 启动清理任务
func (rl *rateLimiter) StartCleanup(interval time.Duration, done <-chan struct{}) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rl.cleanup()
			case <-done:
				return
			}
		}
	}()
}
