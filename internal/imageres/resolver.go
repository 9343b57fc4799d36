// Package imageres 决定图片引用的加载方式：内嵌数据直接使用，网络地址下载后转为内嵌数据，其余视为本地路径
package imageres

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/vincent-petithory/dataurl"

	"github.com/showcase-pro/pptx-demo-backend/pkg/logger"
)

const (
	DefaultTimeout     = 15 * time.Second
	DefaultMaxBytes    = 20 << 20
	DefaultUserAgent   = "pptx-converter/1.0"
	defaultContentType = "image/jpeg"
)

const embeddedPrefix = "data:image/"

var (
	ErrFetchStatus   = errors.New("unexpected image response status")
	ErrFetchTooLarge = errors.New("image response exceeds size limit")
)

// Kind 解析结果类型
type Kind int

const (
	// KindEmbedded Ref 为 data URI
	KindEmbedded Kind = iota
	// KindFallback 下载失败，Ref 为原始地址，按路径处理
	KindFallback
	// KindLocal Ref 为本地路径
	KindLocal
)

func (k Kind) String() string {
	switch k {
	case KindEmbedded:
		return "embedded"
	case KindFallback:
		return "fallback"
	case KindLocal:
		return "local"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Result 图片解析结果
type Result struct {
	Kind Kind
	Ref  string
	// Err 仅在 KindFallback 时为下载失败原因
	Err error
}

// Config 图片下载配置，零值字段使用默认值
type Config struct {
	Timeout   time.Duration
	MaxBytes  int64
	UserAgent string
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxBytes <= 0 {
		c.MaxBytes = DefaultMaxBytes
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	return c
}

// Resolver 可并发使用
type Resolver struct {
	cfg    Config
	client *http.Client
}

func New(cfg Config) *Resolver {
	cfg = cfg.withDefaults()
	return NewWithClient(cfg, &http.Client{Timeout: cfg.Timeout})
}

// NewWithClient 使用指定的 http.Client
func NewWithClient(cfg Config, client *http.Client) *Resolver {
	return &Resolver{cfg: cfg.withDefaults(), client: client}
}

// Resolve 按顺序判断：内嵌数据、http(s) 地址、本地路径
func (r *Resolver) Resolve(ctx context.Context, ref string) Result {
	if IsEmbedded(ref) {
		return Result{Kind: KindEmbedded, Ref: stripSpaces(ref)}
	}

	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		logger.Debug("下载图片", logger.F("url", ref))
		uri, err := r.fetch(ctx, ref)
		if err != nil {
			logger.Warn("下载图片失败，按路径处理", logger.F("url", ref), logger.F("error", err))
			return Result{Kind: KindFallback, Ref: ref, Err: err}
		}
		logger.Debug("下载图片成功", logger.F("url", ref), logger.F("size", len(uri)))
		return Result{Kind: KindEmbedded, Ref: uri}
	}

	return Result{Kind: KindLocal, Ref: ref}
}

// IsEmbedded 是否为内嵌图片数据
func IsEmbedded(ref string) bool {
	return strings.HasPrefix(ref, embeddedPrefix)
}

func (r *Resolver) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", r.cfg.UserAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %d", ErrFetchStatus, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, r.cfg.MaxBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > r.cfg.MaxBytes {
		return "", ErrFetchTooLarge
	}

	return dataurl.New(data, mediaType(resp.Header.Get("Content-Type"))).String(), nil
}

func mediaType(contentType string) string {
	if contentType == "" {
		return defaultContentType
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.Contains(mt, "/") {
		return defaultContentType
	}
	return mt
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
