// Package markup 将HTML解析为可查询的元素树，并提供元素的计算样式
//
// 提供两种引擎：static 在进程内完成解析与样式层叠，browser 借助无头浏览器读取真实的计算样式。
package markup

import (
	"context"
	"errors"
	"fmt"

	"github.com/showcase-pro/pptx-demo-backend/internal/style"
)

const (
	EngineStatic  = "static"
	EngineBrowser = "browser"
)

var (
	ErrUnknownEngine   = errors.New("unknown markup engine")
	ErrInvalidSelector = errors.New("invalid selector")
	ErrBrowser         = errors.New("browser engine failure")
)

// Parser 将HTML文本解析为文档
type Parser interface {
	Parse(ctx context.Context, html string) (Document, error)
	Close() error
}

// Document 已解析的文档，使用完毕需要 Close
type Document interface {
	// QueryAll 按文档顺序返回匹配选择器的所有元素
	QueryAll(selector string) ([]Element, error)
	Close() error
}

// Element 文档中的一个元素
type Element interface {
	QueryAll(selector string) ([]Element, error)
	// Query 返回第一个匹配的后代元素，不存在时返回 nil
	Query(selector string) (Element, error)
	// Text 所有后代文本节点拼接的内容
	Text() (string, error)
	// Attr 属性值，不存在时返回空字符串
	Attr(name string) (string, error)
	// ComputedStyle 经过层叠后的样式
	ComputedStyle() (style.Raw, error)
}

// Config 引擎配置
type Config struct {
	Engine     string
	BrowserBin string
}

// New 按配置创建解析器
func New(cfg Config) (Parser, error) {
	switch cfg.Engine {
	case "", EngineStatic:
		return NewStaticParser(), nil
	case EngineBrowser:
		return NewBrowserParser(cfg.BrowserBin), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, cfg.Engine)
	}
}
