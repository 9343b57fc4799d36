package markup

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/showcase-pro/pptx-demo-backend/internal/style"
	"github.com/showcase-pro/pptx-demo-backend/pkg/logger"
)

const computedStyleJS = `() => {
	const s = window.getComputedStyle(this);
	return {
		fontSize: s.fontSize,
		color: s.color,
		fontFamily: s.fontFamily,
		fontWeight: s.fontWeight,
		fontStyle: s.fontStyle,
		textAlign: s.textAlign,
	};
}`

// BrowserParser 在无头浏览器中加载HTML，读取浏览器计算的样式
// 浏览器在首次解析时启动，多个请求共享同一个浏览器，每个文档使用独立页面
type BrowserParser struct {
	bin string

	mu      sync.Mutex
	browser *rod.Browser
}

// NewBrowserParser bin 为空时读取 ROD_BROWSER_BIN，仍为空则由 rod 自动下载浏览器
func NewBrowserParser(bin string) *BrowserParser {
	return &BrowserParser{bin: bin}
}

func (p *BrowserParser) ensureBrowser() (*rod.Browser, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.browser != nil {
		return p.browser, nil
	}

	l := launcher.New()
	bin := p.bin
	if bin == "" {
		bin = os.Getenv("ROD_BROWSER_BIN")
	}
	if bin != "" {
		l = l.Bin(bin)
	}
	// 容器环境中需要关闭沙箱
	if os.Getenv("CI") == "true" || bin != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		logger.Error("启动浏览器失败", logger.F("error", err))
		return nil, fmt.Errorf("%w: launch: %v", ErrBrowser, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		logger.Error("连接浏览器失败", logger.F("error", err))
		return nil, fmt.Errorf("%w: connect: %v", ErrBrowser, err)
	}
	p.browser = browser
	logger.Info("浏览器已启动")
	return browser, nil
}

func (p *BrowserParser) Parse(ctx context.Context, markup string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := p.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: create page: %v", ErrBrowser, err)
	}
	doc := &browserDocument{page: page}

	if err := page.SetDocumentContent(markup); err != nil {
		_ = doc.Close()
		return nil, fmt.Errorf("%w: set content: %v", ErrBrowser, err)
	}
	return doc, nil
}

// Close 关闭共享浏览器
func (p *BrowserParser) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.browser == nil {
		return nil
	}
	err := p.browser.Close()
	p.browser = nil
	return err
}

type browserDocument struct {
	page *rod.Page
}

func (d *browserDocument) QueryAll(selector string) ([]Element, error) {
	els, err := d.page.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSelector, selector, err)
	}
	return wrapBrowserElements(els), nil
}

// Close 请求上下文可能已取消，使用独立上下文关闭页面
func (d *browserDocument) Close() error {
	return d.page.Context(context.Background()).Close()
}

func wrapBrowserElements(els rod.Elements) []Element {
	out := make([]Element, 0, len(els))
	for _, el := range els {
		out = append(out, &browserElement{el: el})
	}
	return out
}

type browserElement struct {
	el *rod.Element
}

func (e *browserElement) QueryAll(selector string) ([]Element, error) {
	els, err := e.el.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSelector, selector, err)
	}
	return wrapBrowserElements(els), nil
}

// Query 使用不等待的 Elements 查询，避免元素不存在时阻塞
func (e *browserElement) Query(selector string) (Element, error) {
	els, err := e.el.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSelector, selector, err)
	}
	if len(els) == 0 {
		return nil, nil
	}
	return &browserElement{el: els.First()}, nil
}

func (e *browserElement) Text() (string, error) {
	res, err := e.el.Eval(`() => this.textContent`)
	if err != nil {
		return "", fmt.Errorf("%w: text: %v", ErrBrowser, err)
	}
	return res.Value.Str(), nil
}

func (e *browserElement) Attr(name string) (string, error) {
	v, err := e.el.Attribute(name)
	if err != nil {
		return "", fmt.Errorf("%w: attribute %s: %v", ErrBrowser, name, err)
	}
	if v == nil {
		return "", nil
	}
	return *v, nil
}

func (e *browserElement) ComputedStyle() (style.Raw, error) {
	res, err := e.el.Eval(computedStyleJS)
	if err != nil {
		return style.Raw{}, fmt.Errorf("%w: computed style: %v", ErrBrowser, err)
	}
	v := res.Value
	return style.Raw{
		FontSize:   v.Get("fontSize").Str(),
		Color:      v.Get("color").Str(),
		FontFamily: v.Get("fontFamily").Str(),
		FontWeight: v.Get("fontWeight").Str(),
		FontStyle:  v.Get("fontStyle").Str(),
		TextAlign:  v.Get("textAlign").Str(),
	}, nil
}
