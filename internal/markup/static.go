package markup

import (
	"context"
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/showcase-pro/pptx-demo-backend/internal/style"
)

// StaticParser 基于 golang.org/x/net/html 的进程内解析器，可并发使用
type StaticParser struct{}

func NewStaticParser() *StaticParser {
	return &StaticParser{}
}

func (p *StaticParser) Parse(ctx context.Context, markup string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	doc := &staticDocument{
		root:     root,
		computed: make(map[*html.Node]*computedStyle),
	}
	doc.rules = collectStyleRules(root)
	return doc, nil
}

func (p *StaticParser) Close() error {
	return nil
}

// staticDocument 非并发安全，计算样式按节点缓存
type staticDocument struct {
	root     *html.Node
	rules    []styleRule
	computed map[*html.Node]*computedStyle
}

func (d *staticDocument) QueryAll(selector string) ([]Element, error) {
	return d.queryAll(d.root, selector)
}

func (d *staticDocument) Close() error {
	return nil
}

func (d *staticDocument) queryAll(n *html.Node, selector string) ([]Element, error) {
	group, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSelector, selector, err)
	}
	nodes := cascadia.QueryAll(n, group)
	elements := make([]Element, 0, len(nodes))
	for _, node := range nodes {
		elements = append(elements, &staticElement{doc: d, node: node})
	}
	return elements, nil
}

type staticElement struct {
	doc  *staticDocument
	node *html.Node
}

func (e *staticElement) QueryAll(selector string) ([]Element, error) {
	return e.doc.queryAll(e.node, selector)
}

func (e *staticElement) Query(selector string) (Element, error) {
	group, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSelector, selector, err)
	}
	node := cascadia.Query(e.node, group)
	if node == nil {
		return nil, nil
	}
	return &staticElement{doc: e.doc, node: node}, nil
}

func (e *staticElement) Text() (string, error) {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return sb.String(), nil
}

func (e *staticElement) Attr(name string) (string, error) {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			return a.Val, nil
		}
	}
	return "", nil
}

func (e *staticElement) ComputedStyle() (style.Raw, error) {
	cs := e.doc.computedStyleOf(e.node)
	return cs.raw(), nil
}

// computedStyleOf 自顶向下层叠，父节点结果先计算并缓存
func (d *staticDocument) computedStyleOf(n *html.Node) *computedStyle {
	if n == nil || n.Type != html.ElementNode {
		return rootStyle()
	}
	if cs, ok := d.computed[n]; ok {
		return cs
	}
	parent := d.computedStyleOf(n.Parent)
	cs := d.cascade(n, parent)
	d.computed[n] = cs
	return cs
}
