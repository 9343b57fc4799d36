// Package extract 从HTML中的 .slide 元素提取幻灯片描述
package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/showcase-pro/pptx-demo-backend/internal/markup"
	"github.com/showcase-pro/pptx-demo-backend/internal/model"
	"github.com/showcase-pro/pptx-demo-backend/internal/style"
)

const (
	SlideSelector  = ".slide"
	TitleSelector  = "h1, h2, .slide-title"
	BulletSelector = "ul li, ol li, .bullet-point"
	ImageSelector  = "img"
	TextSelector   = "p, .text-block"
)

const (
	defaultTitleColor  = "333333"
	defaultBulletColor = "4A5568"
	defaultTextColor   = "333333"
)

// 提取出的图片使用固定位置
const (
	imageX      = 3
	imageY      = 3
	imageWidth  = 4
	imageHeight = 3
)

// Extractor 无状态，可并发使用（取决于解析器）
type Extractor struct {
	parser markup.Parser
}

func New(parser markup.Parser) *Extractor {
	return &Extractor{parser: parser}
}

// Extract 按文档顺序返回每个 .slide 元素对应的幻灯片描述
func (e *Extractor) Extract(ctx context.Context, html string) ([]model.Slide, error) {
	doc, err := e.parser.Parse(ctx, html)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	elements, err := doc.QueryAll(SlideSelector)
	if err != nil {
		return nil, err
	}

	slides := make([]model.Slide, 0, len(elements))
	for i, el := range elements {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		slide, err := extractSlide(el)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
		slides = append(slides, slide)
	}
	return slides, nil
}

func extractSlide(el markup.Element) (model.Slide, error) {
	slide := model.Slide{
		Bullets:    model.Bullets{},
		TextBlocks: []model.TextBlock{},
	}

	title, err := el.Query(TitleSelector)
	if err != nil {
		return slide, err
	}
	if title != nil {
		text, raw, err := textAndStyle(title)
		if err != nil {
			return slide, err
		}
		ts := style.Normalize(raw, style.DefaultBulletFontSize, defaultTitleColor)
		slide.Title = text
		slide.TitleStyles = &ts
	}

	bullets, err := el.QueryAll(BulletSelector)
	if err != nil {
		return slide, err
	}
	for _, b := range bullets {
		text, raw, err := textAndStyle(b)
		if err != nil {
			return slide, err
		}
		slide.Bullets = append(slide.Bullets, model.Bullet{
			Text:     text,
			FontSize: style.FontSize(raw.FontSize, style.DefaultBulletFontSize),
			Color:    style.ColorHex(raw.Color, defaultBulletColor),
		})
	}

	img, err := el.Query(ImageSelector)
	if err != nil {
		return slide, err
	}
	if img != nil {
		src, err := img.Attr("src")
		if err != nil {
			return slide, err
		}
		slide.Image = &model.Image{
			URL:    src,
			X:      imageX,
			Y:      imageY,
			Width:  imageWidth,
			Height: imageHeight,
		}
	}

	blocks, err := el.QueryAll(TextSelector)
	if err != nil {
		return slide, err
	}
	for _, b := range blocks {
		text, raw, err := textAndStyle(b)
		if err != nil {
			return slide, err
		}
		ts := style.Normalize(raw, style.DefaultBodyFontSize, defaultTextColor)
		slide.TextBlocks = append(slide.TextBlocks, model.TextBlock{
			Text:       text,
			FontSize:   ts.FontSize,
			Color:      ts.Color,
			FontFamily: ts.FontFamily,
			Bold:       ts.Bold,
			Italic:     ts.Italic,
			Align:      ts.Align,
		})
	}

	return slide, nil
}

func textAndStyle(el markup.Element) (string, style.Raw, error) {
	text, err := el.Text()
	if err != nil {
		return "", style.Raw{}, err
	}
	raw, err := el.ComputedStyle()
	if err != nil {
		return "", style.Raw{}, err
	}
	return strings.TrimSpace(text), raw, nil
}
