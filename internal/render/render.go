// Package render 按顺序将幻灯片描述绘制到演示文稿中
package render

import (
	"context"
	"fmt"

	"github.com/showcase-pro/pptx-demo-backend/internal/imageres"
	"github.com/showcase-pro/pptx-demo-backend/internal/layout"
	"github.com/showcase-pro/pptx-demo-backend/internal/model"
	"github.com/showcase-pro/pptx-demo-backend/pkg/logger"
	"github.com/showcase-pro/pptx-demo-backend/pkg/pptgen"
)

// ImageResolver 解析图片引用
type ImageResolver interface {
	Resolve(ctx context.Context, ref string) imageres.Result
}

// Config 渲染配置，启动时构造一次
type Config struct {
	// Defaults 请求未提供的元数据使用此处的值
	Defaults model.Options
	// MaxImageBytes 单张图片大小上限
	MaxImageBytes int64
}

// Renderer 无共享可变状态，可并发使用
type Renderer struct {
	cfg      Config
	resolver ImageResolver
}

func New(cfg Config, resolver ImageResolver) *Renderer {
	return &Renderer{cfg: cfg, resolver: resolver}
}

// Render 生成演示文稿，上下文取消时返回错误且不返回任何结果
func (r *Renderer) Render(ctx context.Context, slides []model.Slide, opts model.Options) (*pptgen.Presentation, error) {
	meta := opts.Merge(r.cfg.Defaults)

	pres := pptgen.NewPresentation()
	pres.SetProperties(pptgen.Properties{
		Author:     meta.Author,
		Company:    meta.Company,
		Title:      meta.Title,
		Subject:    meta.Subject,
		Revision:   meta.Revision,
		Identifier: meta.ID,
	})
	pres.SetMaxImageBytes(r.cfg.MaxImageBytes)
	registerThemes(pres)

	for i, s := range slides {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		slide := pres.AddSlide(themeFor(pres, s.MasterName, i+1))
		prims := layout.Build(s)
		logger.Debug("绘制幻灯片",
			logger.F("slide", i+1),
			logger.F("layout", layout.Resolve(s.Layout)),
			logger.F("primitives", len(prims)))

		if err := r.paint(ctx, slide, prims); err != nil {
			return nil, err
		}
	}

	pres.LogStructure()
	return pres, nil
}

// RenderBase64 生成演示文稿并返回 base64 编码
func (r *Renderer) RenderBase64(ctx context.Context, slides []model.Slide, opts model.Options) (string, error) {
	pres, err := r.Render(ctx, slides, opts)
	if err != nil {
		return "", err
	}
	data, err := pres.Base64()
	if err != nil {
		return "", fmt.Errorf("encode presentation: %w", err)
	}
	return data, nil
}

func (r *Renderer) paint(ctx context.Context, slide *pptgen.Slide, prims []layout.Primitive) error {
	for _, p := range prims {
		switch p.Kind {
		case layout.KindText:
			slide.AddText(p.Text, geometry(p.Box), textOptions(p.Style))
		case layout.KindBullets:
			items := make([]pptgen.BulletItem, 0, len(p.Items))
			for _, it := range p.Items {
				items = append(items, pptgen.BulletItem{Text: it.Text, IndentLevel: it.IndentLevel})
			}
			slide.AddBulletList(items, geometry(p.Box), textOptions(p.Style))
		case layout.KindLine:
			slide.AddLine(geometry(p.Box), p.Stroke.Color, p.Stroke.Width)
		case layout.KindRect:
			slide.AddRect(geometry(p.Box), p.Fill, p.Stroke.Color, p.Stroke.Width)
		case layout.KindImage:
			if err := r.paintImage(ctx, slide, p); err != nil {
				return err
			}
		}
	}
	return nil
}

// paintImage 图片加载失败时绘制替代图元，只有上下文取消才返回错误
func (r *Renderer) paintImage(ctx context.Context, slide *pptgen.Slide, p layout.Primitive) error {
	res := r.resolver.Resolve(ctx, p.Image.Ref)
	if err := ctx.Err(); err != nil {
		return err
	}

	sizing := pptgen.SizingStretch
	if p.Image.Contain {
		sizing = pptgen.SizingContain
	}

	err := slide.AddImage(res.Ref, geometry(p.Box), sizing)
	if err == nil {
		return nil
	}

	logger.Warn("图片添加失败，使用占位图",
		logger.F("slide", slide.Number()),
		logger.F("kind", res.Kind.String()),
		logger.F("error", err))
	return r.paint(ctx, slide, p.Image.Placeholder)
}

func geometry(b layout.Box) pptgen.Geometry {
	return pptgen.Geometry{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

func textOptions(s layout.TextStyle) pptgen.TextOptions {
	return pptgen.TextOptions{
		FontSize:    s.FontSize,
		Color:       s.Color,
		FontFace:    s.FontFace,
		Bold:        s.Bold,
		Italic:      s.Italic,
		Align:       s.Align,
		VAlign:      s.VAlign,
		LineSpacing: s.LineSpacing,
	}
}
