package layout

import (
	"github.com/showcase-pro/pptx-demo-backend/internal/model"
)

const (
	defaultFontFace      = "Calibri"
	defaultTitleColor    = "2D3748"
	defaultSubtitleColor = "4A5568"
	defaultContentColor  = "4A5568"
	ruleColor            = "4472C4"
	ruleWidth            = 2
	captionColor         = "666666"

	comparisonLeftColor  = "1F4E79"
	comparisonRightColor = "70AD47"
	bulletLineSpacing    = 32
)

var (
	headingBox = Box{X: 0.5, Y: 0.5, W: 9, H: 0.8}
	ruleBox    = Box{X: 0.5, Y: 1.3, W: 9, H: 0}
)

// Resolve 未知或缺省的布局名称解析为 default
func Resolve(l model.Layout) model.Layout {
	switch l {
	case model.LayoutTitle, model.LayoutTitleContent, model.LayoutTwoColumn,
		model.LayoutComparison, model.LayoutImageWithText, model.LayoutDefault:
		return l
	default:
		return model.LayoutDefault
	}
}

// HasOverlay 除 title 与 comparison 外的布局都会追加通用图元
func HasOverlay(l model.Layout) bool {
	switch Resolve(l) {
	case model.LayoutTitle, model.LayoutComparison:
		return false
	default:
		return true
	}
}

// Build 返回一页幻灯片的全部图元：布局专属图元在前，通用图元在后
func Build(s model.Slide) []Primitive {
	prims := Primitives(s)
	if HasOverlay(s.Layout) {
		prims = append(prims, Overlay(s)...)
	}
	return prims
}

// Primitives 仅返回布局专属图元
func Primitives(s model.Slide) []Primitive {
	switch Resolve(s.Layout) {
	case model.LayoutTitle:
		return titleLayout(s)
	case model.LayoutTwoColumn:
		return twoColumnLayout(s)
	case model.LayoutComparison:
		return comparisonLayout(s)
	case model.LayoutImageWithText:
		return imageWithTextLayout(s)
	default:
		// titleContent 与 default 相同
		return contentLayout(s)
	}
}

func fontFace(s model.Slide) string {
	return orDefault(s.FontFamily, defaultFontFace)
}

func orDefault(v, d string) string {
	if v == "" {
		return d
	}
	return v
}

func align(center bool) string {
	if center {
		return "center"
	}
	return "left"
}

// centered CenterAlign 为 nil 时返回 def
func centered(s model.Slide, def bool) bool {
	if s.CenterAlign == nil {
		return def
	}
	return *s.CenterAlign
}

// heading 标题与其下方的装饰线
func heading(s model.Slide, center, withRule bool) []Primitive {
	if s.Title == "" {
		return nil
	}
	prims := []Primitive{textBox(s.Title, headingBox, TextStyle{
		FontSize: 28,
		Bold:     true,
		Color:    orDefault(s.TitleColor, defaultTitleColor),
		Align:    align(center),
		FontFace: fontFace(s),
	})}
	if withRule {
		prims = append(prims, line(ruleBox, ruleColor, ruleWidth))
	}
	return prims
}

func titleLayout(s model.Slide) []Primitive {
	center := centered(s, true)
	var prims []Primitive
	if s.Title != "" {
		prims = append(prims, textBox(s.Title, Box{X: 1, Y: 2.5, W: 8, H: 1.5}, TextStyle{
			FontSize: 40,
			Bold:     true,
			Color:    orDefault(s.TitleColor, defaultTitleColor),
			Align:    align(center),
			FontFace: fontFace(s),
		}))
	}
	if s.Subtitle != "" {
		prims = append(prims, textBox(s.Subtitle, Box{X: 1, Y: 4, W: 8, H: 1}, TextStyle{
			FontSize: 24,
			Color:    orDefault(s.SubtitleColor, defaultSubtitleColor),
			Align:    align(center),
			FontFace: fontFace(s),
		}))
	}
	return prims
}

func contentLayout(s model.Slide) []Primitive {
	return heading(s, centered(s, false), true)
}

func twoColumnLayout(s model.Slide) []Primitive {
	prims := heading(s, false, true)

	columnStyle := TextStyle{
		FontSize: 14,
		Color:    orDefault(s.ContentColor, defaultContentColor),
		Align:    "left",
		VAlign:   "top",
		FontFace: fontFace(s),
	}
	if s.LeftContent != "" {
		prims = append(prims, textBox(s.LeftContent, Box{X: 0.5, Y: 1.8, W: 4.2, H: 4}, columnStyle))
	}
	if s.RightContent != "" {
		prims = append(prims, textBox(s.RightContent, Box{X: 5, Y: 1.8, W: 4.2, H: 4}, columnStyle))
	}
	return prims
}

func comparisonLayout(s model.Slide) []Primitive {
	prims := heading(s, true, false)

	columnTitle := func(text string, x float64, color string) {
		if text == "" {
			return
		}
		prims = append(prims, textBox(text, Box{X: x, Y: 1.5, W: 4.2, H: 0.6}, TextStyle{
			FontSize: 20,
			Bold:     true,
			Color:    color,
			Align:    "center",
			FontFace: fontFace(s),
		}))
	}
	columnTitle(s.LeftTitle, 0.5, comparisonLeftColor)
	columnTitle(s.RightTitle, 5, comparisonRightColor)

	columnBullets := func(bullets model.Bullets, x float64) {
		if len(bullets) == 0 {
			return
		}
		prims = append(prims, bulletList(bulletItems(bullets), Box{X: x, Y: 2.3, W: 4.2, H: 3.5}, TextStyle{
			FontSize:    16,
			Color:       defaultContentColor,
			LineSpacing: bulletLineSpacing,
			FontFace:    fontFace(s),
		}))
	}
	columnBullets(s.LeftBullets, 0.5)
	columnBullets(s.RightBullets, 5)
	return prims
}

func imageWithTextLayout(s model.Slide) []Primitive {
	prims := heading(s, false, true)

	if s.HasImage() {
		box := Box{X: 0.5, Y: 1.8, W: 4, H: 3.5}
		prims = append(prims, image(s.Image.URL, box,
			rect(box, "E0E0E0", "999999", 1),
			textBox("Image Placeholder", Box{X: 0.5, Y: 3.3, W: 4, H: 0.5}, TextStyle{
				FontSize: 14,
				Color:    captionColor,
				Align:    "center",
				FontFace: fontFace(s),
			}),
		))
	}

	if s.Text != "" {
		prims = append(prims, textBox(s.Text, Box{X: 5, Y: 1.8, W: 4.2, H: 3.5}, TextStyle{
			FontSize: 14,
			Color:    orDefault(s.ContentColor, defaultContentColor),
			VAlign:   "top",
			FontFace: fontFace(s),
		}))
	}
	return prims
}

func bulletItems(bullets model.Bullets) []BulletItem {
	items := make([]BulletItem, 0, len(bullets))
	for _, b := range bullets {
		items = append(items, BulletItem{Text: b.Text, IndentLevel: b.IndentLevel})
	}
	return items
}
