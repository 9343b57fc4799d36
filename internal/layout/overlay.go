package layout

import (
	"github.com/showcase-pro/pptx-demo-backend/internal/model"
)

const (
	overlayBulletColor = "4A5568"
	textBlockColor     = "333333"
	textBlockFontFace  = "Arial"
	textBlockFontSize  = 14
	textBlockAlign     = "left"
)

// Overlay 通用图元：列表、图片、文本块，依次追加在布局图元之后
// imageWithText 布局自身已处理图片，此处跳过
func Overlay(s model.Slide) []Primitive {
	var prims []Primitive

	if len(s.Bullets) > 0 {
		y := 1.0
		if s.Title != "" {
			y = 1.8
		}
		prims = append(prims, bulletList(bulletItems(s.Bullets), Box{X: 0.5, Y: y, W: 9, H: 4.5}, TextStyle{
			FontSize:    18,
			Color:       orDefault(s.BulletColor, overlayBulletColor),
			LineSpacing: bulletLineSpacing,
			FontFace:    fontFace(s),
		}))
	}

	if s.HasImage() && Resolve(s.Layout) != model.LayoutImageWithText {
		box := Box{
			X: orDefaultFloat(s.Image.X, 1),
			Y: orDefaultFloat(s.Image.Y, 3),
			W: orDefaultFloat(s.Image.Width, 3),
			H: orDefaultFloat(s.Image.Height, 2),
		}
		prims = append(prims, image(s.Image.URL, box,
			rect(box, "F0F0F0", "CCCCCC", 1),
			textBox("Image Error", Box{X: box.X, Y: box.Y + box.H/2 - 0.2, W: box.W, H: 0.4}, TextStyle{
				FontSize: 12,
				Color:    captionColor,
				Align:    "center",
				FontFace: fontFace(s),
			}),
		))
	}

	for _, tb := range s.TextBlocks {
		if tb.Text == "" {
			continue
		}
		prims = append(prims, textBox(tb.Text, Box{
			X: orDefaultFloat(tb.X, 0.5),
			Y: orDefaultFloat(tb.Y, 2),
			W: orDefaultFloat(tb.Width, 9),
			H: orDefaultFloat(tb.Height, 1),
		}, TextStyle{
			FontSize: float64(orDefaultInt(tb.FontSize, textBlockFontSize)),
			Color:    orDefault(tb.Color, textBlockColor),
			Align:    orDefault(tb.Align, textBlockAlign),
			Bold:     tb.Bold,
			Italic:   tb.Italic,
			FontFace: orDefault(tb.FontFamily, textBlockFontFace),
		}))
	}

	return prims
}

// 零值视为未设置
func orDefaultFloat(v, d float64) float64 {
	if v == 0 {
		return d
	}
	return v
}

func orDefaultInt(v, d int) int {
	if v == 0 {
		return d
	}
	return v
}
