// Package layout 将幻灯片描述映射为有序的可绘制图元
//
// 每种布局都是纯函数，不访问网络和文件，图片只携带引用，由渲染阶段解析。
package layout

// Kind 图元类型
type Kind int

const (
	KindText Kind = iota
	KindBullets
	KindImage
	KindLine
	KindRect
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBullets:
		return "bullets"
	case KindImage:
		return "image"
	case KindLine:
		return "line"
	case KindRect:
		return "rect"
	default:
		return "unknown"
	}
}

// Box 位置与尺寸（英寸）
type Box struct {
	X float64
	Y float64
	W float64
	H float64
}

// TextStyle 文本样式，FontSize 与 LineSpacing 单位为磅
type TextStyle struct {
	FontSize    float64
	Color       string
	FontFace    string
	Bold        bool
	Italic      bool
	Align       string
	VAlign      string
	LineSpacing float64
}

// BulletItem 列表项
type BulletItem struct {
	Text        string
	IndentLevel int
}

// Stroke 线条样式，Width 单位为磅
type Stroke struct {
	Color string
	Width float64
}

// ImageSpec 图片引用与加载失败时的替代图元
type ImageSpec struct {
	Ref         string
	Contain     bool
	Placeholder []Primitive
}

// Primitive 单个图元，按 Kind 使用对应字段
type Primitive struct {
	Kind Kind
	Box  Box

	// KindText
	Text string
	// KindBullets
	Items []BulletItem
	// KindText / KindBullets
	Style TextStyle

	// KindImage
	Image *ImageSpec

	// KindLine 线条，KindRect 边框
	Stroke Stroke
	// KindRect
	Fill string
}

func textBox(text string, box Box, style TextStyle) Primitive {
	return Primitive{Kind: KindText, Box: box, Text: text, Style: style}
}

func bulletList(items []BulletItem, box Box, style TextStyle) Primitive {
	return Primitive{Kind: KindBullets, Box: box, Items: items, Style: style}
}

func line(box Box, color string, width float64) Primitive {
	return Primitive{Kind: KindLine, Box: box, Stroke: Stroke{Color: color, Width: width}}
}

func rect(box Box, fill, lineColor string, lineWidth float64) Primitive {
	return Primitive{Kind: KindRect, Box: box, Fill: fill, Stroke: Stroke{Color: lineColor, Width: lineWidth}}
}

func image(ref string, box Box, placeholder ...Primitive) Primitive {
	return Primitive{Kind: KindImage, Box: box, Image: &ImageSpec{Ref: ref, Contain: true, Placeholder: placeholder}}
}
