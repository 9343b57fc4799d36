package pptgen

import (
	"fmt"
	"strings"
)

// ShapeKind 形状类型
type ShapeKind string

const (
	ShapeText    ShapeKind = "text"
	ShapeBullets ShapeKind = "bullets"
	ShapeImage   ShapeKind = "image"
	ShapeLine    ShapeKind = "line"
	ShapeRect    ShapeKind = "rect"
)

// Shape 已绘制形状的摘要
type Shape struct {
	Kind     ShapeKind `json:"kind"`
	Name     string    `json:"name"`
	Geometry Geometry  `json:"geometry"`
	Text     string    `json:"text,omitempty"`
}

// TextOptions 文本样式
type TextOptions struct {
	// FontSize 字号（磅）
	FontSize float64
	Color    string
	FontFace string
	Bold     bool
	Italic   bool
	// Align left / center / right
	Align string
	// VAlign top / middle / bottom
	VAlign string
	// LineSpacing 行距（磅），0 表示默认
	LineSpacing float64
}

// BulletItem 列表项
type BulletItem struct {
	Text        string
	IndentLevel int
}

type slideRel struct {
	id     string
	target string
}

// Slide 单页幻灯片
type Slide struct {
	pres    *Presentation
	number  int
	master  *Master
	shapes  []Shape
	xmls    []string
	rels    []slideRel
	shapeID int
}

// Number 幻灯片序号，从1开始
func (s *Slide) Number() int {
	return s.number
}

// MasterName 绑定的母版名称
func (s *Slide) MasterName() string {
	if s.master == nil {
		return ""
	}
	return s.master.Name
}

// Shapes 返回按绘制顺序排列的形状
func (s *Slide) Shapes() []Shape {
	return s.shapes
}

func (s *Slide) nextShapeID() int {
	// id 1 为 spTree 自身
	s.shapeID++
	return s.shapeID + 1
}

func (s *Slide) addShape(shape Shape, xml string) {
	s.shapes = append(s.shapes, shape)
	s.xmls = append(s.xmls, xml)
}

// AddText 添加文本框，文本中的换行拆分为段落
func (s *Slide) AddText(text string, g Geometry, opts TextOptions) {
	id := s.nextShapeID()
	name := fmt.Sprintf("Text %d", id)

	var paragraphs strings.Builder
	for _, line := range strings.Split(text, "\n") {
		paragraphs.WriteString(paragraphXML(opts, line, ""))
	}

	s.addShape(Shape{Kind: ShapeText, Name: name, Geometry: g, Text: text},
		textShapeXML(id, name, g, opts, paragraphs.String()))
}

// AddBulletList 添加项目符号列表，items 为空时不绘制
func (s *Slide) AddBulletList(items []BulletItem, g Geometry, opts TextOptions) {
	if len(items) == 0 {
		return
	}
	id := s.nextShapeID()
	name := fmt.Sprintf("Bullets %d", id)

	texts := make([]string, 0, len(items))
	var paragraphs strings.Builder
	for _, item := range items {
		texts = append(texts, item.Text)
		paragraphs.WriteString(paragraphXML(opts, item.Text, bulletPropsXML(item.IndentLevel)))
	}

	s.addShape(Shape{Kind: ShapeBullets, Name: name, Geometry: g, Text: strings.Join(texts, "\n")},
		textShapeXML(id, name, g, opts, paragraphs.String()))
}

// AddLine 添加直线，宽度单位为磅
func (s *Slide) AddLine(g Geometry, color string, widthPt float64) {
	id := s.nextShapeID()
	name := fmt.Sprintf("Line %d", id)

	xml := fmt.Sprintf(`
            <p:cxnSp>
                <p:nvCxnSpPr>
                    <p:cNvPr id="%d" name="%s"/>
                    <p:cNvCxnSpPr/>
                    <p:nvPr/>
                </p:nvCxnSpPr>
                <p:spPr>%s
                    <a:prstGeom prst="line"><a:avLst/></a:prstGeom>%s
                </p:spPr>
            </p:cxnSp>`, id, name, xfrmXML(g), lineXML(color, widthPt))

	s.addShape(Shape{Kind: ShapeLine, Name: name, Geometry: g}, xml)
}

// AddRect 添加矩形，颜色为空时无填充或无边框
func (s *Slide) AddRect(g Geometry, fill, lineColor string, lineWidthPt float64) {
	id := s.nextShapeID()
	name := fmt.Sprintf("Rectangle %d", id)

	fillXML := "<a:noFill/>"
	if c := normalizeColor(fill); c != "" {
		fillXML = solidFillXML(c)
	}

	xml := fmt.Sprintf(`
            <p:sp>
                <p:nvSpPr>
                    <p:cNvPr id="%d" name="%s"/>
                    <p:cNvSpPr/>
                    <p:nvPr/>
                </p:nvSpPr>
                <p:spPr>%s
                    <a:prstGeom prst="rect"><a:avLst/></a:prstGeom>
                    %s%s
                </p:spPr>
            </p:sp>`, id, name, xfrmXML(g), fillXML, lineXML(lineColor, lineWidthPt))

	s.addShape(Shape{Kind: ShapeRect, Name: name, Geometry: g}, xml)
}

func (s *Slide) addPicture(m *mediaPart, g Geometry) {
	id := s.nextShapeID()
	name := fmt.Sprintf("Picture %d", id)
	relID := fmt.Sprintf("rId%d", len(s.rels)+2)
	s.rels = append(s.rels, slideRel{id: relID, target: "../media/" + m.fileName()})

	xml := fmt.Sprintf(`
            <p:pic>
                <p:nvPicPr>
                    <p:cNvPr id="%d" name="%s"/>
                    <p:cNvPicPr>
                        <a:picLocks noChangeAspect="1"/>
                    </p:cNvPicPr>
                    <p:nvPr/>
                </p:nvPicPr>
                <p:blipFill>
                    <a:blip r:embed="%s"/>
                    <a:stretch><a:fillRect/></a:stretch>
                </p:blipFill>
                <p:spPr>%s
                    <a:prstGeom prst="rect"><a:avLst/></a:prstGeom>
                </p:spPr>
            </p:pic>`, id, name, relID, xfrmXML(g))

	s.addShape(Shape{Kind: ShapeImage, Name: name, Geometry: g}, xml)
}

// 生成幻灯片XML内容
func (s *Slide) generateSlideXML() string {
	background := ""
	if s.master != nil {
		background = s.master.Background.xml()
	}

	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
    <p:cSld>%s
        <p:spTree>
            <p:nvGrpSpPr>
                <p:cNvPr id="1" name=""/>
                <p:cNvGrpSpPr/>
                <p:nvPr/>
            </p:nvGrpSpPr>
            <p:grpSpPr>
                <a:xfrm>
                    <a:off x="0" y="0"/>
                    <a:ext cx="0" cy="0"/>
                    <a:chOff x="0" y="0"/>
                    <a:chExt cx="0" cy="0"/>
                </a:xfrm>
            </p:grpSpPr>%s
        </p:spTree>
    </p:cSld>
    <p:clrMapOvr>
        <a:masterClrMapping/>
    </p:clrMapOvr>
</p:sld>`, background, strings.Join(s.xmls, ""))
}

// 生成幻灯片关系XML
func (s *Slide) generateSlideRelXML() string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
    <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>`)
	for _, rel := range s.rels {
		fmt.Fprintf(&sb, `
    <Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="%s"/>`, rel.id, rel.target)
	}
	sb.WriteString(`
</Relationships>`)
	return sb.String()
}

func xfrmXML(g Geometry) string {
	return fmt.Sprintf(`
                    <a:xfrm>
                        <a:off x="%d" y="%d"/>
                        <a:ext cx="%d" cy="%d"/>
                    </a:xfrm>`, inchToEMU(g.X), inchToEMU(g.Y), inchToEMU(g.W), inchToEMU(g.H))
}

func lineXML(color string, widthPt float64) string {
	c := normalizeColor(color)
	if c == "" {
		return "<a:ln><a:noFill/></a:ln>"
	}
	if widthPt <= 0 {
		widthPt = 1
	}
	return fmt.Sprintf(`<a:ln w="%d">%s</a:ln>`, int64(widthPt*emuPerPt+0.5), solidFillXML(c))
}

func textShapeXML(id int, name string, g Geometry, opts TextOptions, paragraphs string) string {
	return fmt.Sprintf(`
            <p:sp>
                <p:nvSpPr>
                    <p:cNvPr id="%d" name="%s"/>
                    <p:cNvSpPr txBox="1"/>
                    <p:nvPr/>
                </p:nvSpPr>
                <p:spPr>%s
                    <a:prstGeom prst="rect"><a:avLst/></a:prstGeom>
                    <a:noFill/>
                </p:spPr>
                <p:txBody>
                    <a:bodyPr wrap="square" lIns="91440" tIns="45720" rIns="91440" bIns="45720" rtlCol="0" anchor="%s"/>
                    <a:lstStyle/>%s
                </p:txBody>
            </p:sp>`, id, name, xfrmXML(g), anchorOf(opts.VAlign), paragraphs)
}

// bulletPropsXML 项目符号的段落属性，缩进级别限制在 0-8
func bulletPropsXML(level int) string {
	if level < 0 {
		level = 0
	}
	if level > 8 {
		level = 8
	}
	return fmt.Sprintf(` marL="%d" lvl="%d" indent="-228600"`, 228600+level*457200, level)
}

func paragraphXML(opts TextOptions, text, bulletAttrs string) string {
	var pPr strings.Builder
	fmt.Fprintf(&pPr, `<a:pPr%s algn="%s">`, bulletAttrs, alignOf(opts.Align))
	if opts.LineSpacing > 0 {
		fmt.Fprintf(&pPr, `<a:lnSpc><a:spcPts val="%d"/></a:lnSpc>`, int(opts.LineSpacing*100+0.5))
	}
	if bulletAttrs != "" {
		pPr.WriteString(`<a:buFont typeface="Arial"/><a:buChar char="&#8226;"/>`)
	} else {
		pPr.WriteString(`<a:buNone/>`)
	}
	pPr.WriteString(`</a:pPr>`)

	return fmt.Sprintf(`
                    <a:p>
                        %s
                        <a:r>
                            %s
                            <a:t>%s</a:t>
                        </a:r>
                    </a:p>`, pPr.String(), runPropsXML(opts), xmlEscape(text))
}

func runPropsXML(opts TextOptions) string {
	var sb strings.Builder
	sb.WriteString(`<a:rPr lang="en-US"`)
	if opts.FontSize > 0 {
		fmt.Fprintf(&sb, ` sz="%d"`, int(opts.FontSize*100+0.5))
	}
	if opts.Bold {
		sb.WriteString(` b="1"`)
	}
	if opts.Italic {
		sb.WriteString(` i="1"`)
	}
	sb.WriteString(` dirty="0">`)
	if c := normalizeColor(opts.Color); c != "" {
		sb.WriteString(solidFillXML(c))
	}
	if opts.FontFace != "" {
		fmt.Fprintf(&sb, `<a:latin typeface="%s"/>`, xmlEscape(opts.FontFace))
	}
	sb.WriteString(`</a:rPr>`)
	return sb.String()
}

func alignOf(align string) string {
	switch strings.ToLower(align) {
	case "center", "ctr":
		return "ctr"
	case "right", "r":
		return "r"
	case "justify":
		return "just"
	default:
		return "l"
	}
}

func anchorOf(valign string) string {
	switch strings.ToLower(valign) {
	case "top", "t":
		return "t"
	case "bottom", "b":
		return "b"
	default:
		return "ctr"
	}
}
