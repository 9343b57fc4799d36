// Package pptgen 生成 PPTX 演示文稿包
//
// 幻灯片按调用顺序绘制形状，后添加的形状覆盖先添加的形状。
// 所有坐标与尺寸均以英寸为单位，写出时转换为 EMU。
package pptgen

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/showcase-pro/pptx-demo-backend/pkg/logger"
)

const (
	emuPerInch = 914400
	emuPerPt   = 12700

	// SlideWidth 16:9 幻灯片宽度（英寸）
	SlideWidth = 10.0
	// SlideHeight 16:9 幻灯片高度（英寸）
	SlideHeight = 5.625
)

// Geometry 形状位置与尺寸（英寸）
type Geometry struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func inchToEMU(v float64) int64 {
	return int64(v*emuPerInch + 0.5)
}

// Properties 文档属性
type Properties struct {
	Author     string
	Company    string
	Title      string
	Subject    string
	Revision   string
	Identifier string
	Created    time.Time
}

// Presentation 演示文稿，非并发安全，每个请求单独创建
type Presentation struct {
	props       Properties
	masters     map[string]*Master
	masterOrder []string
	slides      []*Slide
	media       []*mediaPart

	maxImageBytes int64
}

// NewPresentation 创建一个新的演示文稿
func NewPresentation() *Presentation {
	return &Presentation{
		props:         Properties{Created: time.Now()},
		masters:       make(map[string]*Master),
		maxImageBytes: DefaultMaxImageBytes,
	}
}

// SetProperties 设置文档属性
func (p *Presentation) SetProperties(props Properties) {
	if props.Created.IsZero() {
		props.Created = p.props.Created
	}
	p.props = props
}

// Properties 返回文档属性
func (p *Presentation) Properties() Properties {
	return p.props
}

// DefineMaster 注册母版，同名母版会被覆盖
func (p *Presentation) DefineMaster(m Master) {
	if _, exists := p.masters[m.Name]; !exists {
		p.masterOrder = append(p.masterOrder, m.Name)
	}
	master := m
	p.masters[m.Name] = &master
}

// Master 按名称查找母版
func (p *Presentation) Master(name string) (*Master, bool) {
	m, ok := p.masters[name]
	return m, ok
}

// AddSlide 添加一页幻灯片，masterName 为空或不存在时不绑定背景
func (p *Presentation) AddSlide(masterName string) *Slide {
	s := &Slide{pres: p, number: len(p.slides) + 1}
	if m, ok := p.masters[masterName]; ok {
		s.master = m
	}
	p.slides = append(p.slides, s)
	return s
}

// Slides 返回所有幻灯片
func (p *Presentation) Slides() []*Slide {
	return p.slides
}

// Write 将PPTX写入 w
func (p *Presentation) Write(w io.Writer) error {
	zipWriter := zip.NewWriter(w)

	if err := p.addPresentationFiles(zipWriter); err != nil {
		return err
	}

	return zipWriter.Close()
}

// Bytes 生成PPTX字节
func (p *Presentation) Bytes() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := p.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Base64 生成base64编码的PPTX
func (p *Presentation) Base64() (string, error) {
	data, err := p.Bytes()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// WriteToFile 将PPTX写入文件
func (p *Presentation) WriteToFile(filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		logger.Error("创建PPTX文件失败", logger.F("filePath", filePath), logger.F("error", err))
		return err
	}
	defer file.Close()

	if err := p.Write(file); err != nil {
		logger.Error("写入PPTX文件失败", logger.F("filePath", filePath), logger.F("error", err))
		return err
	}

	return nil
}

// 添加演示文稿文件到ZIP
func (p *Presentation) addPresentationFiles(zipWriter *zip.Writer) error {
	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", p.contentTypesXML()},
		{"_rels/.rels", rootRelsXML},
		{"docProps/app.xml", p.appPropertiesXML()},
		{"docProps/core.xml", p.corePropertiesXML()},
		{"ppt/presentation.xml", p.presentationXML()},
		{"ppt/_rels/presentation.xml.rels", p.presentationRelsXML()},
		{"ppt/presProps.xml", presPropsXML},
		{"ppt/viewProps.xml", viewPropsXML},
		{"ppt/tableStyles.xml", tableStylesXML},
		{"ppt/slideMasters/slideMaster1.xml", slideMasterXML},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRelsXML},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayoutXML},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRelsXML},
		{"ppt/theme/theme1.xml", themeXML},
	}
	for _, part := range parts {
		if err := writePart(zipWriter, part.name, []byte(part.content)); err != nil {
			return err
		}
	}

	return p.addSlides(zipWriter)
}

// addSlides 写入幻灯片XML、关系文件以及媒体文件
func (p *Presentation) addSlides(zipWriter *zip.Writer) error {
	for _, slide := range p.slides {
		slidePath := fmt.Sprintf("ppt/slides/slide%d.xml", slide.number)
		if err := writePart(zipWriter, slidePath, []byte(slide.generateSlideXML())); err != nil {
			return err
		}

		slideRelPath := fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", slide.number)
		if err := writePart(zipWriter, slideRelPath, []byte(slide.generateSlideRelXML())); err != nil {
			return err
		}
	}

	for _, m := range p.media {
		if err := writePart(zipWriter, m.partName(), m.data); err != nil {
			return err
		}
	}
	return nil
}

func writePart(zipWriter *zip.Writer, name string, content []byte) error {
	w, err := zipWriter.Create(name)
	if err != nil {
		logger.Error("创建PPTX部件失败", logger.F("part", name), logger.F("error", err))
		return fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := w.Write(content); err != nil {
		logger.Error("写入PPTX部件失败", logger.F("part", name), logger.F("error", err))
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
