package pptgen

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/showcase-pro/pptx-demo-backend/pkg/logger"
)

// SlideSummary 单页幻灯片结构摘要
type SlideSummary struct {
	Number int     `json:"number"`
	Master string  `json:"master,omitempty"`
	Shapes []Shape `json:"shapes"`
}

// Summary 返回演示文稿结构摘要
func (p *Presentation) Summary() []SlideSummary {
	summaries := make([]SlideSummary, 0, len(p.slides))
	for _, s := range p.slides {
		shapes := make([]Shape, len(s.shapes))
		copy(shapes, s.shapes)
		summaries = append(summaries, SlideSummary{
			Number: s.number,
			Master: s.MasterName(),
			Shapes: shapes,
		})
	}
	return summaries
}

// DumpStructure 将幻灯片结构输出到文件用于调试
func (p *Presentation) DumpStructure(filePath string) error {
	// 确保输出目录存在
	if dir := filepath.Dir(filePath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Error("创建调试目录失败", logger.F("dir", dir), logger.F("error", err))
			return err
		}
	}

	data, err := json.MarshalIndent(p.Summary(), "", "  ")
	if err != nil {
		logger.Error("序列化幻灯片结构失败", logger.F("error", err))
		return err
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		logger.Error("写入调试文件失败", logger.F("filePath", filePath), logger.F("error", err))
		return err
	}

	p.LogStructure()
	return nil
}

// LogStructure 以 debug 级别记录每页幻灯片的形状数量
func (p *Presentation) LogStructure() {
	logger.Debug("演示文稿结构", logger.F("slideCount", len(p.slides)), logger.F("mediaCount", len(p.media)))
	for _, s := range p.slides {
		kinds := make(map[ShapeKind]int)
		for _, shape := range s.shapes {
			kinds[shape.Kind]++
		}
		logger.Debug("幻灯片",
			logger.F("number", s.number),
			logger.F("master", s.MasterName()),
			logger.F("shapeCount", len(s.shapes)),
			logger.F("kinds", kinds))
	}
}
