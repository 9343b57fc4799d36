package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/showcase-pro/pptx-demo-backend/internal/constant"
	"github.com/showcase-pro/pptx-demo-backend/internal/model"
	"github.com/showcase-pro/pptx-demo-backend/pkg/logger"
)

// Extractor 从HTML提取幻灯片
type Extractor interface {
	Extract(ctx context.Context, html string) ([]model.Slide, error)
}

type extractService struct {
	extractor Extractor
	timeout   time.Duration
}

// NewExtractService timeout<=0 表示不限制
func NewExtractService(extractor Extractor, timeout time.Duration) ExtractService {
	return &extractService{extractor: extractor, timeout: timeout}
}

func (s *extractService) Extract(ctx context.Context, html string) ([]model.Slide, error) {
	if strings.TrimSpace(html) == "" {
		return nil, constant.ErrHTMLRequired
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	slides, err := s.extractor.Extract(ctx, html)
	if err != nil {
		logger.Error("解析HTML失败", logger.F("size", len(html)), logger.F("error", err))
		return nil, fmt.Errorf("%w: %v", constant.ErrParseFailed, err)
	}

	logger.Debug("解析HTML完成", logger.F("slides", len(slides)))
	return slides, nil
}
