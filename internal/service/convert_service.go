package service

import (
	"context"
	"fmt"
	"time"

	"github.com/showcase-pro/pptx-demo-backend/internal/constant"
	"github.com/showcase-pro/pptx-demo-backend/internal/model"
	"github.com/showcase-pro/pptx-demo-backend/pkg/logger"
	"github.com/showcase-pro/pptx-demo-backend/pkg/util"
)

// Renderer 渲染幻灯片并返回 base64 编码的PPTX
type Renderer interface {
	RenderBase64(ctx context.Context, slides []model.Slide, opts model.Options) (string, error)
}

type convertService struct {
	renderer Renderer
	timeout  time.Duration
	now      func() time.Time
}

// NewConvertService timeout<=0 表示不限制
func NewConvertService(renderer Renderer, timeout time.Duration) ConvertService {
	return &convertService{
		renderer: renderer,
		timeout:  timeout,
		now:      time.Now,
	}
}

func (s *convertService) Convert(ctx context.Context, req *ConvertRequest) (*model.ConvertResult, error) {
	if req == nil || req.Slides == nil {
		return nil, constant.ErrInvalidSlides
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	id := util.NewIDString()
	opts := req.Options
	opts.ID = id

	start := s.now()
	data, err := s.renderer.RenderBase64(ctx, req.Slides, opts)
	if err != nil {
		logger.Error("转换PPTX失败", logger.F("id", id), logger.F("slides", len(req.Slides)), logger.F("error", err))
		return nil, fmt.Errorf("%w: %v", constant.ErrConvertFailed, err)
	}

	logger.Info("转换PPTX完成",
		logger.F("id", id),
		logger.F("slides", len(req.Slides)),
		logger.F("elapsed", s.now().Sub(start).String()))

	return &model.ConvertResult{
		ID:       id,
		Data:     data,
		Filename: fmt.Sprintf("presentation_%d.pptx", start.UnixMilli()),
	}, nil
}
