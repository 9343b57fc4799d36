package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/showcase-pro/pptx-demo-backend/internal/constant"
	"github.com/showcase-pro/pptx-demo-backend/internal/model"
)

// ConvertService 幻灯片描述转换为PPTX
type ConvertService interface {
	Convert(ctx context.Context, req *ConvertRequest) (*model.ConvertResult, error)
}

// ExtractService 从HTML提取幻灯片描述
type ExtractService interface {
	Extract(ctx context.Context, html string) ([]model.Slide, error)
}

// ConvertRequest 转换请求
type ConvertRequest struct {
	Slides  []model.Slide `json:"slides"`
	Options model.Options `json:"options"`
}

// ParseHTMLRequest HTML解析请求
type ParseHTMLRequest struct {
	HTML string `json:"html"`
}

// DecodeParseHTMLRequest 解析 {html}，不依赖 Content-Type；html 不是字符串时视为缺失
func DecodeParseHTMLRequest(body []byte) (*ParseHTMLRequest, error) {
	var envelope struct {
		HTML json.RawMessage `json:"html"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", constant.ErrInvalidParams, err)
	}
	req := &ParseHTMLRequest{}
	if raw := bytes.TrimSpace(envelope.HTML); len(raw) > 0 && raw[0] == '"' {
		if err := json.Unmarshal(raw, &req.HTML); err != nil {
			return nil, fmt.Errorf("%w: %v", constant.ErrInvalidParams, err)
		}
	}
	return req, nil
}

// DecodeConvertRequest 解析 {slides, options}，slides 缺失或不是数组时返回 ErrInvalidSlides
func DecodeConvertRequest(body []byte) (*ConvertRequest, error) {
	var envelope struct {
		Slides  json.RawMessage `json:"slides"`
		Options *model.Options  `json:"options"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", constant.ErrInvalidSlides, err)
	}

	slides, err := decodeSlides(envelope.Slides)
	if err != nil {
		return nil, err
	}
	req := &ConvertRequest{Slides: slides}
	if envelope.Options != nil {
		req.Options = *envelope.Options
	}
	return req, nil
}

// DecodeSlideFile 同时接受裸数组与 {slides, options} 两种格式
func DecodeSlideFile(data []byte) (*ConvertRequest, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		slides, err := decodeSlides(trimmed)
		if err != nil {
			return nil, err
		}
		return &ConvertRequest{Slides: slides}, nil
	}
	return DecodeConvertRequest(trimmed)
}

func decodeSlides(raw json.RawMessage) ([]model.Slide, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, constant.ErrInvalidSlides
	}
	slides := make([]model.Slide, 0)
	if err := json.Unmarshal(raw, &slides); err != nil {
		return nil, fmt.Errorf("%w: %v", constant.ErrInvalidSlides, err)
	}
	return slides, nil
}

// /////////////////////////////
// ConvertResponse 转换成功响应
type ConvertResponse struct {
	Success  bool   `json:"success"`
	Data     string `json:"data"`
	Filename string `json:"filename"`
	ID       string `json:"id"`
}

// ParseHTMLResponse 解析成功响应
type ParseHTMLResponse struct {
	Success bool          `json:"success"`
	Slides  []model.Slide `json:"slides"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ErrorResponse 错误响应，error 为分类信息，details 为具体原因
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func NewConvertResponse(result *model.ConvertResult) *ConvertResponse {
	return &ConvertResponse{
		Success:  true,
		Data:     result.Data,
		Filename: result.Filename,
		ID:       result.ID,
	}
}

func NewParseHTMLResponse(slides []model.Slide) *ParseHTMLResponse {
	if slides == nil {
		slides = []model.Slide{}
	}
	return &ParseHTMLResponse{Success: true, Slides: slides}
}

// Error 创建错误响应，输入类错误不携带 details
func Error(err error) *ErrorResponse {
	category := constant.Category(err)
	resp := &ErrorResponse{Error: category.Error()}
	if constant.GetErrorCode(category) >= 500 && err != category {
		resp.Details = detailOf(err, category)
	}
	return resp
}

// detailOf 去掉 "分类: " 前缀
func detailOf(err, category error) string {
	msg := err.Error()
	prefix := category.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
