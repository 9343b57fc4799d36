package constant

import (
	"errors"
	"net/http"
)

// 自定义错误，消息直接返回给客户端
var (
	// 输入错误
	ErrInvalidSlides = errors.New("Invalid slides data")
	ErrHTMLRequired  = errors.New("HTML content is required")
	ErrInvalidParams = errors.New("Invalid request parameters")

	// 处理错误
	ErrConvertFailed = errors.New("Failed to convert slides to PPTX")
	ErrParseFailed   = errors.New("Failed to parse HTML")
	ErrInternalError = errors.New("Internal server error")

	// 限流
	ErrTooManyRequests = errors.New("Too many requests")
)

// 获取错误对应的HTTP状态码
func GetErrorCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidSlides),
		errors.Is(err, ErrHTMLRequired),
		errors.Is(err, ErrInvalidParams):
		return http.StatusBadRequest
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Category 返回错误所属的分类错误，用于响应中的 error 字段
func Category(err error) error {
	for _, c := range []error{
		ErrInvalidSlides,
		ErrHTMLRequired,
		ErrInvalidParams,
		ErrConvertFailed,
		ErrParseFailed,
		ErrTooManyRequests,
	} {
		if errors.Is(err, c) {
			return c
		}
	}
	return ErrInternalError
}
