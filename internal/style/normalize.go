// Package style 将计算样式字符串标准化为渲染使用的属性集合
package style

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/showcase-pro/pptx-demo-backend/internal/model"
)

const (
	// DefaultBulletFontSize 列表级文字的默认字号
	DefaultBulletFontSize = 18
	// DefaultBodyFontSize 正文级文字的默认字号
	DefaultBodyFontSize = 14
	DefaultFontFamily   = "Arial"
	DefaultAlign        = "left"
)

// Raw 计算样式原始值
type Raw struct {
	FontSize   string
	Color      string
	FontFamily string
	FontWeight string
	FontStyle  string
	TextAlign  string
}

var (
	rgbPattern       = regexp.MustCompile(`^rgb\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*\)$`)
	numPrefixPattern = regexp.MustCompile(`^[+-]?\d+`)
)

// Normalize 标准化样式，任何字段解析失败都回落到默认值，不返回错误
func Normalize(raw Raw, defaultFontSize int, defaultColor string) model.TextStyle {
	return model.TextStyle{
		FontSize:   FontSize(raw.FontSize, defaultFontSize),
		Color:      ColorHex(raw.Color, defaultColor),
		FontFamily: orDefault(raw.FontFamily, DefaultFontFamily),
		Bold:       IsBold(raw.FontWeight),
		Italic:     strings.TrimSpace(raw.FontStyle) == "italic",
		Align:      orDefault(raw.TextAlign, DefaultAlign),
	}
}

// FontSize 取数值前缀作为字号，"24px" -> 24
func FontSize(value string, fallback int) int {
	m := numPrefixPattern.FindString(strings.TrimSpace(value))
	if m == "" {
		return fallback
	}
	n, err := strconv.Atoi(m)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// ColorHex 将 rgb(r,g,b) 转为6位十六进制，带 # 的值去除前缀后原样返回
func ColorHex(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	if strings.HasPrefix(value, "#") {
		return strings.TrimPrefix(value, "#")
	}
	m := rgbPattern.FindStringSubmatch(value)
	if m == nil {
		return fallback
	}
	var sb strings.Builder
	for _, ch := range m[1:] {
		n, err := strconv.Atoi(ch)
		if err != nil {
			return fallback
		}
		if n > 255 {
			n = 255
		}
		fmt.Fprintf(&sb, "%02X", n)
	}
	return sb.String()
}

// IsBold font-weight 为 bold 或数值不小于700
func IsBold(weight string) bool {
	weight = strings.TrimSpace(weight)
	if weight == "bold" {
		return true
	}
	m := numPrefixPattern.FindString(weight)
	if m == "" {
		return false
	}
	n, err := strconv.Atoi(m)
	return err == nil && n >= 700
}

func orDefault(v, d string) string {
	if strings.TrimSpace(v) == "" {
		return d
	}
	return v
}
