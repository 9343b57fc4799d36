package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// 请求中的可选字段按尽力而为的方式解码：类型不符的值视为未提供

// object 将JSON对象拆成字段，非对象返回 nil
func object(data []byte) map[string]json.RawMessage {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}

// stringOf 字符串原样返回，数字与布尔取其字面值，其余为空
func stringOf(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case '{', '[', 'n':
		return ""
	default:
		return string(raw)
	}
}

// floatOf 接受数字与数字字符串，其余为0
func floatOf(raw json.RawMessage) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(stringOf(raw)), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func intOf(raw json.RawMessage) int {
	f := floatOf(raw)
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0
	}
	return int(f)
}

// flagOf 接受 true/false 与 "true"/"false"，ok 表示值有效
func flagOf(raw json.RawMessage) (value, ok bool) {
	switch strings.TrimSpace(stringOf(raw)) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

func boolOf(raw json.RawMessage) bool {
	v, _ := flagOf(raw)
	return v
}

// elements 拆分JSON数组，非数组返回 nil
func elements(raw json.RawMessage) []json.RawMessage {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return items
}

// UnmarshalJSON 非字符串或未知的布局名称解析为 default
func (l *Layout) UnmarshalJSON(data []byte) error {
	*l = ParseLayout(stringOf(data))
	return nil
}

// ParseLayout 未知名称返回 LayoutDefault
func ParseLayout(name string) Layout {
	switch l := Layout(name); l {
	case LayoutTitle, LayoutTitleContent, LayoutTwoColumn,
		LayoutComparison, LayoutImageWithText, LayoutDefault:
		return l
	default:
		return LayoutDefault
	}
}

// UnmarshalJSON 兼容 "文本"、数字与 {"text": "文本"} 几种写法
func (b *Bullet) UnmarshalJSON(data []byte) error {
	m := object(data)
	if m == nil {
		*b = Bullet{Text: stringOf(data)}
		return nil
	}
	*b = Bullet{
		Text:        stringOf(m["text"]),
		FontSize:    intOf(m["fontSize"]),
		Color:       stringOf(m["color"]),
		IndentLevel: intOf(m["indentLevel"]),
	}
	return nil
}

// UnmarshalJSON 非数组视为空列表
func (bs *Bullets) UnmarshalJSON(data []byte) error {
	items := elements(data)
	if items == nil {
		*bs = nil
		return nil
	}
	out := make(Bullets, len(items))
	for i, item := range items {
		_ = out[i].UnmarshalJSON(item)
	}
	*bs = out
	return nil
}

func (tb *TextBlock) UnmarshalJSON(data []byte) error {
	m := object(data)
	*tb = TextBlock{
		Text:       stringOf(m["text"]),
		X:          floatOf(m["x"]),
		Y:          floatOf(m["y"]),
		Width:      floatOf(m["width"]),
		Height:     floatOf(m["height"]),
		FontSize:   intOf(m["fontSize"]),
		Color:      stringOf(m["color"]),
		Align:      stringOf(m["align"]),
		Bold:       boolOf(m["bold"]),
		Italic:     boolOf(m["italic"]),
		FontFamily: stringOf(m["fontFamily"]),
	}
	return nil
}

func (img *Image) UnmarshalJSON(data []byte) error {
	m := object(data)
	*img = Image{
		URL:    stringOf(m["url"]),
		X:      floatOf(m["x"]),
		Y:      floatOf(m["y"]),
		Width:  floatOf(m["width"]),
		Height: floatOf(m["height"]),
	}
	return nil
}

func (ts *TextStyle) UnmarshalJSON(data []byte) error {
	m := object(data)
	*ts = TextStyle{
		FontSize:   intOf(m["fontSize"]),
		Color:      stringOf(m["color"]),
		FontFamily: stringOf(m["fontFamily"]),
		Bold:       boolOf(m["bold"]),
		Italic:     boolOf(m["italic"]),
		Align:      stringOf(m["align"]),
	}
	return nil
}

func (o *Options) UnmarshalJSON(data []byte) error {
	m := object(data)
	*o = Options{
		Author:   stringOf(m["author"]),
		Company:  stringOf(m["company"]),
		Title:    stringOf(m["title"]),
		Subject:  stringOf(m["subject"]),
		Revision: stringOf(m["revision"]),
	}
	return nil
}

// UnmarshalJSON 非对象的元素解析为空白幻灯片
func (s *Slide) UnmarshalJSON(data []byte) error {
	m := object(data)
	*s = Slide{
		Index:         intOf(m["index"]),
		MasterName:    stringOf(m["masterName"]),
		Title:         stringOf(m["title"]),
		Subtitle:      stringOf(m["subtitle"]),
		Text:          stringOf(m["text"]),
		LeftTitle:     stringOf(m["leftTitle"]),
		RightTitle:    stringOf(m["rightTitle"]),
		LeftContent:   stringOf(m["leftContent"]),
		RightContent:  stringOf(m["rightContent"]),
		TitleColor:    stringOf(m["titleColor"]),
		SubtitleColor: stringOf(m["subtitleColor"]),
		ContentColor:  stringOf(m["contentColor"]),
		BulletColor:   stringOf(m["bulletColor"]),
		FontFamily:    stringOf(m["fontFamily"]),
	}
	if raw, ok := m["layout"]; ok {
		_ = s.Layout.UnmarshalJSON(raw)
	}
	_ = s.Bullets.UnmarshalJSON(m["bullets"])
	_ = s.LeftBullets.UnmarshalJSON(m["leftBullets"])
	_ = s.RightBullets.UnmarshalJSON(m["rightBullets"])

	blocks := elements(m["textBlocks"])
	if blocks != nil {
		s.TextBlocks = make([]TextBlock, 0, len(blocks))
	}
	for _, item := range blocks {
		if object(item) == nil {
			continue
		}
		var tb TextBlock
		_ = tb.UnmarshalJSON(item)
		s.TextBlocks = append(s.TextBlocks, tb)
	}
	if raw := m["image"]; object(raw) != nil {
		s.Image = &Image{}
		_ = s.Image.UnmarshalJSON(raw)
	}
	if raw := m["titleStyles"]; object(raw) != nil {
		s.TitleStyles = &TextStyle{}
		_ = s.TitleStyles.UnmarshalJSON(raw)
	}
	if v, ok := flagOf(m["centerAlign"]); ok {
		s.CenterAlign = &v
	}
	return nil
}
