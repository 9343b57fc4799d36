package model

import "strings"

// Layout 幻灯片布局名称
type Layout string

const (
	LayoutTitle         Layout = "title"
	LayoutTitleContent  Layout = "titleContent"
	LayoutTwoColumn     Layout = "twoColumn"
	LayoutComparison    Layout = "comparison"
	LayoutImageWithText Layout = "imageWithText"
	LayoutDefault       Layout = "default"
)

// Slide 单页幻灯片描述，所有字段均为可选
type Slide struct {
	Index      int     `json:"index,omitempty"`
	Layout     Layout  `json:"layout,omitempty"`
	MasterName string  `json:"masterName,omitempty"`
	Title      string  `json:"title"`
	Subtitle   string  `json:"subtitle,omitempty"`
	Text       string  `json:"text,omitempty"`
	Bullets    Bullets `json:"bullets"`

	LeftTitle    string  `json:"leftTitle,omitempty"`
	RightTitle   string  `json:"rightTitle,omitempty"`
	LeftContent  string  `json:"leftContent,omitempty"`
	RightContent string  `json:"rightContent,omitempty"`
	LeftBullets  Bullets `json:"leftBullets,omitempty"`
	RightBullets Bullets `json:"rightBullets,omitempty"`

	TextBlocks []TextBlock `json:"textBlocks"`
	Image      *Image      `json:"image"`

	// 整页样式覆盖
	TitleColor    string `json:"titleColor,omitempty"`
	SubtitleColor string `json:"subtitleColor,omitempty"`
	ContentColor  string `json:"contentColor,omitempty"`
	BulletColor   string `json:"bulletColor,omitempty"`
	FontFamily    string `json:"fontFamily,omitempty"`
	CenterAlign   *bool  `json:"centerAlign,omitempty"`

	// 仅由HTML提取生成，渲染时忽略
	TitleStyles *TextStyle `json:"titleStyles,omitempty"`
}

// HasImage 是否包含有效图片引用
func (s *Slide) HasImage() bool {
	return s.Image != nil && s.Image.URL != ""
}

// Bullet 列表项，JSON中既可以是字符串也可以是对象
type Bullet struct {
	Text        string `json:"text"`
	FontSize    int    `json:"fontSize,omitempty"`
	Color       string `json:"color,omitempty"`
	IndentLevel int    `json:"indentLevel"`
}

// Bullets 有序列表项，顺序即身份
type Bullets []Bullet

// Texts 按顺序返回列表文本
func (bs Bullets) Texts() []string {
	texts := make([]string, 0, len(bs))
	for _, b := range bs {
		texts = append(texts, b.Text)
	}
	return texts
}

// TextBlock 绝对定位的文本块，零值表示使用默认值
type TextBlock struct {
	Text       string  `json:"text"`
	X          float64 `json:"x,omitempty"`
	Y          float64 `json:"y,omitempty"`
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	FontSize   int     `json:"fontSize,omitempty"`
	Color      string  `json:"color,omitempty"`
	Align      string  `json:"align,omitempty"`
	Bold       bool    `json:"bold"`
	Italic     bool    `json:"italic"`
	FontFamily string  `json:"fontFamily,omitempty"`
}

// Image 图片引用，URL可以是 data URI、http(s) 地址或本地路径
type Image struct {
	URL    string  `json:"url"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// TextStyle 标准化后的文本样式
type TextStyle struct {
	FontSize   int    `json:"fontSize"`
	Color      string `json:"color"`
	FontFamily string `json:"fontFamily"`
	Bold       bool   `json:"bold"`
	Italic     bool   `json:"italic"`
	Align      string `json:"align"`
}

// Options 文档级元数据
type Options struct {
	Author   string `json:"author,omitempty"`
	Company  string `json:"company,omitempty"`
	Title    string `json:"title,omitempty"`
	Subject  string `json:"subject,omitempty"`
	Revision string `json:"revision,omitempty"`
	// ID 文档标识，由服务端生成
	ID string `json:"-"`
}

// Merge 以 o 为准，空字段取 defaults
func (o Options) Merge(defaults Options) Options {
	pick := func(v, d string) string {
		if strings.TrimSpace(v) == "" {
			return d
		}
		return v
	}
	return Options{
		Author:   pick(o.Author, defaults.Author),
		Company:  pick(o.Company, defaults.Company),
		Title:    pick(o.Title, defaults.Title),
		Subject:  pick(o.Subject, defaults.Subject),
		Revision: pick(o.Revision, defaults.Revision),
		ID:       pick(o.ID, defaults.ID),
	}
}

// ConvertResult 渲染结果
type ConvertResult struct {
	ID       string `json:"id"`
	Data     string `json:"data"`
	Filename string `json:"filename"`
}
