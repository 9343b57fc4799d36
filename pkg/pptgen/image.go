package pptgen

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"strings"

	"github.com/vincent-petithory/dataurl"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/showcase-pro/pptx-demo-backend/pkg/logger"
)

// Sizing 图片在目标区域内的缩放方式
type Sizing string

const (
	// SizingStretch 拉伸铺满目标区域
	SizingStretch Sizing = ""
	// SizingContain 保持比例完整放入目标区域并居中
	SizingContain Sizing = "contain"
)

// DefaultMaxImageBytes 单张图片默认大小上限
const DefaultMaxImageBytes = 20 << 20

var (
	ErrImageEmpty       = errors.New("image source is empty")
	ErrImageTooLarge    = errors.New("image exceeds size limit")
	ErrImageUnsupported = errors.New("unsupported image format")
)

var imageExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
	"image/gif":  "gif",
	"image/bmp":  "bmp",
	"image/webp": "webp",
}

type mediaPart struct {
	index       int
	ext         string
	contentType string
	data        []byte
}

func (m *mediaPart) fileName() string {
	return fmt.Sprintf("image%d.%s", m.index, m.ext)
}

func (m *mediaPart) partName() string {
	return "ppt/media/" + m.fileName()
}

// SetMaxImageBytes 设置单张图片大小上限，n<=0 时恢复默认值
func (p *Presentation) SetMaxImageBytes(n int64) {
	if n <= 0 {
		n = DefaultMaxImageBytes
	}
	p.maxImageBytes = n
}

// AddImage 添加图片，src 为 data URI 或本地文件路径
// 加载失败时返回错误且幻灯片不发生变化
func (s *Slide) AddImage(src string, g Geometry, sizing Sizing) error {
	data, err := loadImage(src, s.pres.imageLimit())
	if err != nil {
		logger.Warn("加载图片失败", logger.F("slide", s.number), logger.F("error", err))
		return err
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		logger.Warn("不支持的图片格式", logger.F("slide", s.number), logger.F("contentType", contentType))
		return fmt.Errorf("%w: %s", ErrImageUnsupported, contentType)
	}

	if sizing == SizingContain {
		g = containGeometry(data, g)
	}

	m := &mediaPart{
		index:       len(s.pres.media) + 1,
		ext:         ext,
		contentType: contentType,
		data:        data,
	}
	s.pres.media = append(s.pres.media, m)
	s.addPicture(m, g)
	return nil
}

func (p *Presentation) imageLimit() int64 {
	if p.maxImageBytes <= 0 {
		return DefaultMaxImageBytes
	}
	return p.maxImageBytes
}

// IsDataURI 判断是否为内嵌图片数据
func IsDataURI(src string) bool {
	return strings.HasPrefix(src, "data:") || (strings.HasPrefix(src, "image/") && strings.Contains(src, ";base64,"))
}

func loadImage(src string, limit int64) ([]byte, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, ErrImageEmpty
	}

	if IsDataURI(src) {
		if !strings.HasPrefix(src, "data:") {
			src = "data:" + src
		}
		du, err := dataurl.DecodeString(src)
		if err != nil {
			return nil, fmt.Errorf("decode data uri: %w", err)
		}
		if int64(len(du.Data)) > limit {
			return nil, ErrImageTooLarge
		}
		return du.Data, nil
	}

	info, err := os.Stat(src)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", src)
	}
	if info.Size() > limit {
		return nil, ErrImageTooLarge
	}
	return os.ReadFile(src)
}

// containGeometry 按图片原始宽高比缩放并在 g 内居中，无法识别尺寸时返回 g
func containGeometry(data []byte, g Geometry) Geometry {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 || g.W <= 0 || g.H <= 0 {
		return g
	}

	imgRatio := float64(cfg.Width) / float64(cfg.Height)
	boxRatio := g.W / g.H

	out := g
	if imgRatio > boxRatio {
		out.H = g.W / imgRatio
		out.Y = g.Y + (g.H-out.H)/2
	} else {
		out.W = g.H * imgRatio
		out.X = g.X + (g.W-out.W)/2
	}
	return out
}
