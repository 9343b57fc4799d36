package render

import (
	"github.com/showcase-pro/pptx-demo-backend/pkg/logger"
	"github.com/showcase-pro/pptx-demo-backend/pkg/pptgen"
)

const (
	MasterSlide    = "MASTER_SLIDE"
	DarkMaster     = "DARK_MASTER"
	GradientMaster = "GRADIENT_MASTER"
)

// themes 每个演示文稿都注册的固定母版
var themes = []pptgen.Master{
	{Name: MasterSlide, Background: pptgen.Background{Color: "FFFFFF"}},
	{Name: DarkMaster, Background: pptgen.Background{Color: "1A202C"}},
	{Name: GradientMaster, Background: pptgen.Background{Gradient: &pptgen.Gradient{
		Angle: 135,
		Stops: []pptgen.GradientStop{
			{Color: "667EEA", Position: 0},
			{Color: "764BA2", Position: 100},
		},
	}}},
}

func registerThemes(p *pptgen.Presentation) {
	for _, m := range themes {
		p.DefineMaster(m)
	}
}

// themeFor 未指定时使用 MASTER_SLIDE，未知名称同样回落并记录警告
func themeFor(p *pptgen.Presentation, name string, slide int) string {
	if name == "" {
		return MasterSlide
	}
	if _, ok := p.Master(name); !ok {
		logger.Warn("未知母版，使用默认母版", logger.F("slide", slide), logger.F("masterName", name))
		return MasterSlide
	}
	return name
}
