package markup

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/image/colornames"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/showcase-pro/pptx-demo-backend/internal/style"
)

const rootFontSizePx = 16.0

type declaration struct {
	property  string
	value     string
	important bool
}

type styleRule struct {
	sel   cascadia.Sel
	order int
	decls []declaration
}

type computedStyle struct {
	fontSizePx float64
	color      string
	fontFamily string
	fontWeight string
	fontStyle  string
	textAlign  string
}

func rootStyle() *computedStyle {
	return &computedStyle{
		fontSizePx: rootFontSizePx,
		color:      "rgb(0, 0, 0)",
		fontWeight: "400",
		fontStyle:  "normal",
	}
}

func (cs *computedStyle) raw() style.Raw {
	return style.Raw{
		FontSize:   formatPx(cs.fontSizePx),
		Color:      cs.color,
		FontFamily: cs.fontFamily,
		FontWeight: cs.fontWeight,
		FontStyle:  cs.fontStyle,
		TextAlign:  cs.textAlign,
	}
}

// 浏览器默认样式中与文字相关的部分
var tagDefaults = map[atom.Atom][]declaration{
	atom.H1:     {{property: "font-size", value: "2em"}, {property: "font-weight", value: "bold"}},
	atom.H2:     {{property: "font-size", value: "1.5em"}, {property: "font-weight", value: "bold"}},
	atom.H3:     {{property: "font-size", value: "1.17em"}, {property: "font-weight", value: "bold"}},
	atom.H4:     {{property: "font-weight", value: "bold"}},
	atom.H5:     {{property: "font-size", value: "0.83em"}, {property: "font-weight", value: "bold"}},
	atom.H6:     {{property: "font-size", value: "0.67em"}, {property: "font-weight", value: "bold"}},
	atom.B:      {{property: "font-weight", value: "bold"}},
	atom.Strong: {{property: "font-weight", value: "bold"}},
	atom.Th:     {{property: "font-weight", value: "bold"}, {property: "text-align", value: "center"}},
	atom.Em:     {{property: "font-style", value: "italic"}},
	atom.I:      {{property: "font-style", value: "italic"}},
	atom.Cite:   {{property: "font-style", value: "italic"}},
	atom.Small:  {{property: "font-size", value: "smaller"}},
	atom.Center: {{property: "text-align", value: "center"}},
}

var fontSizeKeywords = map[string]float64{
	"xx-small":  9,
	"x-small":   10,
	"small":     13,
	"medium":    16,
	"large":     18,
	"x-large":   24,
	"xx-large":  32,
	"xxx-large": 48,
}

// collectStyleRules 按文档顺序读取所有 <style> 中的普通规则，@规则被忽略
func collectStyleRules(root *html.Node) []styleRule {
	var rules []styleRule
	order := 0

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Style {
			var sb strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					sb.WriteString(c.Data)
				}
			}
			sheet, err := parser.Parse(sb.String())
			if err == nil {
				for _, r := range sheet.Rules {
					if r.Kind != css.QualifiedRule {
						continue
					}
					decls := convertDeclarations(r.Declarations)
					for _, selector := range r.Selectors {
						sel, err := cascadia.Parse(selector)
						if err != nil || sel.PseudoElement() != "" {
							continue
						}
						rules = append(rules, styleRule{sel: sel, order: order, decls: decls})
						order++
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return rules
}

func convertDeclarations(in []*css.Declaration) []declaration {
	out := make([]declaration, 0, len(in))
	for _, d := range in {
		out = append(out, declaration{
			property:  strings.ToLower(strings.TrimSpace(d.Property)),
			value:     strings.TrimSpace(d.Value),
			important: d.Important,
		})
	}
	return out
}

type weighted struct {
	declaration
	inline bool
	spec   cascadia.Specificity
	order  int
}

// less 按优先级升序比较：important > 行内 > 选择器特异性 > 出现顺序
func less(a, b weighted) bool {
	if a.important != b.important {
		return !a.important
	}
	if a.inline != b.inline {
		return !a.inline
	}
	if a.spec != b.spec {
		return a.spec.Less(b.spec)
	}
	return a.order < b.order
}

// terminated 补全末尾分号，douceur 会把未以分号结尾的最后一条声明解析为空值
func terminated(decls string) string {
	decls = strings.TrimSpace(decls)
	if decls != "" && !strings.HasSuffix(decls, ";") {
		decls += ";"
	}
	return decls
}

func (d *staticDocument) cascade(n *html.Node, parent *computedStyle) *computedStyle {
	cs := *parent

	for _, decl := range tagDefaults[n.DataAtom] {
		applyDeclaration(&cs, parent, decl)
	}

	var matched []weighted
	for _, r := range d.rules {
		if !r.sel.Match(n) {
			continue
		}
		for _, decl := range r.decls {
			matched = append(matched, weighted{declaration: decl, spec: r.sel.Specificity(), order: r.order})
		}
	}
	for _, a := range n.Attr {
		if a.Namespace != "" || a.Key != "style" {
			continue
		}
		inline, err := parser.ParseDeclarations(terminated(a.Val))
		if err != nil {
			break
		}
		for _, decl := range convertDeclarations(inline) {
			matched = append(matched, weighted{declaration: decl, inline: true})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool { return less(matched[i], matched[j]) })
	for _, w := range matched {
		applyDeclaration(&cs, parent, w.declaration)
	}
	return &cs
}

func applyDeclaration(cs, parent *computedStyle, decl declaration) {
	value := strings.ToLower(decl.value)
	switch decl.property {
	case "font-size":
		if px, ok := resolveFontSize(value, parent.fontSizePx); ok {
			cs.fontSizePx = px
		}
	case "color":
		if c, ok := resolveColor(value, parent.color); ok {
			cs.color = c
		}
	case "font-family":
		if value == "inherit" {
			cs.fontFamily = parent.fontFamily
		} else if value != "" {
			cs.fontFamily = decl.value
		}
	case "font-weight":
		if w, ok := resolveFontWeight(value, parent.fontWeight); ok {
			cs.fontWeight = w
		}
	case "font-style":
		switch value {
		case "inherit":
			cs.fontStyle = parent.fontStyle
		case "normal", "italic", "oblique":
			cs.fontStyle = value
		}
	case "text-align":
		if value == "inherit" {
			cs.textAlign = parent.textAlign
		} else if value != "" {
			cs.textAlign = value
		}
	}
}

func resolveFontSize(value string, parentPx float64) (float64, bool) {
	switch value {
	case "inherit":
		return parentPx, true
	case "initial":
		return rootFontSizePx, true
	case "smaller":
		return parentPx / 1.2, true
	case "larger":
		return parentPx * 1.2, true
	}
	if px, ok := fontSizeKeywords[value]; ok {
		return px, true
	}

	units := []struct {
		suffix string
		toPx   func(float64) float64
	}{
		{"rem", func(v float64) float64 { return v * rootFontSizePx }},
		{"px", func(v float64) float64 { return v }},
		{"pt", func(v float64) float64 { return v * 4 / 3 }},
		{"em", func(v float64) float64 { return v * parentPx }},
		{"%", func(v float64) float64 { return v * parentPx / 100 }},
	}
	for _, u := range units {
		if !strings.HasSuffix(value, u.suffix) {
			continue
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(value, u.suffix)), 64)
		if err != nil || n < 0 {
			return 0, false
		}
		return u.toPx(n), true
	}
	if value == "0" {
		return 0, true
	}
	return 0, false
}

func resolveFontWeight(value, parent string) (string, bool) {
	switch value {
	case "inherit":
		return parent, true
	case "normal", "initial":
		return "400", true
	case "bold":
		return "700", true
	case "bolder":
		if p, _ := strconv.Atoi(parent); p >= 400 {
			return "900", true
		}
		return "700", true
	case "lighter":
		if p, _ := strconv.Atoi(parent); p >= 700 {
			return "400", true
		}
		return "100", true
	}
	if n, err := strconv.Atoi(value); err == nil && n >= 1 && n <= 1000 {
		return strconv.Itoa(n), true
	}
	return "", false
}

// resolveColor 将颜色统一为 rgb(r, g, b) 形式，透明度不为1时使用 rgba
func resolveColor(value, parent string) (string, bool) {
	switch value {
	case "inherit", "currentcolor":
		return parent, true
	case "initial":
		return "rgb(0, 0, 0)", true
	case "transparent":
		return "rgba(0, 0, 0, 0)", true
	}

	if strings.HasPrefix(value, "#") {
		return parseHexColor(strings.TrimPrefix(value, "#"))
	}
	if strings.HasPrefix(value, "rgb") {
		return parseRGBFunc(value)
	}
	if c, ok := colornames.Map[value]; ok {
		return formatRGB(int(c.R), int(c.G), int(c.B), 1), true
	}
	return "", false
}

func parseHexColor(hex string) (string, bool) {
	switch len(hex) {
	case 3, 4:
		var expanded strings.Builder
		for _, ch := range hex {
			expanded.WriteRune(ch)
			expanded.WriteRune(ch)
		}
		hex = expanded.String()
	case 6, 8:
	default:
		return "", false
	}

	channels := make([]int, 0, 4)
	for i := 0; i < len(hex); i += 2 {
		v, err := strconv.ParseUint(hex[i:i+2], 16, 8)
		if err != nil {
			return "", false
		}
		channels = append(channels, int(v))
	}
	alpha := 1.0
	if len(channels) == 4 {
		alpha = float64(channels[3]) / 255
	}
	return formatRGB(channels[0], channels[1], channels[2], alpha), true
}

func parseRGBFunc(value string) (string, bool) {
	open := strings.IndexByte(value, '(')
	if open < 0 || !strings.HasSuffix(value, ")") {
		return "", false
	}
	args := strings.FieldsFunc(value[open+1:len(value)-1], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(args) != 3 && len(args) != 4 {
		return "", false
	}

	rgb := make([]int, 3)
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return "", false
		}
		rgb[i] = int(math.Round(math.Max(0, math.Min(255, v))))
	}
	alpha := 1.0
	if len(args) == 4 {
		a := args[3]
		pct := strings.HasSuffix(a, "%")
		v, err := strconv.ParseFloat(strings.TrimSuffix(a, "%"), 64)
		if err != nil {
			return "", false
		}
		if pct {
			v /= 100
		}
		alpha = math.Max(0, math.Min(1, v))
	}
	return formatRGB(rgb[0], rgb[1], rgb[2], alpha), true
}

func formatRGB(r, g, b int, alpha float64) string {
	if alpha >= 1 {
		return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(math.Round(alpha*1000)/1000, 'f', -1, 64))
}

func formatPx(px float64) string {
	return strconv.FormatFloat(math.Round(px*1000)/1000, 'f', -1, 64) + "px"
}
