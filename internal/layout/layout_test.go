package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showcase-pro/pptx-demo-backend/internal/model"
)

func boolPtr(b bool) *bool { return &b }

func kinds(prims []Primitive) []Kind {
	out := make([]Kind, 0, len(prims))
	for _, p := range prims {
		out = append(out, p.Kind)
	}
	return out
}

func TestResolve(t *testing.T) {
	for _, l := range []model.Layout{"", "unknown", "Title", "bullets"} {
		assert.Equal(t, model.LayoutDefault, Resolve(l), l)
		assert.Equal(t, Resolve(l), Resolve(Resolve(l)))
	}
	assert.Equal(t, model.LayoutComparison, Resolve(model.LayoutComparison))
	assert.Equal(t, model.LayoutTitleContent, Resolve(model.LayoutTitleContent))
}

func TestTitleLayout(t *testing.T) {
	prims := Build(model.Slide{
		Layout:   model.LayoutTitle,
		Title:    "Hello",
		Subtitle: "World",
		Bullets:  model.Bullets{{Text: "ignored"}},
		Image:    &model.Image{URL: "pic.png"},
	})

	require.Equal(t, []Kind{KindText, KindText}, kinds(prims))
	assert.Equal(t, "Hello", prims[0].Text)
	assert.Equal(t, Box{X: 1, Y: 2.5, W: 8, H: 1.5}, prims[0].Box)
	assert.Equal(t, TextStyle{FontSize: 40, Bold: true, Color: "2D3748", Align: "center", FontFace: "Calibri"}, prims[0].Style)
	assert.Equal(t, "World", prims[1].Text)
	assert.Equal(t, Box{X: 1, Y: 4, W: 8, H: 1}, prims[1].Box)
	assert.Equal(t, "4A5568", prims[1].Style.Color)
	assert.EqualValues(t, 24, prims[1].Style.FontSize)
}

func TestTitleLayoutOverrides(t *testing.T) {
	prims := Build(model.Slide{
		Layout:        model.LayoutTitle,
		Title:         "T",
		Subtitle:      "S",
		TitleColor:    "FF0000",
		SubtitleColor: "00FF00",
		FontFamily:    "Georgia",
		CenterAlign:   boolPtr(false),
	})

	require.Len(t, prims, 2)
	assert.Equal(t, "left", prims[0].Style.Align)
	assert.Equal(t, "FF0000", prims[0].Style.Color)
	assert.Equal(t, "Georgia", prims[0].Style.FontFace)
	assert.Equal(t, "left", prims[1].Style.Align)
	assert.Equal(t, "00FF00", prims[1].Style.Color)
}

func TestDefaultLayout(t *testing.T) {
	prims := Build(model.Slide{
		Title:   "Agenda",
		Bullets: model.Bullets{{Text: "a"}, {Text: "b", IndentLevel: 1, FontSize: 99, Color: "FF0000"}},
	})

	require.Equal(t, []Kind{KindText, KindLine, KindBullets}, kinds(prims))
	assert.Equal(t, "left", prims[0].Style.Align)
	assert.Equal(t, ruleBox, prims[1].Box)
	assert.Equal(t, Stroke{Color: "4472C4", Width: 2}, prims[1].Stroke)

	bullets := prims[2]
	assert.Equal(t, Box{X: 0.5, Y: 1.8, W: 9, H: 4.5}, bullets.Box)
	assert.Equal(t, []BulletItem{{Text: "a"}, {Text: "b", IndentLevel: 1}}, bullets.Items)
	assert.EqualValues(t, 18, bullets.Style.FontSize)
	assert.Equal(t, "4A5568", bullets.Style.Color)
	assert.EqualValues(t, 32, bullets.Style.LineSpacing)
}

func TestDefaultLayoutWithoutTitle(t *testing.T) {
	prims := Build(model.Slide{Layout: "nonsense", Bullets: model.Bullets{{Text: "a"}}, BulletColor: "123456"})

	require.Equal(t, []Kind{KindBullets}, kinds(prims))
	assert.EqualValues(t, 1, prims[0].Box.Y)
	assert.Equal(t, "123456", prims[0].Style.Color)
}

func TestTitleContentCenterAlign(t *testing.T) {
	prims := Build(model.Slide{Layout: model.LayoutTitleContent, Title: "T", CenterAlign: boolPtr(true)})
	require.NotEmpty(t, prims)
	assert.Equal(t, "center", prims[0].Style.Align)
}

func TestEmptyFieldsEmitNothing(t *testing.T) {
	prims := Build(model.Slide{
		Bullets:    model.Bullets{},
		TextBlocks: []model.TextBlock{},
		Image:      &model.Image{},
	})
	assert.Empty(t, prims)

	prims = Build(model.Slide{TextBlocks: []model.TextBlock{{Text: ""}, {Text: "x"}}})
	assert.Len(t, prims, 1)
}

func TestTwoColumnLayout(t *testing.T) {
	prims := Build(model.Slide{
		Layout:       model.LayoutTwoColumn,
		Title:        "Cols",
		CenterAlign:  boolPtr(true),
		LeftContent:  "left",
		RightContent: "right",
		ContentColor: "111111",
		Image:        &model.Image{URL: "a.png"},
	})

	require.Equal(t, []Kind{KindText, KindLine, KindText, KindText, KindImage}, kinds(prims))
	assert.Equal(t, "left", prims[0].Style.Align)
	assert.Equal(t, Box{X: 0.5, Y: 1.8, W: 4.2, H: 4}, prims[2].Box)
	assert.Equal(t, Box{X: 5, Y: 1.8, W: 4.2, H: 4}, prims[3].Box)
	assert.Equal(t, "top", prims[2].Style.VAlign)
	assert.Equal(t, "111111", prims[3].Style.Color)
	assert.Equal(t, Box{X: 1, Y: 3, W: 3, H: 2}, prims[4].Box)
}

func TestComparisonLayout(t *testing.T) {
	prims := Build(model.Slide{
		Layout:       model.LayoutComparison,
		LeftBullets:  model.Bullets{{Text: "A"}},
		RightBullets: model.Bullets{{Text: "B"}},
		Bullets:      model.Bullets{{Text: "ignored"}},
		TextBlocks:   []model.TextBlock{{Text: "ignored"}},
	})

	require.Equal(t, []Kind{KindBullets, KindBullets}, kinds(prims))
	left, right := prims[0], prims[1]
	assert.Equal(t, []BulletItem{{Text: "A"}}, left.Items)
	assert.Equal(t, []BulletItem{{Text: "B"}}, right.Items)
	assert.Less(t, left.Box.X+left.Box.W, right.Box.X)
	assert.EqualValues(t, 16, left.Style.FontSize)
	assert.EqualValues(t, 32, left.Style.LineSpacing)
}

func TestComparisonHeaders(t *testing.T) {
	prims := Build(model.Slide{
		Layout:     model.LayoutComparison,
		Title:      "Vs",
		LeftTitle:  "Before",
		RightTitle: "After",
	})

	require.Equal(t, []Kind{KindText, KindText, KindText}, kinds(prims))
	assert.Equal(t, "center", prims[0].Style.Align)
	assert.Equal(t, "1F4E79", prims[1].Style.Color)
	assert.Equal(t, Box{X: 0.5, Y: 1.5, W: 4.2, H: 0.6}, prims[1].Box)
	assert.Equal(t, "70AD47", prims[2].Style.Color)
	assert.Equal(t, Box{X: 5, Y: 1.5, W: 4.2, H: 0.6}, prims[2].Box)
}

func TestImageWithTextLayout(t *testing.T) {
	prims := Build(model.Slide{
		Layout: model.LayoutImageWithText,
		Title:  "Pic",
		Text:   "caption",
		Image:  &model.Image{URL: "https://example.com/a.png", X: 7, Y: 7},
	})

	require.Equal(t, []Kind{KindText, KindLine, KindImage, KindText}, kinds(prims))
	img := prims[2]
	assert.Equal(t, Box{X: 0.5, Y: 1.8, W: 4, H: 3.5}, img.Box)
	require.NotNil(t, img.Image)
	assert.True(t, img.Image.Contain)
	assert.Equal(t, "https://example.com/a.png", img.Image.Ref)

	require.Len(t, img.Image.Placeholder, 2)
	ph := img.Image.Placeholder
	assert.Equal(t, KindRect, ph[0].Kind)
	assert.Equal(t, img.Box, ph[0].Box)
	assert.Equal(t, "E0E0E0", ph[0].Fill)
	assert.Equal(t, Stroke{Color: "999999", Width: 1}, ph[0].Stroke)
	assert.Equal(t, "Image Placeholder", ph[1].Text)
	assert.Equal(t, Box{X: 0.5, Y: 3.3, W: 4, H: 0.5}, ph[1].Box)

	assert.Equal(t, Box{X: 5, Y: 1.8, W: 4.2, H: 3.5}, prims[3].Box)
	assert.Equal(t, "top", prims[3].Style.VAlign)
}

func TestOverlayImagePlaceholderGeometry(t *testing.T) {
	prims := Overlay(model.Slide{Image: &model.Image{URL: "x.png", X: 2, Y: 1, Width: 4, Height: 3}})

	require.Len(t, prims, 1)
	img := prims[0]
	assert.Equal(t, Box{X: 2, Y: 1, W: 4, H: 3}, img.Box)
	ph := img.Image.Placeholder
	require.Len(t, ph, 2)
	assert.Equal(t, img.Box, ph[0].Box)
	assert.Equal(t, "F0F0F0", ph[0].Fill)
	assert.Equal(t, "CCCCCC", ph[0].Stroke.Color)
	assert.Equal(t, "Image Error", ph[1].Text)
	assert.InDelta(t, 2.3, ph[1].Box.Y, 1e-9)
	assert.Equal(t, 0.4, ph[1].Box.H)
	assert.EqualValues(t, 12, ph[1].Style.FontSize)
}

func TestOverlayTextBlockDefaults(t *testing.T) {
	prims := Overlay(model.Slide{TextBlocks: []model.TextBlock{
		{Text: "plain"},
		{Text: "custom", X: 1, Y: 4, Width: 3, Height: 0.5, FontSize: 20, Color: "FF0000", Align: "right", Bold: true, Italic: true, FontFamily: "Verdana"},
	}})

	require.Len(t, prims, 2)
	assert.Equal(t, Box{X: 0.5, Y: 2, W: 9, H: 1}, prims[0].Box)
	assert.Equal(t, TextStyle{FontSize: 14, Color: "333333", Align: "left", FontFace: "Arial"}, prims[0].Style)
	assert.Equal(t, Box{X: 1, Y: 4, W: 3, H: 0.5}, prims[1].Box)
	assert.Equal(t, TextStyle{FontSize: 20, Color: "FF0000", Align: "right", Bold: true, Italic: true, FontFace: "Verdana"}, prims[1].Style)
}

func TestOverlayOrder(t *testing.T) {
	prims := Overlay(model.Slide{
		TextBlocks: []model.TextBlock{{Text: "t"}},
		Image:      &model.Image{URL: "i.png"},
		Bullets:    model.Bullets{{Text: "b"}},
	})
	assert.Equal(t, []Kind{KindBullets, KindImage, KindText}, kinds(prims))
}

func TestHasOverlay(t *testing.T) {
	assert.False(t, HasOverlay(model.LayoutTitle))
	assert.False(t, HasOverlay(model.LayoutComparison))
	assert.True(t, HasOverlay(model.LayoutImageWithText))
	assert.True(t, HasOverlay(model.LayoutTwoColumn))
	assert.True(t, HasOverlay("whatever"))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "bullets", KindBullets.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
