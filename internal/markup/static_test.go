package markup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHTML = `<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: Helvetica, sans-serif; color: #333; }
  .slide h1 { color: rgb(26, 32, 44); font-size: 36px; text-align: center; }
  h1 { color: red; }
  .accent { color: navy !important; }
  .big { font-size: 150%; }
  @media print { h1 { color: green; } }
</style>
</head>
<body>
  <div class="slide">
    <h1 class="accent">  Title  </h1>
    <ul><li>One</li><li class="big" style="font-weight: 700">Two</li></ul>
    <p style="font-style: italic; color: #00ff00">Para <b>bold</b></p>
    <img src="pic.png">
  </div>
  <div class="slide"></div>
</body>
</html>`

func parseSample(t *testing.T) Document {
	t.Helper()
	doc, err := NewStaticParser().Parse(context.Background(), sampleHTML)
	require.NoError(t, err)
	t.Cleanup(func() { _ = doc.Close() })
	return doc
}

func TestStaticQuery(t *testing.T) {
	doc := parseSample(t)

	slides, err := doc.QueryAll(".slide")
	require.NoError(t, err)
	require.Len(t, slides, 2)

	title, err := slides[0].Query("h1, h2, .slide-title")
	require.NoError(t, err)
	require.NotNil(t, title)
	text, err := title.Text()
	require.NoError(t, err)
	assert.Equal(t, "  Title  ", text)

	items, err := slides[0].QueryAll("ul li, ol li, .bullet-point")
	require.NoError(t, err)
	require.Len(t, items, 2)
	second, _ := items[1].Text()
	assert.Equal(t, "Two", second)

	img, err := slides[0].Query("img")
	require.NoError(t, err)
	require.NotNil(t, img)
	src, err := img.Attr("src")
	require.NoError(t, err)
	assert.Equal(t, "pic.png", src)
	missing, err := img.Attr("alt")
	require.NoError(t, err)
	assert.Empty(t, missing)

	none, err := slides[1].Query("h1")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestStaticInvalidSelector(t *testing.T) {
	doc := parseSample(t)
	_, err := doc.QueryAll("[[")
	assert.ErrorIs(t, err, ErrInvalidSelector)
}

func TestStaticComputedStyle(t *testing.T) {
	doc := parseSample(t)
	slides, err := doc.QueryAll(".slide")
	require.NoError(t, err)

	title, _ := slides[0].Query("h1")
	cs, err := title.ComputedStyle()
	require.NoError(t, err)
	// !important 优先于更高特异性的规则
	assert.Equal(t, "rgb(0, 0, 128)", cs.Color)
	assert.Equal(t, "36px", cs.FontSize)
	assert.Equal(t, "700", cs.FontWeight)
	assert.Equal(t, "center", cs.TextAlign)
	assert.Equal(t, "Helvetica, sans-serif", cs.FontFamily)

	items, _ := slides[0].QueryAll("li")
	first, _ := items[0].ComputedStyle()
	assert.Equal(t, "16px", first.FontSize)
	assert.Equal(t, "rgb(51, 51, 51)", first.Color)
	assert.Equal(t, "400", first.FontWeight)

	second, _ := items[1].ComputedStyle()
	assert.Equal(t, "24px", second.FontSize)
	assert.Equal(t, "700", second.FontWeight)

	para, _ := slides[0].Query("p")
	pcs, _ := para.ComputedStyle()
	assert.Equal(t, "italic", pcs.FontStyle)
	assert.Equal(t, "rgb(0, 255, 0)", pcs.Color)
	text, _ := para.Text()
	assert.Equal(t, "Para bold", text)
}

func TestStaticParseCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewStaticParser().Parse(ctx, "<p>x</p>")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewEngine(t *testing.T) {
	p, err := New(Config{})
	require.NoError(t, err)
	assert.IsType(t, &StaticParser{}, p)

	p, err = New(Config{Engine: EngineBrowser})
	require.NoError(t, err)
	assert.IsType(t, &BrowserParser{}, p)
	assert.NoError(t, p.Close())

	_, err = New(Config{Engine: "quantum"})
	assert.ErrorIs(t, err, ErrUnknownEngine)
}
