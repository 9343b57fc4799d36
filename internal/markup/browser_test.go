//go:build integration

package markup

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 需要本地浏览器，设置 ROD_BROWSER_BIN 后运行
func TestBrowserComputedStyle(t *testing.T) {
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		t.Skip("ROD_BROWSER_BIN not set")
	}

	p := NewBrowserParser("")
	t.Cleanup(func() { _ = p.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	doc, err := p.Parse(ctx, sampleHTML)
	require.NoError(t, err)
	defer doc.Close()

	slides, err := doc.QueryAll(".slide")
	require.NoError(t, err)
	require.Len(t, slides, 2)

	title, err := slides[0].Query("h1")
	require.NoError(t, err)
	require.NotNil(t, title)

	cs, err := title.ComputedStyle()
	require.NoError(t, err)
	assert.Equal(t, "rgb(0, 0, 128)", cs.Color)
	assert.Equal(t, "36px", cs.FontSize)
	assert.Equal(t, "700", cs.FontWeight)

	none, err := slides[1].Query("h1")
	require.NoError(t, err)
	assert.Nil(t, none)
}
