package style

import (
	"testing"

	"github.com/showcase-pro/pptx-demo-backend/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestColorHex(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"rgb(0,0,0)", "000000"},
		{"rgb(255,255,255)", "FFFFFF"},
		{"rgb(12, 34, 56)", "0C2238"},
		{"rgb(300, 0, 1)", "FF0001"},
		{"#AbC123", "AbC123"},
		{"#fff", "fff"},
		{"red", "4A5568"},
		{"rgba(1,2,3,0.5)", "4A5568"},
		{"", "4A5568"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			assert.Equal(t, c.want, ColorHex(c.in, "4A5568"))
		})
	}
}

func TestFontSize(t *testing.T) {
	assert.Equal(t, 24, FontSize("24px", 18))
	assert.Equal(t, 13, FontSize("13.5px", 18))
	assert.Equal(t, 18, FontSize("large", 18))
	assert.Equal(t, 14, FontSize("", 14))
	assert.Equal(t, 14, FontSize("0px", 14))
}

func TestIsBold(t *testing.T) {
	assert.True(t, IsBold("bold"))
	assert.True(t, IsBold("700"))
	assert.True(t, IsBold("900"))
	assert.False(t, IsBold("400"))
	assert.False(t, IsBold("bolder"))
	assert.False(t, IsBold(""))
}

func TestNormalizeDefaults(t *testing.T) {
	got := Normalize(Raw{}, DefaultBodyFontSize, "333333")
	assert.Equal(t, model.TextStyle{
		FontSize:   14,
		Color:      "333333",
		FontFamily: "Arial",
		Align:      "left",
	}, got)
}

func TestNormalizeFullRecord(t *testing.T) {
	got := Normalize(Raw{
		FontSize:   "32px",
		Color:      "rgb(45, 55, 72)",
		FontFamily: "Georgia, serif",
		FontWeight: "700",
		FontStyle:  "italic",
		TextAlign:  "center",
	}, DefaultBulletFontSize, "4A5568")

	assert.Equal(t, model.TextStyle{
		FontSize:   32,
		Color:      "2D3748",
		FontFamily: "Georgia, serif",
		Bold:       true,
		Italic:     true,
		Align:      "center",
	}, got)
}
