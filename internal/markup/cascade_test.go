package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"#fff", "rgb(255, 255, 255)", true},
		{"#1a202c", "rgb(26, 32, 44)", true},
		{"#00000080", "rgba(0, 0, 0, 0.502)", true},
		{"rgb(1,2,3)", "rgb(1, 2, 3)", true},
		{"rgba(1, 2, 3, 1)", "rgb(1, 2, 3)", true},
		{"rgba(1, 2, 3, 50%)", "rgba(1, 2, 3, 0.5)", true},
		{"rgb(300, 0, 0)", "rgb(255, 0, 0)", true},
		{"steelblue", "rgb(70, 130, 180)", true},
		{"inherit", "rgb(9, 9, 9)", true},
		{"currentcolor", "rgb(9, 9, 9)", true},
		{"#12", "", false},
		{"notacolor", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := resolveColor(tt.in, "rgb(9, 9, 9)")
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveFontSize(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"12px", 12, true},
		{"12pt", 16, true},
		{"2em", 40, true},
		{"1.5rem", 24, true},
		{"50%", 10, true},
		{"large", 18, true},
		{"inherit", 20, true},
		{"0", 0, true},
		{"-3px", 0, false},
		{"huge", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := resolveFontSize(tt.in, 20)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestResolveFontWeight(t *testing.T) {
	w, ok := resolveFontWeight("bold", "400")
	assert.True(t, ok)
	assert.Equal(t, "700", w)

	w, _ = resolveFontWeight("bolder", "400")
	assert.Equal(t, "900", w)

	w, _ = resolveFontWeight("lighter", "700")
	assert.Equal(t, "400", w)

	_, ok = resolveFontWeight("heavy", "400")
	assert.False(t, ok)
}

func TestFormatPx(t *testing.T) {
	assert.Equal(t, "16px", formatPx(16))
	assert.Equal(t, "13.333px", formatPx(40.0/3))
}

func TestTerminated(t *testing.T) {
	assert.Equal(t, "color: red;", terminated(" color: red "))
	assert.Equal(t, "color: red;", terminated("color: red;"))
	assert.Equal(t, "", terminated("  "))
}
