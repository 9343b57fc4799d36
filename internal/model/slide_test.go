package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulletsAcceptMixedShapes(t *testing.T) {
	var s Slide
	err := json.Unmarshal([]byte(`{"bullets":["one",{"text":"two","fontSize":20,"color":"FF0000","indentLevel":1}]}`), &s)
	require.NoError(t, err)

	require.Len(t, s.Bullets, 2)
	assert.Equal(t, Bullet{Text: "one"}, s.Bullets[0])
	assert.Equal(t, Bullet{Text: "two", FontSize: 20, Color: "FF0000", IndentLevel: 1}, s.Bullets[1])
	assert.Equal(t, []string{"one", "two"}, s.Bullets.Texts())
}

func TestBulletAcceptsScalars(t *testing.T) {
	var s Slide
	require.NoError(t, json.Unmarshal([]byte(`{"bullets":["a",7,true,null,{"text":"b","fontSize":"20"}]}`), &s))
	assert.Equal(t, []string{"a", "7", "true", "", "b"}, s.Bullets.Texts())
	assert.Equal(t, 20, s.Bullets[4].FontSize)
}

func TestLayoutFallsBackToDefault(t *testing.T) {
	for body, want := range map[string]Layout{
		`{"layout":"comparison"}`: LayoutComparison,
		`{"layout":5}`:            LayoutDefault,
		`{"layout":"slideshow"}`:  LayoutDefault,
		`{"layout":null}`:         LayoutDefault,
		`{}`:                      "",
	} {
		var s Slide
		require.NoError(t, json.Unmarshal([]byte(body), &s), body)
		assert.Equal(t, want, s.Layout, body)
	}
}

func TestMistypedFieldsDecodeAsDefaults(t *testing.T) {
	var s Slide
	require.NoError(t, json.Unmarshal([]byte(`{
		"title": 123,
		"subtitle": {"nested": true},
		"image": {"url": "a.png", "x": "2", "y": "high", "width": true},
		"textBlocks": [{"text": "t", "fontSize": "20", "bold": "true", "x": []}, "not a block"],
		"leftBullets": "not a list",
		"centerAlign": "true"
	}`), &s))

	assert.Equal(t, "123", s.Title)
	assert.Empty(t, s.Subtitle)
	require.NotNil(t, s.Image)
	assert.Equal(t, Image{URL: "a.png", X: 2}, *s.Image)
	require.Len(t, s.TextBlocks, 1)
	assert.Equal(t, TextBlock{Text: "t", FontSize: 20, Bold: true}, s.TextBlocks[0])
	assert.Nil(t, s.LeftBullets)
	require.NotNil(t, s.CenterAlign)
	assert.True(t, *s.CenterAlign)
}

func TestInvalidCenterAlignIsAbsent(t *testing.T) {
	var s Slide
	require.NoError(t, json.Unmarshal([]byte(`{"centerAlign":"maybe","image":"a.png"}`), &s))
	assert.Nil(t, s.CenterAlign)
	assert.Nil(t, s.Image)
}

func TestCenterAlignDistinguishesAbsentFromFalse(t *testing.T) {
	var absent, off Slide
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	require.NoError(t, json.Unmarshal([]byte(`{"centerAlign":false}`), &off))

	assert.Nil(t, absent.CenterAlign)
	require.NotNil(t, off.CenterAlign)
	assert.False(t, *off.CenterAlign)
}

func TestHasImage(t *testing.T) {
	assert.False(t, (&Slide{}).HasImage())
	assert.False(t, (&Slide{Image: &Image{}}).HasImage())
	assert.True(t, (&Slide{Image: &Image{URL: "a.png"}}).HasImage())
}

func TestOptionsMerge(t *testing.T) {
	defaults := Options{Author: "A", Company: "C", Title: "T", Subject: "S", Revision: "1"}
	got := Options{Title: "Deck", Author: "  "}.Merge(defaults)
	assert.Equal(t, Options{Author: "A", Company: "C", Title: "Deck", Subject: "S", Revision: "1"}, got)
}
