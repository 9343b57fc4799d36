package main

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showcase-pro/pptx-demo-backend/pkg/config"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "pptxgen-test")
	if err != nil {
		panic(err)
	}
	if err := config.Init(filepath.Join(dir, "missing.yaml")); err != nil {
		panic(err)
	}
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func slideCount(t *testing.T, path string) int {
	t.Helper()
	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	n := 0
	for _, f := range r.File {
		if matched, _ := filepath.Match("ppt/slides/slide*.xml", f.Name); matched {
			n++
		}
	}
	return n
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-i", "in.json", "--output", "out.pptx"})
	require.NoError(t, err)
	assert.Equal(t, "in.json", opts.input)
	assert.Equal(t, "out.pptx", opts.output)
	assert.Equal(t, "config.yaml", opts.configFile)

	_, err = parseFlags(nil)
	assert.ErrorIs(t, err, errNoInput)
}

func TestRunFromJSONFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "slides.json")
	require.NoError(t, os.WriteFile(input, []byte(`{
		"slides": [{"layout": "title", "title": "Hello"}, {"title": "Agenda", "bullets": ["a", "b"]}],
		"options": {"author": "Ann"}
	}`), 0644))

	out := filepath.Join(dir, "nested", "deck.pptx")
	dump := filepath.Join(dir, "structure.json")
	var stdout bytes.Buffer
	err := run(context.Background(), &options{input: input, output: out, dump: dump}, &stdout)
	require.NoError(t, err)

	assert.Equal(t, 2, slideCount(t, out))
	assert.FileExists(t, dump)
	assert.Contains(t, stdout.String(), "wrote 2 slides")
}

func TestRunAcceptsBareArray(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "slides.json")
	require.NoError(t, os.WriteFile(input, []byte(`[{"title": "Only"}]`), 0644))

	out := filepath.Join(dir, "deck.pptx")
	require.NoError(t, run(context.Background(), &options{input: input, output: out}, &bytes.Buffer{}))
	assert.Equal(t, 1, slideCount(t, out))
}

func TestRunFromHTML(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(page, []byte(`<html><body>
		<div class="slide"><h1>One</h1><ul><li>x</li></ul></div>
		<div class="slide"><h2>Two</h2><p>body</p></div>
	</body></html>`), 0644))

	out := filepath.Join(dir, "deck.pptx")
	require.NoError(t, run(context.Background(), &options{html: page, output: out}, &bytes.Buffer{}))
	assert.Equal(t, 2, slideCount(t, out))
}

func TestRunRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "slides.json")
	require.NoError(t, os.WriteFile(input, []byte(`{"slides": "nope"}`), 0644))

	err := run(context.Background(), &options{input: input, output: filepath.Join(dir, "x.pptx")}, &bytes.Buffer{})
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "x.pptx"))
}
