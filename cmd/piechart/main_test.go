package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/piechart/internal/config"
)

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	out := filepath.Join(dir, "regions.png")

	rootCmd.SetArgs([]string{"render", "/120x80/north:12;south:7.5/legend=on", "-o", out})
	require.NoError(t, rootCmd.Execute())

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
}

func TestRenderCommandRejectsBadPath(t *testing.T) {
	t.Chdir(t.TempDir())

	rootCmd.SetArgs([]string{"render", "nonsense", "-o", "x.png"})
	assert.Error(t, rootCmd.Execute())
}

func TestVersionCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	defer rootCmd.SetOut(nil)
	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "piechart dev")
}

func TestNewRendererPalette(t *testing.T) {
	r, err := newRenderer(config.ChartConfig{Palette: []string{"ff0000", "#00f"}})
	require.NoError(t, err)
	assert.Equal(t, 2, r.Config().Palette.Len())

	_, err = newRenderer(config.ChartConfig{Palette: []string{"nothex"}})
	assert.Error(t, err)
}
