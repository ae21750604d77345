package swatch

import (
	"io"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainRenderer() *Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return New(r)
}

func TestRenderContainsCode(t *testing.T) {
	out, err := plainRenderer().Render("#6F00FF")
	require.NoError(t, err)
	assert.Contains(t, out, "#6F00FF")
}

func TestRenderUppercasesBlockLabel(t *testing.T) {
	out, err := plainRenderer().Render("#aabbcc")
	require.NoError(t, err)
	assert.Contains(t, out, "#AABBCC")
	assert.Contains(t, out, "#aabbcc")
}

func TestRenderRejectsInvalid(t *testing.T) {
	_, err := plainRenderer().Render("rojo")
	assert.Error(t, err)
}

func TestRenderNone(t *testing.T) {
	assert.Contains(t, plainRenderer().RenderNone(), NoColorText)
}

func TestContrast(t *testing.T) {
	tests := []struct {
		hex  string
		want string
	}{
		{"#FFFFFF", "#000000"},
		{"#FFFF00", "#000000"},
		{"#000000", "#FFFFFF"},
		{"#0000FF", "#FFFFFF"},
		{"#800000", "#FFFFFF"},
	}
	for _, tt := range tests {
		c, err := colorful.Hex(tt.hex)
		require.NoError(t, err)
		assert.Equal(t, tt.want, Contrast(c), tt.hex)
	}
}

func TestChip(t *testing.T) {
	out, err := plainRenderer().Chip("azul marino", "#000080")
	require.NoError(t, err)
	assert.Equal(t, "     #000080  azul marino", out)

	_, err = plainRenderer().Chip("roto", "#12")
	assert.Error(t, err)
}
