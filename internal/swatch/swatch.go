package swatch

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// NoColorText is shown when nothing was detected.
const NoColorText = "No se detectó color"

const (
	swatchWidth  = 14
	swatchHeight = 3
)

// Renderer draws colour codes for the terminal.
type Renderer struct {
	r *lipgloss.Renderer
}

// New wraps a lipgloss renderer. A nil renderer uses the default one.
func New(r *lipgloss.Renderer) *Renderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Renderer{r: r}
}

// Render shows the code in its own colour next to a filled block.
func (s *Renderer) Render(hex string) (string, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "", fmt.Errorf("invalid color %q: %w", hex, err)
	}

	label := s.r.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(hex)).
		Render(hex)

	block := s.r.NewStyle().
		Width(swatchWidth).
		Height(swatchHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Background(lipgloss.Color(hex)).
		Foreground(lipgloss.Color(Contrast(c))).
		Render(strings.ToUpper(hex))

	return lipgloss.JoinHorizontal(lipgloss.Center, block, "  ", label), nil
}

// RenderNone is the counterpart of Render for an utterance without colour.
func (s *Renderer) RenderNone() string {
	return s.r.NewStyle().Faint(true).Italic(true).Render(NoColorText)
}

// Contrast picks black or white text for legibility on c.
func Contrast(c colorful.Color) string {
	l, _, _ := c.Lab()
	if l > 0.6 {
		return "#000000"
	}
	return "#FFFFFF"
}

// Chip is a one line entry for table listings: a small block, the hex code
// and the name.
func (s *Renderer) Chip(name, hex string) (string, error) {
	if _, err := colorful.Hex(hex); err != nil {
		return "", fmt.Errorf("invalid color %q: %w", hex, err)
	}
	block := s.r.NewStyle().Background(lipgloss.Color(hex)).Render("    ")
	return fmt.Sprintf("%s %s  %s", block, strings.ToUpper(hex), name), nil
}
