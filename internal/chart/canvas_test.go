package chart

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func plainStyles(n int) []lipgloss.Style {
	styles := make([]lipgloss.Style, n)
	for i := range styles {
		styles[i] = lipgloss.NewStyle()
	}
	return styles
}

func TestCanvasDotResolution(t *testing.T) {
	c := NewCanvas(10, 5, 1)
	if c.DotWidth() != 20 {
		t.Errorf("DotWidth = %d, want 20", c.DotWidth())
	}
	if c.DotHeight() != 20 {
		t.Errorf("DotHeight = %d, want 20", c.DotHeight())
	}
	r := c.Region()
	if r.Width != 19 || r.Height != 19 {
		t.Errorf("Region = %+v, want 19x19", r)
	}
}

func TestCanvasSetCorners(t *testing.T) {
	c := NewCanvas(2, 1, 1)
	c.Set(0, 0, 0)
	c.Set(0, c.DotWidth()-1, c.DotHeight()-1)

	rows := c.Render(plainStyles(1))
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	cells := []rune(rows[0])
	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %q", rows[0])
	}
	if cells[0] != rune(brailleBase|0x01) {
		t.Errorf("top-left cell = %U, want dot 1 set", cells[0])
	}
	if cells[1] != rune(brailleBase|0x80) {
		t.Errorf("bottom-right cell = %U, want dot 8 set", cells[1])
	}
}

func TestCanvasIgnoresOutOfRange(t *testing.T) {
	c := NewCanvas(2, 2, 1)
	c.Set(0, -1, 0)
	c.Set(0, 0, -1)
	c.Set(0, c.DotWidth(), 0)
	c.Set(0, 0, c.DotHeight())
	c.Set(5, 0, 0) // missing layer

	for _, row := range c.Render(plainStyles(1)) {
		if strings.TrimSpace(row) != "" {
			t.Fatalf("expected blank canvas, got %q", row)
		}
	}
}

func TestCanvasPolylineIsGapless(t *testing.T) {
	c := NewCanvas(10, 2, 1)
	c.Polyline(0, []Point{{0, 0}, {float64(c.DotWidth() - 1), float64(c.DotHeight() - 1)}})

	// A diagonal across the whole canvas must touch every cell column.
	rows := c.Render(plainStyles(1))
	for col := 0; col < 10; col++ {
		touched := false
		for _, row := range rows {
			if []rune(row)[col] != ' ' {
				touched = true
				break
			}
		}
		if !touched {
			t.Fatalf("column %d untouched by diagonal polyline", col)
		}
	}
}

func TestCanvasLayerOwnership(t *testing.T) {
	c := NewCanvas(1, 1, 2)
	c.Set(0, 0, 0)
	c.Set(1, 1, 0)

	layer0 := lipgloss.NewStyle()
	layer1 := lipgloss.NewStyle()
	rows := c.Render([]lipgloss.Style{layer0, layer1})

	// Both layers land in the same cell; the merged mask carries both dots.
	want := rune(brailleBase | 0x01 | 0x08)
	got := []rune(rows[0])
	if len(got) != 1 || got[0] != want {
		t.Errorf("merged cell = %q, want %q", rows[0], string(want))
	}
}
