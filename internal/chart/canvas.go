package chart

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille cells pack 2x4 dots each. Dot bit layout within a cell follows the
// Unicode braille pattern block (U+2800).
const (
	dotsPerCellX = 2
	dotsPerCellY = 4
	brailleBase  = 0x2800
)

var brailleBits = [dotsPerCellY][dotsPerCellX]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a fixed-size braille drawing surface with one dot layer per
// series. Later layers win the cell color when layers overlap.
type Canvas struct {
	cellsW int
	cellsH int
	layers [][]rune // per layer: cellsW*cellsH bit masks
}

// NewCanvas creates a canvas of cellsW x cellsH terminal cells with the given
// number of layers.
func NewCanvas(cellsW, cellsH, layers int) *Canvas {
	if cellsW < 1 {
		cellsW = 1
	}
	if cellsH < 1 {
		cellsH = 1
	}
	if layers < 1 {
		layers = 1
	}
	c := &Canvas{cellsW: cellsW, cellsH: cellsH}
	for i := 0; i < layers; i++ {
		c.layers = append(c.layers, make([]rune, cellsW*cellsH))
	}
	return c
}

// DotWidth returns the horizontal dot resolution.
func (c *Canvas) DotWidth() int { return c.cellsW * dotsPerCellX }

// DotHeight returns the vertical dot resolution.
func (c *Canvas) DotHeight() int { return c.cellsH * dotsPerCellY }

// Region returns the drawing region matching the dot resolution, sized so the
// maximum coordinate lands on the last dot row/column.
func (c *Canvas) Region() Region {
	return Region{
		Width:  float64(c.DotWidth() - 1),
		Height: float64(c.DotHeight() - 1),
	}
}

// Set turns on the dot at (x, y) on the given layer. Out-of-range dots are
// ignored.
func (c *Canvas) Set(layer, x, y int) {
	if layer < 0 || layer >= len(c.layers) {
		return
	}
	if x < 0 || y < 0 || x >= c.DotWidth() || y >= c.DotHeight() {
		return
	}
	cell := (y/dotsPerCellY)*c.cellsW + x/dotsPerCellX
	c.layers[layer][cell] |= brailleBits[y%dotsPerCellY][x%dotsPerCellX]
}

// Polyline draws straight dot runs between consecutive points on a layer.
func (c *Canvas) Polyline(layer int, pts []Point) {
	if len(pts) == 1 {
		c.Set(layer, round(pts[0].X), round(pts[0].Y))
		return
	}
	for i := 0; i < len(pts)-1; i++ {
		c.line(layer, pts[i], pts[i+1])
	}
}

func (c *Canvas) line(layer int, a, b Point) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	steps := int(math.Max(math.Abs(dx), math.Abs(dy)))
	if steps < 1 {
		steps = 1
	}
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		c.Set(layer, round(a.X+dx*t), round(a.Y+dy*t))
	}
}

func round(v float64) int {
	return int(math.Round(v))
}

// Render flattens the layers into styled rows of braille runes. styles are
// applied per layer; a cell touched by multiple layers takes the style of the
// highest layer with dots in it.
func (c *Canvas) Render(styles []lipgloss.Style) []string {
	rows := make([]string, 0, c.cellsH)
	for cy := 0; cy < c.cellsH; cy++ {
		var sb strings.Builder
		for cx := 0; cx < c.cellsW; cx++ {
			idx := cy*c.cellsW + cx
			var mask rune
			owner := -1
			for l, layer := range c.layers {
				if layer[idx] != 0 {
					mask |= layer[idx]
					owner = l
				}
			}
			if mask == 0 {
				sb.WriteRune(' ')
				continue
			}
			glyph := string(brailleBase + mask)
			if owner >= 0 && owner < len(styles) {
				glyph = styles[owner].Render(glyph)
			}
			sb.WriteString(glyph)
		}
		rows = append(rows, sb.String())
	}
	return rows
}
