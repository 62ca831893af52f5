package chart

import (
	"time"

	"github.com/netpulse-dev/netpulse/internal/history"
)

// Point is a coordinate inside a drawing region, in dot units with the origin
// at the top left.
type Point struct {
	X float64
	Y float64
}

// Region is the pixel-space rectangle points are normalized into.
type Region struct {
	Width  float64
	Height float64
}

// Series selects which speed value a projection reads from a sample.
type Series int

const (
	SeriesDownload Series = iota
	SeriesUpload
)

func (s Series) value(smp history.Sample) float64 {
	if s == SeriesUpload {
		return smp.UploadMbps
	}
	return smp.DownloadMbps
}

// ProjectX maps a timestamp into [0, width] proportionally to real elapsed
// time between first and last. When the span collapses every point lands on
// the left margin.
func ProjectX(t, first, last time.Time, width float64) float64 {
	span := last.Sub(first)
	if span <= 0 {
		return 0
	}
	frac := float64(t.Sub(first)) / float64(span)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return frac * width
}

// ProjectY maps a speed into [0, height] inverse-linearly against max, so the
// running maximum lands on the top margin and zero on the bottom. max is
// expected to be pre-floored (see history.Scale.Max).
func ProjectY(v, max, height float64) float64 {
	if max <= 0 {
		max = 1
	}
	frac := v / max
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return (1 - frac) * height
}

// PlotPoints projects one series of a time-ordered sample window into the
// region. The result preserves sample order.
func PlotPoints(samples []history.Sample, series Series, max float64, r Region) []Point {
	if len(samples) == 0 {
		return nil
	}
	first := samples[0].Timestamp
	last := samples[len(samples)-1].Timestamp

	pts := make([]Point, 0, len(samples))
	for _, s := range samples {
		pts = append(pts, Point{
			X: ProjectX(s.Timestamp, first, last, r.Width),
			Y: ProjectY(series.value(s), max, r.Height),
		})
	}
	return pts
}
