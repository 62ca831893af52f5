package chart

import (
	"math"
	"testing"
	"time"

	"github.com/netpulse-dev/netpulse/internal/history"
)

func TestProjectYMarginBounds(t *testing.T) {
	const height = 100.0
	max := 250.0

	if got := ProjectY(max, max, height); got != 0 {
		t.Errorf("running max should land on the top margin, got %f", got)
	}
	if got := ProjectY(0, max, height); got != height {
		t.Errorf("zero should land on the bottom margin, got %f", got)
	}
	mid := ProjectY(max/2, max, height)
	if math.Abs(mid-height/2) > 1e-9 {
		t.Errorf("half max should land mid-region, got %f", mid)
	}
}

func TestProjectYDegenerateMax(t *testing.T) {
	// A zero or negative max falls back to the floor of 1.
	if got := ProjectY(1, 0, 100); got != 0 {
		t.Errorf("v=1 with floored max should hit the top, got %f", got)
	}
	if got := ProjectY(0.5, 0, 100); got != 50 {
		t.Errorf("v=0.5 with floored max should hit midway, got %f", got)
	}
}

func TestProjectYClampsOverscale(t *testing.T) {
	// Values above max clamp to the top rather than leaving the region.
	if got := ProjectY(300, 100, 80); got != 0 {
		t.Errorf("overscale value should clamp to top margin, got %f", got)
	}
}

func TestProjectXTimeProportional(t *testing.T) {
	first := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	last := first.Add(100 * time.Second)
	const width = 200.0

	tests := []struct {
		name string
		at   time.Duration
		want float64
	}{
		{"first sample", 0, 0},
		{"last sample", 100 * time.Second, width},
		{"quarter span", 25 * time.Second, width / 4},
		// An uneven gap must land proportionally to time, not index.
		{"uneven gap", 90 * time.Second, width * 0.9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProjectX(first.Add(tt.at), first, last, width)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ProjectX = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestProjectXCollapsedSpan(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	if got := ProjectX(at, at, at, 200); got != 0 {
		t.Errorf("equal timestamps should collapse to the left margin, got %f", got)
	}
}

func TestPlotPointsOrderAndSeries(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	samples := []history.Sample{
		{Timestamp: base, DownloadMbps: 0, UploadMbps: 50},
		{Timestamp: base.Add(10 * time.Second), DownloadMbps: 100, UploadMbps: 25},
		{Timestamp: base.Add(20 * time.Second), DownloadMbps: 50, UploadMbps: 0},
	}
	r := Region{Width: 100, Height: 40}

	dl := PlotPoints(samples, SeriesDownload, 100, r)
	ul := PlotPoints(samples, SeriesUpload, 100, r)
	if len(dl) != 3 || len(ul) != 3 {
		t.Fatalf("expected 3 points per series, got %d and %d", len(dl), len(ul))
	}
	for i := 1; i < len(dl); i++ {
		if dl[i].X <= dl[i-1].X {
			t.Errorf("x coordinates must increase with time: %v", dl)
		}
	}
	if dl[0].Y != 40 || dl[1].Y != 0 {
		t.Errorf("download projection wrong: %v", dl)
	}
	if ul[2].Y != 40 {
		t.Errorf("upload zero should sit on the bottom margin: %v", ul)
	}
}

func TestPlotPointsEmpty(t *testing.T) {
	if got := PlotPoints(nil, SeriesDownload, 1, Region{Width: 10, Height: 10}); got != nil {
		t.Errorf("expected nil for empty window, got %v", got)
	}
}
