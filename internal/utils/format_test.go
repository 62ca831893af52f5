package utils

import "testing"

func TestFormatMbps(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0.00"},
		{87.456, "87.46"},
		{100, "100.00"},
		{9.999, "10.00"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatMbps(tt.v); got != tt.want {
				t.Errorf("FormatMbps(%v) = %q, want %q", tt.v, got, tt.want)
			}
		})
	}
}

func TestFormatLatency(t *testing.T) {
	if got := FormatLatency(0); got != "-" {
		t.Errorf("FormatLatency(0) = %q, want -", got)
	}
	if got := FormatLatency(23.6); got != "24 ms" {
		t.Errorf("FormatLatency(23.6) = %q, want 24 ms", got)
	}
}
