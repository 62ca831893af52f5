package history

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrNoSamples is returned when an export is requested with nothing retained.
var ErrNoSamples = errors.New("no samples to export")

var exportHeader = []string{"Date", "Time", "Download (Mbps)", "Upload (Mbps)"}

// WriteCSV writes the samples as CSV: header row, then one row per sample with
// speeds formatted to exactly two decimals.
func WriteCSV(w io.Writer, samples []Sample) error {
	if len(samples) == 0 {
		return ErrNoSamples
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, s := range samples {
		row := []string{
			s.Timestamp.Format("2006-01-02"),
			s.Timestamp.Format("15:04:05"),
			fmt.Sprintf("%.2f", s.DownloadMbps),
			fmt.Sprintf("%.2f", s.UploadMbps),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFile writes the samples to the next free speedlog_<n>.csv in dir and
// returns the full path of the file written.
func ExportFile(dir string, samples []Sample) (string, error) {
	if len(samples) == 0 {
		return "", ErrNoSamples
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path, err := nextExportPath(dir)
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	if err := WriteCSV(f, samples); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close export file: %w", err)
	}
	return path, nil
}

// nextExportPath picks the first unused counter, matching the original
// incrementing-filename behavior.
func nextExportPath(dir string) (string, error) {
	for n := 1; ; n++ {
		path := filepath.Join(dir, fmt.Sprintf("speedlog_%d.csv", n))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		} else if err != nil {
			return "", fmt.Errorf("probe export file: %w", err)
		}
	}
}
