package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"
)

// Storage writes finished reports to an output directory as CSV and
// pretty-printed JSON.
type Storage struct {
	baseDir string
	prefix  string
	logger  *logrus.Logger
	mu      sync.Mutex
}

// NewStorage prepares the output directory. An empty dir means the current
// directory; an empty prefix defaults to "primes".
func NewStorage(dir, prefix string, logger *logrus.Logger) (*Storage, error) {
	if dir == "" {
		dir = "."
	}
	if prefix == "" {
		prefix = "primes"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Storage{baseDir: dir, prefix: prefix, logger: logger}, nil
}

// WriteCSV writes the report table as <prefix>_report.csv and returns the
// path written.
func (s *Storage) WriteCSV(rep *Report) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.baseDir, s.prefix+"_report.csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"x", "ground_truth", "estimate", "abs_err", "rel_err", "error"}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rep.Rows {
		truth := ""
		if row.GroundTruth != nil {
			truth = strconv.Itoa(*row.GroundTruth)
		}
		record := []string{
			strconv.FormatFloat(row.X, 'g', -1, 64),
			truth,
			strconv.FormatFloat(row.Estimate, 'f', 6, 64),
			strconv.FormatFloat(row.AbsErr, 'f', 6, 64),
			strconv.FormatFloat(row.RelErr, 'e', 6, 64),
			row.Err,
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush report: %w", err)
	}
	s.logger.Infof("wrote %d rows to %s", len(rep.Rows), path)
	return path, nil
}

// WriteJSON writes the full report, breakdowns included when present, as
// <prefix>_report.json and returns the path written.
func (s *Storage) WriteJSON(rep *Report) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.baseDir, s.prefix+"_report.json")
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	s.logger.Infof("wrote report to %s", path)
	return path, nil
}
