// Package zetazeros loads the list of imaginary parts of nontrivial zeta
// zeros the explicit formula sums over.
//
// The list is read fully into memory before any estimate runs; the file
// handle never stays open into the computation path. Values are assumed
// pre-sorted ascending, deduplicated, and on the critical line; none of
// that is verified here.
package zetazeros

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/dkilfoyle/Primes/internal/numerr"
)

//go:embed zeros_1000.txt
var embedded []byte

var (
	defaultOnce  sync.Once
	defaultZeros []float64
)

// Default returns the embedded table of the first 1000 zeros. The slice is
// shared and must not be mutated.
func Default() []float64 {
	defaultOnce.Do(func() {
		zeros, err := parse(bytes.NewReader(embedded), "embedded zeros_1000.txt")
		if err != nil {
			panic(fmt.Sprintf("zetazeros: embedded table corrupt: %v", err))
		}
		defaultZeros = zeros
	})
	return defaultZeros
}

// Load reads a zero list from path: one imaginary part per line, ascending.
// Blank lines and lines starting with '#' are skipped, so published tables
// paste in unchanged. Any malformed line fails the whole load with a
// ParseError; there is no partial result.
func Load(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open zero list: %w", err)
	}
	defer f.Close()

	return parse(f, path)
}

func parse(r io.Reader, name string) ([]float64, error) {
	var zeros []float64
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		t, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, &numerr.ParseError{
				Path:   name,
				Line:   line,
				Reason: fmt.Sprintf("not a number: %q", text),
			}
		}
		if t <= 0 {
			return nil, &numerr.ParseError{
				Path:   name,
				Line:   line,
				Reason: fmt.Sprintf("zero ordinate must be positive, got %g", t),
			}
		}
		zeros = append(zeros, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read zero list: %w", err)
	}
	return zeros, nil
}
