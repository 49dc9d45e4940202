// Package titlefile reads seed job titles from plain-text and CSV files.
package titlefile

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Parse reads seed titles from path, dispatching on the file extension.
func Parse(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".txt":
		return ParseTextReader(file)
	case ".csv":
		return ParseCSVReader(file)
	default:
		return nil, fmt.Errorf("unknown file format: %s (must be .txt or .csv)", ext)
	}
}

// ParseTextReader reads one title per line. Blank lines and lines starting
// with # are skipped; titles are trimmed but otherwise untouched.
func ParseTextReader(r io.Reader) ([]string, error) {
	var titles []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		titles = append(titles, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read titles: %w", err)
	}
	return titles, nil
}

// ParseCSVReader reads titles from the column a "title" header names, or
// from the first column when the file has no such header. In the headerless
// case the first row already counts as data.
func ParseCSVReader(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	first, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read csv: %w", err)
	}

	col := 0
	hasHeader := false
	for i, h := range first {
		if strings.EqualFold(strings.TrimSpace(h), "title") {
			col = i
			hasHeader = true
			break
		}
	}

	var titles []string
	if !hasHeader && len(first) > 0 {
		if t := strings.TrimSpace(first[0]); t != "" {
			titles = append(titles, t)
		}
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	for _, rec := range records {
		if col >= len(rec) {
			continue
		}
		if t := strings.TrimSpace(rec[col]); t != "" {
			titles = append(titles, t)
		}
	}
	return titles, nil
}
