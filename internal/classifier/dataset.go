package classifier

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
)

const (
	DefaultTextColumn  = "Resume"
	DefaultLabelColumn = "Category"
)

// Example is one labeled training document.
type Example struct {
	Text  string `mapstructure:"text" json:"text"`
	Label string `mapstructure:"label" json:"label"`
}

// Dataset is an ordered collection of labeled examples.
type Dataset []Example

// DatasetConfig names the columns holding the document text and its label.
type DatasetConfig struct {
	TextColumn  string
	LabelColumn string
}

func (c *DatasetConfig) applyDefaults() {
	if strings.TrimSpace(c.TextColumn) == "" {
		c.TextColumn = DefaultTextColumn
	}
	if strings.TrimSpace(c.LabelColumn) == "" {
		c.LabelColumn = DefaultLabelColumn
	}
}

// Texts returns the document texts in order.
func (d Dataset) Texts() []string {
	texts := make([]string, len(d))
	for i, ex := range d {
		texts[i] = ex.Text
	}
	return texts
}

// Labels returns the labels in order.
func (d Dataset) Labels() []string {
	labels := make([]string, len(d))
	for i, ex := range d {
		labels[i] = ex.Label
	}
	return labels
}

// Classes returns the distinct labels, sorted.
func (d Dataset) Classes() []string {
	return uniqueSorted(d.Labels())
}

// LoadDataset reads a CSV file (header row required) or a JSON Lines file (.jsonl, .ndjson).
func LoadDataset(path string, cfg DatasetConfig) (Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %q: %w", path, err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		return ReadJSONLines(file, cfg)
	default:
		return ReadCSV(file, cfg)
	}
}

// ReadCSV decodes a CSV stream whose header names the text and label columns.
func ReadCSV(r io.Reader, cfg DatasetConfig) (Dataset, error) {
	cfg.applyDefaults()

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: dataset is empty, expected %q and %q columns", ErrDataFormat, cfg.TextColumn, cfg.LabelColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	if err := requireColumns(header, cfg); err != nil {
		return nil, err
	}

	var dataset Dataset
	for row := 2; ; row++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset row %d: %w", row, err)
		}

		record := make(map[string]any, len(header))
		for i, name := range header {
			if i < len(fields) {
				record[name] = fields[i]
			}
		}

		ex, err := decodeRecord(record, cfg, row)
		if err != nil {
			return nil, err
		}
		dataset = append(dataset, ex)
	}

	return dataset, nil
}

// ReadJSONLines decodes one JSON object per line. Blank lines are skipped.
func ReadJSONLines(r io.Reader, cfg DatasetConfig) (Dataset, error) {
	cfg.applyDefaults()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var dataset Dataset
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}

		var record map[string]any
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			return nil, fmt.Errorf("%w: line %d is not a json object: %v", ErrDataFormat, line, err)
		}

		keys := make([]string, 0, len(record))
		for key := range record {
			keys = append(keys, key)
		}
		if err := requireColumns(keys, cfg); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		ex, err := decodeRecord(record, cfg, line)
		if err != nil {
			return nil, err
		}
		dataset = append(dataset, ex)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	return dataset, nil
}

func requireColumns(columns []string, cfg DatasetConfig) error {
	var hasText, hasLabel bool
	for _, column := range columns {
		switch column {
		case cfg.TextColumn:
			hasText = true
		case cfg.LabelColumn:
			hasLabel = true
		}
	}

	if hasText && hasLabel {
		return nil
	}

	return fmt.Errorf("%w: dataset must contain %q and %q columns, got %q", ErrDataFormat, cfg.TextColumn, cfg.LabelColumn, columns)
}

func decodeRecord(record map[string]any, cfg DatasetConfig, position int) (Example, error) {
	var ex Example
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &ex,
	})
	if err != nil {
		return ex, fmt.Errorf("create record decoder: %w", err)
	}

	input := map[string]any{
		"text":  record[cfg.TextColumn],
		"label": record[cfg.LabelColumn],
	}
	if err := decoder.Decode(input); err != nil {
		return ex, fmt.Errorf("%w: record %d: %v", ErrDataFormat, position, err)
	}

	ex.Label = strings.TrimSpace(ex.Label)
	if ex.Label == "" {
		return ex, fmt.Errorf("%w: record %d has an empty %q value", ErrDataFormat, position, cfg.LabelColumn)
	}

	return ex, nil
}
