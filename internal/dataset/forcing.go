// Package dataset reads and writes the CSV forcing tables consumed by
// batch runs. A forcing table carries one column per model feature, in
// model order, plus one row per timestep and grid cell.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"pondnet/internal/pond"
)

// ReadForcing parses a forcing CSV. The header must list every feature
// column by name in model order; the match is case-insensitive and
// ignores surrounding whitespace. Blank rows are skipped.
func ReadForcing(in io.Reader) ([]pond.Inputs, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("forcing csv is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read forcing header: %w", err)
	}
	if err := checkForcingHeader(header); err != nil {
		return nil, err
	}

	rows := make([]pond.Inputs, 0, 1024)
	rowIndex := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read forcing row %d: %w", rowIndex, err)
		}
		if blankRecord(record) {
			continue
		}
		if len(record) != pond.FeatureCount {
			return nil, fmt.Errorf("forcing row %d has %d columns, want %d", rowIndex, len(record), pond.FeatureCount)
		}

		vector := make([]float64, pond.FeatureCount)
		for i, raw := range record {
			value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return nil, fmt.Errorf("parse forcing row %d column %d: %w", rowIndex, i, err)
			}
			vector[i] = value
		}
		rows = append(rows, pond.FromVector(vector))
		rowIndex++
	}
	return rows, nil
}

// ReadForcingFile opens path and delegates to ReadForcing.
func ReadForcingFile(path string) ([]pond.Inputs, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("forcing file path is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadForcing(f)
}

// WriteForcing writes a forcing table with one column per feature in
// model order. The output parses back with ReadForcing.
func WriteForcing(out io.Writer, rows []pond.Inputs) error {
	writer := csv.NewWriter(out)

	if err := writer.Write(pond.FeatureNames()); err != nil {
		return fmt.Errorf("write forcing header: %w", err)
	}
	for i, row := range rows {
		record := make([]string, 0, pond.FeatureCount)
		for _, value := range row.Vector() {
			record = append(record, strconv.FormatFloat(value, 'f', -1, 64))
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write forcing row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush forcing csv: %w", err)
	}
	return nil
}

// WriteForcingFile creates path, making parent directories as needed,
// and delegates to WriteForcing.
func WriteForcingFile(path string, rows []pond.Inputs) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("forcing file path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteForcing(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteResults writes one CSV row per input with the prediction columns
// appended after the feature columns.
func WriteResults(out io.Writer, inputs []pond.Inputs, predictions []pond.Outputs) error {
	if len(inputs) != len(predictions) {
		return fmt.Errorf("results have %d inputs for %d predictions", len(inputs), len(predictions))
	}

	writer := csv.NewWriter(out)

	header := append(pond.FeatureNames(), pond.OutputNames()...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write results header: %w", err)
	}

	for i := range inputs {
		record := make([]string, 0, len(header))
		for _, value := range inputs[i].Vector() {
			record = append(record, strconv.FormatFloat(value, 'f', -1, 64))
		}
		for _, value := range predictions[i].Vector() {
			record = append(record, strconv.FormatFloat(value, 'f', -1, 64))
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write results row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush results csv: %w", err)
	}
	return nil
}

// WriteResultsFile creates path, making parent directories as needed,
// and delegates to WriteResults.
func WriteResultsFile(path string, inputs []pond.Inputs, predictions []pond.Outputs) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("results file path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteResults(f, inputs, predictions); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func checkForcingHeader(header []string) error {
	names := pond.FeatureNames()
	if len(header) != len(names) {
		return fmt.Errorf("forcing header has %d columns, want %d", len(header), len(names))
	}
	for i, want := range names {
		got := strings.ToLower(strings.TrimSpace(header[i]))
		if got != want {
			return fmt.Errorf("forcing header column %d is %q, want %q", i, got, want)
		}
	}
	return nil
}

func blankRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
