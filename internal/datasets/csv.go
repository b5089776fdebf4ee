package datasets

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// LoadCSV reads a dataset from a CSV file.
//
// Format:
//
//	label,x0,x1,...
//	0,0.12,-0.40
//	2,0.98,0.33
//
// The first row is a header and is skipped. Every row must have the same
// number of feature columns. Classes is one more than the largest label.
//
// Parameters:
//   - filename: Path to CSV file
//   - maxSamples: Maximum number of rows to load (0 = load all)
func LoadCSV(filename string, maxSamples int) (*Dataset, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ReadCSV(file, maxSamples)
}

// ReadCSV parses the LoadCSV format from r.
func ReadCSV(r io.Reader, maxSamples int) (*Dataset, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV file is empty or missing header")
	}

	// Skip header row
	records = records[1:]
	if maxSamples > 0 && len(records) > maxSamples {
		records = records[:maxSamples]
	}

	features := len(records[0]) - 1
	if features < 1 {
		return nil, fmt.Errorf("CSV needs a label column and at least one feature column")
	}

	x := mat.NewDense(len(records), features, nil)
	labels := make([]int, len(records))

	for i, record := range records {
		if len(record) != features+1 {
			return nil, fmt.Errorf("invalid record length at row %d: got %d, want %d", i+1, len(record), features+1)
		}

		label, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("invalid label at row %d: %w", i+1, err)
		}
		if label < 0 {
			return nil, fmt.Errorf("negative label at row %d: %d", i+1, label)
		}
		labels[i] = label

		for j := range features {
			v, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid value at row %d, column %d: %w", i+1, j+1, err)
			}
			x.Set(i, j, v)
		}
	}

	return &Dataset{X: x, Labels: labels, Classes: slices.Max(labels) + 1}, nil
}

// WriteCSV writes d in the LoadCSV format.
func WriteCSV(w io.Writer, d *Dataset) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, d.Features()+1)
	header = append(header, "label")
	for j := range d.Features() {
		header = append(header, "x"+strconv.Itoa(j))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for i, label := range d.Labels {
		row[0] = strconv.Itoa(label)
		for j := range d.Features() {
			row[j+1] = strconv.FormatFloat(d.X.At(i, j), 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
