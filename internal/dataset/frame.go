package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Frame is an untyped CSV table: a header plus string records. It is the
// raw form the external yield and inflation files arrive in before the
// merge produces a Table.
type Frame struct {
	Columns []string
	Records [][]string
}

// LoadFrame reads a CSV file into a Frame.
func LoadFrame(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) == 0 {
		return nil, fmt.Errorf("empty header in %s", path)
	}

	var records [][]string
	row := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row+2, err)
		}
		// Skip completely empty lines
		if len(record) == 1 && record[0] == "" {
			continue
		}
		if len(record) != len(header) {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", row+2, len(header), len(record))
		}
		records = append(records, record)
		row++
	}
	if row == 0 {
		return nil, fmt.Errorf("no data rows in %s", path)
	}

	return &Frame{Columns: header, Records: records}, nil
}

// ColumnIndex returns the position of name in the header, or -1.
func (f *Frame) ColumnIndex(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}
