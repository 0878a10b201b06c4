package catalog

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pbaille/catkw/internal/normalize"
	"github.com/pbaille/catkw/internal/taxonomy"
)

// Delimiter separates fields in catalog feeds
const Delimiter = ';'

// ErrNoHeader is returned when a feed has no non-blank row
var ErrNoHeader = errors.New("csv header not found")

// ColumnError reports a column missing from the feed header
type ColumnError struct {
	Column    string
	Available []string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("column %q not found, available: %s", e.Column, strings.Join(e.Available, ", "))
}

// rows iterates the data rows of a feed, giving the index of column in each
type rows struct {
	r   *csv.Reader
	idx int
}

func openRows(r io.Reader, column string) (*rows, error) {
	br := bufio.NewReader(r)
	// utf-8-sig
	if bom, err := br.Peek(3); err == nil && string(bom) == "\xef\xbb\xbf" {
		br.Discard(3)
	}

	cr := csv.NewReader(br)
	cr.Comma = Delimiter
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	for {
		row, err := cr.Read()
		if err == io.EOF {
			return nil, ErrNoHeader
		}
		if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		if blank(row) {
			continue
		}

		header := make([]string, len(row))
		for i, h := range row {
			header[i] = strings.TrimSpace(h)
		}
		for i, h := range header {
			if h == column {
				return &rows{r: cr, idx: i}, nil
			}
		}
		return nil, &ColumnError{Column: column, Available: header}
	}
}

// next returns the column value of the next non-blank row.
// present is false when the row is too short to hold the column.
func (rs *rows) next() (value string, present bool, err error) {
	for {
		row, err := rs.r.Read()
		if err != nil {
			return "", false, err
		}
		if blank(row) {
			continue
		}
		if rs.idx >= len(row) {
			return "", false, nil
		}
		return row[rs.idx], true, nil
	}
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// ReadColumn returns the raw values of column for every data row that has it
func ReadColumn(r io.Reader, column string) ([]string, error) {
	rs, err := openRows(r, column)
	if err != nil {
		return nil, err
	}

	var values []string
	for {
		v, ok, err := rs.next()
		if err == io.EOF {
			return values, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if ok {
			values = append(values, v)
		}
	}
}

// Unique returns the distinct trimmed values of column in first-appearance order
func Unique(r io.Reader, column string) ([]string, error) {
	values, err := ReadColumn(r, column)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out, nil
}

// Extraction is the result of pulling category paths out of a feed
type Extraction struct {
	// Paths are the canonical category paths, sorted
	Paths []string
	// Anomalies are raw values with more than taxonomy.MaxLevels levels
	Anomalies []string
}

// Extract reads column and normalizes every distinct value into a canonical path
func Extract(r io.Reader, column string) (*Extraction, error) {
	values, err := Unique(r, column)
	if err != nil {
		return nil, err
	}

	paths := taxonomy.NewPathSet()
	ext := &Extraction{}
	for _, v := range values {
		if normalize.Levels(v) > taxonomy.MaxLevels {
			ext.Anomalies = append(ext.Anomalies, v)
		}
		if p, ok := normalize.Path(v); ok {
			paths.Add(p)
		}
	}
	ext.Paths = paths.Sorted()
	sort.Strings(ext.Anomalies)
	return ext, nil
}
