package csvio

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

// Row is one CSV record, keyed by header name. Columns missing from a
// record are absent from the map; columns beyond the header are dropped.
type Row map[string]string

// Timestamp layouts accepted by Row.Time, tried in order.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Int returns the named column parsed as an integer. The second return is
// false when the column is missing or not numeric.
func (r Row) Int(col string) (int, bool) {
	v, ok := r[col]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Uint returns the named column parsed as an unsigned integer.
func (r Row) Uint(col string) (uint, bool) {
	v, ok := r[col]
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

// Time returns the named column parsed as a timestamp, trying each known
// layout in order. Layouts without zone information are read as UTC.
func (r Row) Time(col string) (time.Time, bool) {
	v, ok := r[col]
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// RowReader reads CSV records as header-keyed maps. Header sets vary
// between data sources, so rows are never matched positionally against a
// fixed schema; unknown and missing columns are tolerated.
type RowReader struct {
	csvreader *csv.Reader
	headers   []string
}

// NewRowReader wraps an io.Reader and consumes the header line. A header
// read failure is deferred; it surfaces on the first Read.
func NewRowReader(r io.Reader) *RowReader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	rdr := &RowReader{csvreader: cr}
	rdr.headers, _ = rdr.csvreader.Read()
	return rdr
}

// Read returns the next row, or io.EOF when the input is exhausted.
func (r *RowReader) Read() (Row, error) {
	vals, err := r.csvreader.Read()
	if err != nil {
		return nil, err
	}

	row := make(Row, len(r.headers))
	for i, h := range r.headers {
		if i < len(vals) {
			row[h] = vals[i]
		}
	}
	return row, nil
}
