package core

import (
	"bytes"
	"encoding/json"
)

// DefaultNameColumn is the header of the legal company name column.
const DefaultNameColumn = "RAZON SOCIAL"

// Record is one row of the dataset: an ordered mapping of field names to values.
// Fields beyond the end of a short source row are absent, not empty.
type Record struct {
	columns []string
	values  []string
}

// NewRecord builds a record over the given columns.
// Values past len(columns) are dropped; missing trailing values stay absent.
func NewRecord(columns []string, values []string) Record {
	if len(values) > len(columns) {
		values = values[:len(columns)]
	}
	return Record{columns: columns, values: values}
}

// Get returns the value of the named field and whether it is present.
// Lookup is exact; on duplicate headers the first column wins.
func (r Record) Get(name string) (string, bool) {
	for i, col := range r.columns {
		if col != name {
			continue
		}
		if i >= len(r.values) {
			return "", false
		}
		return r.values[i], true
	}
	return "", false
}

// Len returns the number of present fields.
func (r Record) Len() int {
	return len(r.values)
}

// Values returns the record's values aligned to the dataset columns.
// Absent trailing fields are returned as empty strings.
func (r Record) Values() []string {
	out := make([]string, len(r.columns))
	copy(out, r.values)
	return out
}

// MarshalJSON encodes the record as a JSON object keeping column order.
// Absent fields are encoded as null.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if i >= len(r.values) {
			buf.WriteString("null")
			continue
		}
		val, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Dataset is the full in-memory table loaded from the source.
// All records share Columns. A Dataset is never mutated after loading.
type Dataset struct {
	Columns []string
	Records []Record
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// HasColumn reports whether the header contains name.
func (d *Dataset) HasColumn(name string) bool {
	if d == nil {
		return false
	}
	for _, col := range d.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// Status tells apart the three outcomes of a search.
type Status string

const (
	StatusNoQuery     Status = "no_query"
	StatusZeroMatches Status = "zero_matches"
	StatusMatches     Status = "matches"
)

// Result is the outcome of one search.
// Records is a subsequence of the loaded dataset in its original order and is
// empty unless Status is StatusMatches.
type Result struct {
	ID      string   `json:"search_id,omitempty"`
	Status  Status   `json:"status"`
	Query   string   `json:"query"`
	Columns []string `json:"columns"`
	Records []Record `json:"records"`
}

// Count returns the number of matching records.
func (r Result) Count() int {
	return len(r.Records)
}
