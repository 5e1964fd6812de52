package ingest

import (
	"fmt"
	"time"
)

// CellKind declares how a raw spreadsheet cell is normalized.
type CellKind string

const (
	KindName    CellKind = "name"
	KindNumeric CellKind = "numeric"
	KindDate    CellKind = "date"
	KindText    CellKind = "text"
)

// ValueKind is the storage type of a canonical value.
type ValueKind string

const (
	ValueKindMissing ValueKind = "missing"
	ValueKindText    ValueKind = "text"
	ValueKindNumeric ValueKind = "numeric"
	ValueKindDate    ValueKind = "date"
)

// Value is the canonical form of one cell after normalization.
// Text always holds the display form (DD-MM-YYYY for dates). A numeric
// cell that failed coercion keeps its raw input in Text with Unparsable
// set; the validator rejects it, the normalizer never does.
type Value struct {
	Kind       ValueKind
	Text       string
	Number     float64
	Instant    time.Time
	Unparsable bool
}

// NewMissingValue marks an empty or rejected cell.
func NewMissingValue() Value {
	return Value{Kind: ValueKindMissing}
}

// NewTextValue creates a plain text value.
func NewTextValue(s string) Value {
	if s == "" {
		return NewMissingValue()
	}
	return Value{Kind: ValueKindText, Text: s}
}

// NewNumericValue creates a numeric value with its display text.
func NewNumericValue(text string, n float64) Value {
	return Value{Kind: ValueKindNumeric, Text: text, Number: n}
}

// NewDateValue creates a date value. The instant is midnight UTC of the
// calendar date; the display text is DD-MM-YYYY.
func NewDateValue(t time.Time) Value {
	return Value{
		Kind:    ValueKindDate,
		Text:    fmt.Sprintf("%02d-%02d-%04d", t.Day(), int(t.Month()), t.Year()),
		Instant: t,
	}
}

// NewUnparsableValue keeps the raw input of a numeric cell that failed
// coercion so the validator can name it in an error.
func NewUnparsableValue(raw string) Value {
	return Value{Kind: ValueKindText, Text: raw, Unparsable: true}
}

// IsMissing reports whether the cell was empty or rejected during
// normalization.
func (v Value) IsMissing() bool {
	return v.Kind == ValueKindMissing
}

// RawRow is one ordered row of cell texts as returned by the sheet reader.
type RawRow []string

// ParsedRecord is one typed row. FileRow is the 1-based row number in the
// original file, header included, so error messages always reference what
// the user sees in their spreadsheet tool.
type ParsedRecord struct {
	FileRow int
	Fields  map[string]Value
}

// Field returns the canonical value for a schema column, or a missing
// value if the column was never populated.
func (r ParsedRecord) Field(name string) Value {
	if v, ok := r.Fields[name]; ok {
		return v
	}
	return NewMissingValue()
}

// Display flattens the record into column name -> display text, with
// missing cells rendered as empty strings. Used for the preview payload.
func (r ParsedRecord) Display() map[string]string {
	out := make(map[string]string, len(r.Fields))
	for name, v := range r.Fields {
		if v.IsMissing() {
			out[name] = ""
			continue
		}
		out[name] = v.Text
	}
	return out
}

// ValidationError is one failed check for one row.
type ValidationError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func (e ValidationError) String() string {
	return fmt.Sprintf("Row %d: %s", e.Row, e.Message)
}

// BatchResult is the outcome of validating a full batch. The batch is
// valid iff Errors is empty; there is no partial acceptance.
type BatchResult struct {
	Records []ParsedRecord
	Errors  []ValidationError
}

// Valid reports whether every row passed every check.
func (b BatchResult) Valid() bool {
	return len(b.Errors) == 0
}
