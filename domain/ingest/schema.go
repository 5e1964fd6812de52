package ingest

import "fmt"

// SchemaKind identifies one of the supported import types.
type SchemaKind string

const (
	SchemaFees       SchemaKind = "fees"
	SchemaAttendance SchemaKind = "attendance"
)

// Column is one positional entry of an import schema.
type Column struct {
	Name        string
	Label       string
	Kind        CellKind
	Required    bool
	NonNegative bool
}

// RowRule is a schema-specific check run on top of the shared reference
// validation. It returns one message per failed check.
type RowRule func(rec ParsedRecord) []string

// Schema is the fixed column layout of one import type. GradeColumn and
// SectionColumn name the categorical fields checked against the
// reference snapshot; either may be empty for schemas without them.
type Schema struct {
	Kind          SchemaKind
	Columns       []Column
	GradeColumn   string
	SectionColumn string
	Rules         []RowRule
}

// ColumnByName returns the schema column with the given name.
func (s Schema) ColumnByName(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// FeeSchema is the 10-column layout of student fee uploads.
func FeeSchema() Schema {
	return Schema{
		Kind: SchemaFees,
		Columns: []Column{
			{Name: "firstName", Label: "First Name", Kind: KindName, Required: true},
			{Name: "lastName", Label: "Last Name", Kind: KindName, Required: true},
			{Name: "fatherName", Label: "Father Name", Kind: KindName, Required: true},
			{Name: "dateOfBirth", Label: "Date of Birth", Kind: KindDate, Required: true},
			{Name: "studentId", Label: "Student ID", Kind: KindText, Required: true},
			{Name: "feeCollected", Label: "Fee Collected", Kind: KindNumeric, Required: true, NonNegative: true},
			{Name: "feeWaived", Label: "Fee Waived", Kind: KindNumeric, NonNegative: true},
			{Name: "waiverReason", Label: "Waiver Reason", Kind: KindText},
			{Name: "grade", Label: "Grade", Kind: KindText, Required: true},
			{Name: "section", Label: "Section", Kind: KindText, Required: true},
		},
		GradeColumn:   "grade",
		SectionColumn: "section",
	}
}

// AttendanceSchema is the 6-column layout of attendance roster uploads.
// The status enum is exact: "Present" or "Absent", nothing else.
func AttendanceSchema() Schema {
	return Schema{
		Kind: SchemaAttendance,
		Columns: []Column{
			{Name: "firstName", Label: "First Name", Kind: KindText, Required: true},
			{Name: "lastName", Label: "Last Name", Kind: KindText, Required: true},
			{Name: "grade", Label: "Grade", Kind: KindText, Required: true},
			{Name: "section", Label: "Section", Kind: KindText, Required: true},
			{Name: "teacher", Label: "Teacher", Kind: KindText, Required: true},
			{Name: "attendance", Label: "Attendance", Kind: KindText, Required: true},
		},
		GradeColumn:   "grade",
		SectionColumn: "section",
		Rules:         []RowRule{attendanceStatusRule},
	}
}

// SchemaFor resolves an import kind to its schema.
func SchemaFor(kind SchemaKind) (Schema, error) {
	switch kind {
	case SchemaFees:
		return FeeSchema(), nil
	case SchemaAttendance:
		return AttendanceSchema(), nil
	default:
		return Schema{}, fmt.Errorf("unknown import kind %q", kind)
	}
}

func attendanceStatusRule(rec ParsedRecord) []string {
	v := rec.Field("attendance")
	if v.IsMissing() {
		return nil // presence is already reported by the required check
	}
	if v.Text != "Present" && v.Text != "Absent" {
		return []string{fmt.Sprintf("Attendance must be %q or %q, got %q", "Present", "Absent", v.Text)}
	}
	return nil
}
