package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feeRow(first, last, father, dob, id, collected, waived, reason, grade, section string) RawRow {
	return RawRow{first, last, father, dob, id, collected, waived, reason, grade, section}
}

func validFeeRow() RawRow {
	return feeRow("john", "doe", "jim", "05-03-2010", "EDU-1", "100", "", "", "8", "A")
}

func TestParseRows_SkipsHeaderAndBlankRows(t *testing.T) {
	rows := []RawRow{
		{"First Name", "Last Name", "Father Name", "DOB", "ID", "Collected", "Waived", "Reason", "Grade", "Section"},
		validFeeRow(),
		{"", "stray", "artifact"}, // blank leading cell: dropped, still counted
		validFeeRow(),
	}

	records := ParseRows(rows, FeeSchema())
	require.Len(t, records, 2)

	// Row numbers reference the original file, header included, so the
	// skipped blank row leaves a gap.
	assert.Equal(t, 2, records[0].FileRow)
	assert.Equal(t, 4, records[1].FileRow)
}

func TestParseRows_NormalizesByColumnKind(t *testing.T) {
	rows := []RawRow{
		make(RawRow, 10),
		feeRow(" john ", "DOE", "jim bob", "2010-03-05", "007A", "0050", "", "", "8", "A"),
	}

	records := ParseRows(rows, FeeSchema())
	require.Len(t, records, 1)
	rec := records[0]

	assert.Equal(t, "John", rec.Field("firstName").Text)
	assert.Equal(t, "Doe", rec.Field("lastName").Text)
	assert.Equal(t, "Jim Bob", rec.Field("fatherName").Text)
	assert.Equal(t, "05-03-2010", rec.Field("dateOfBirth").Text)
	assert.Equal(t, "007A", rec.Field("studentId").Text, "text fields pass through untouched")
	assert.Equal(t, float64(50), rec.Field("feeCollected").Number)
	assert.True(t, rec.Field("feeWaived").IsMissing())
}

func TestParseRows_PadsShortRows(t *testing.T) {
	rows := []RawRow{
		make(RawRow, 10),
		{"john", "doe"}, // missing 8 trailing cells
	}

	records := ParseRows(rows, FeeSchema())
	require.Len(t, records, 1)
	assert.True(t, records[0].Field("grade").IsMissing())
	assert.True(t, records[0].Field("feeCollected").IsMissing())
}

func TestParseRows_HeaderOnly(t *testing.T) {
	records := ParseRows([]RawRow{make(RawRow, 10)}, FeeSchema())
	assert.Empty(t, records)
}
