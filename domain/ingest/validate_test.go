package ingest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edunest/domain/refdata"
)

func testSnapshot() refdata.Snapshot {
	return refdata.Snapshot{
		Grades:   []string{"8", "9"},
		Sections: []string{"A", "B"},
		Combinations: map[refdata.Combination]struct{}{
			{Grade: "8", Section: "A"}: {},
		},
	}
}

func parseFee(t *testing.T, dataRows ...RawRow) []ParsedRecord {
	t.Helper()
	rows := append([]RawRow{make(RawRow, 10)}, dataRows...)
	return ParseRows(rows, FeeSchema())
}

func TestValidateBatch_ValidRows(t *testing.T) {
	records := parseFee(t, validFeeRow())
	result := ValidateBatch(records, FeeSchema(), testSnapshot())
	assert.True(t, result.Valid())
	assert.Empty(t, result.Errors)
}

func TestValidateBatch_CombinationError(t *testing.T) {
	// Grade and section each exist individually but never co-occur:
	// exactly one combination error, not two membership errors.
	row := validFeeRow()
	row[8], row[9] = "9", "A"

	result := ValidateBatch(parseFee(t, row), FeeSchema(), testSnapshot())
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Equal(t, `Grade "9" and Section "A" combination does not exist in the system`, result.Errors[0].Message)
	assert.Equal(t, `Row 2: Grade "9" and Section "A" combination does not exist in the system`, result.Errors[0].String())
}

func TestValidateBatch_MembershipErrors(t *testing.T) {
	row := validFeeRow()
	row[8], row[9] = "13", "A"

	result := ValidateBatch(parseFee(t, row), FeeSchema(), testSnapshot())
	require.Len(t, result.Errors, 1, "unknown grade yields a membership error, no combination error")
	assert.Equal(t, `Grade "13" does not exist in the system. Valid grades are: 8, 9`, result.Errors[0].Message)
}

func TestValidateBatch_NegativeFeeBlocksBatch(t *testing.T) {
	bad := validFeeRow()
	bad[5] = "-5"

	result := ValidateBatch(parseFee(t, validFeeRow(), bad, validFeeRow()), FeeSchema(), testSnapshot())
	require.False(t, result.Valid())
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Equal(t, `Fee Collected "-5" must be 0 or greater`, result.Errors[0].Message)
}

func TestValidateBatch_UnparsableFee(t *testing.T) {
	bad := validFeeRow()
	bad[5] = "lots"

	result := ValidateBatch(parseFee(t, bad), FeeSchema(), testSnapshot())
	require.Len(t, result.Errors, 1)
	assert.Equal(t, `Fee Collected "lots" is not a valid number`, result.Errors[0].Message)
}

func TestValidateBatch_RequiredFields(t *testing.T) {
	bad := feeRow("j@ne", "doe", "jim", "31-02-2020", "", "", "", "", "8", "A")

	result := ValidateBatch(parseFee(t, bad), FeeSchema(), testSnapshot())
	msgs := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		msgs = append(msgs, e.Message)
	}

	// Every failed check on the row is reported, not just the first.
	assert.Contains(t, msgs, "First Name is missing or contains invalid characters")
	assert.Contains(t, msgs, "Date of Birth is missing or not a valid date")
	assert.Contains(t, msgs, "Student ID is required")
	assert.Contains(t, msgs, "Fee Collected is required")
}

func TestValidateBatch_OneBadRowAmongFifty(t *testing.T) {
	rows := make([]RawRow, 0, 50)
	for i := 0; i < 49; i++ {
		rows = append(rows, validFeeRow())
	}
	bad := validFeeRow()
	bad[5] = "-1"
	rows = append(rows, bad)

	result := ValidateBatch(parseFee(t, rows...), FeeSchema(), testSnapshot())
	require.Len(t, result.Errors, 1, "the 49 valid rows produce no errors")
	assert.Equal(t, 51, result.Errors[0].Row, "bad row is the 50th data row, file row 51")
	assert.False(t, result.Valid())
}

func TestValidateBatch_ErrorsOrderedByRow(t *testing.T) {
	first, second := validFeeRow(), validFeeRow()
	first[5] = "-1"
	second[9] = "Z"

	result := ValidateBatch(parseFee(t, first, second), FeeSchema(), testSnapshot())
	require.Len(t, result.Errors, 2)
	assert.Less(t, result.Errors[0].Row, result.Errors[1].Row)
}

func TestValidateBatch_AttendanceEnum(t *testing.T) {
	schema := AttendanceSchema()
	header := make(RawRow, 6)

	tests := []struct {
		status string
		valid  bool
	}{
		{"Present", true},
		{"Absent", true},
		{"present", false}, // exact casing only
		{"ABSENT", false},
		{"Late", false},
	}

	for _, tc := range tests {
		rows := []RawRow{header, {"john", "doe", "8", "A", "Smith", tc.status}}
		result := ValidateBatch(ParseRows(rows, schema), schema, testSnapshot())
		if tc.valid {
			assert.True(t, result.Valid(), "status %q should pass", tc.status)
			continue
		}
		require.Len(t, result.Errors, 1, "status %q should fail", tc.status)
		assert.Equal(t,
			fmt.Sprintf(`Attendance must be "Present" or "Absent", got %q`, tc.status),
			result.Errors[0].Message)
	}
}

func TestValidateBatch_OptionalWaivedDefaultsClean(t *testing.T) {
	row := validFeeRow() // feeWaived and waiverReason left empty
	result := ValidateBatch(parseFee(t, row), FeeSchema(), testSnapshot())
	assert.True(t, result.Valid(), "optional fields may be absent")
}
