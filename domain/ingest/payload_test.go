package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeePayload_BackendShape(t *testing.T) {
	records := parseFee(t, feeRow("john", "doe", "jim", "05-03-2010", "EDU-42", "0100", "", "", "8", "A"))
	now := time.Date(2026, time.August, 29, 10, 30, 0, 0, time.UTC)

	payload := FeePayload(records, now)
	require.Len(t, payload, 1)
	rec := payload[0]

	assert.Equal(t, "John", rec.FirstName)
	assert.Equal(t, "EDU-42", rec.StudentEduNestID)
	assert.Equal(t, "2010-03-05T00:00:00Z", rec.DateOfBirth)
	assert.Equal(t, "2026-08-29T10:30:00Z", rec.DateOfCollection)
	assert.Equal(t, float64(100), rec.FeeCollected)
	assert.Zero(t, rec.FeeWaived, "absent waived amount defaults to 0")
	assert.Equal(t, "8", rec.Grade)
	assert.Equal(t, "A", rec.Section)
}

func TestAttendancePayload_BackendShape(t *testing.T) {
	schema := AttendanceSchema()
	rows := []RawRow{make(RawRow, 6), {"jane", "roe", "9", "B", "Smith", "Absent"}}
	now := time.Date(2026, time.August, 29, 8, 0, 0, 0, time.UTC)

	payload := AttendancePayload(ParseRows(rows, schema), now)
	require.Len(t, payload, 1)

	assert.Equal(t, "jane", payload[0].FirstName, "attendance names are plain text, not re-cased")
	assert.Equal(t, "Absent", payload[0].Attendance)
	assert.Equal(t, "2026-08-29T08:00:00Z", payload[0].RecordedAt)
}
