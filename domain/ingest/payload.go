package ingest

import "time"

// FeeRecord is one validated fee row reshaped into the field names the
// backend expects. Dates are UTC ISO-8601 instants; DateOfCollection is
// stamped at payload-build time. The student's existence in the backend
// registry is deliberately not verified here; the backend owns that
// check.
type FeeRecord struct {
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	FatherName       string  `json:"fatherName"`
	DateOfBirth      string  `json:"dateOfBirth"`
	StudentEduNestID string  `json:"studentEduNestId"`
	DateOfCollection string  `json:"dateOfCollection"`
	FeeCollected     float64 `json:"feeCollected"`
	FeeWaived        float64 `json:"feeWaived"`
	WaiverReason     string  `json:"waiverReason"`
	Grade            string  `json:"grade"`
	Section          string  `json:"section"`
}

// AttendanceRecord is one validated roster row in backend shape.
type AttendanceRecord struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Grade      string `json:"grade"`
	Section    string `json:"section"`
	Teacher    string `json:"teacher"`
	Attendance string `json:"attendance"`
	RecordedAt string `json:"recordedAt"`
}

// FeePayload reshapes a validated batch for submission. Only called on
// batches that already passed validation; a missing optional waived
// amount defaults to 0.
func FeePayload(records []ParsedRecord, now time.Time) []FeeRecord {
	out := make([]FeeRecord, 0, len(records))
	collected := now.UTC().Format(time.RFC3339)
	for _, rec := range records {
		out = append(out, FeeRecord{
			FirstName:        rec.Field("firstName").Text,
			LastName:         rec.Field("lastName").Text,
			FatherName:       rec.Field("fatherName").Text,
			DateOfBirth:      rec.Field("dateOfBirth").Instant.Format(time.RFC3339),
			StudentEduNestID: rec.Field("studentId").Text,
			DateOfCollection: collected,
			FeeCollected:     rec.Field("feeCollected").Number,
			FeeWaived:        rec.Field("feeWaived").Number,
			WaiverReason:     rec.Field("waiverReason").Text,
			Grade:            rec.Field("grade").Text,
			Section:          rec.Field("section").Text,
		})
	}
	return out
}

// AttendancePayload reshapes a validated roster batch for submission.
func AttendancePayload(records []ParsedRecord, now time.Time) []AttendanceRecord {
	out := make([]AttendanceRecord, 0, len(records))
	recorded := now.UTC().Format(time.RFC3339)
	for _, rec := range records {
		out = append(out, AttendanceRecord{
			FirstName:  rec.Field("firstName").Text,
			LastName:   rec.Field("lastName").Text,
			Grade:      rec.Field("grade").Text,
			Section:    rec.Field("section").Text,
			Teacher:    rec.Field("teacher").Text,
			Attendance: rec.Field("attendance").Text,
			RecordedAt: recorded,
		})
	}
	return out
}
