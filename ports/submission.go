package ports

import (
	"context"

	"edunest/domain/ingest"
)

// SubmissionPort hands a fully validated batch to the persistence
// backend. Each call is single-shot: no retries, no partial batches.
type SubmissionPort interface {
	SubmitFees(ctx context.Context, batch []ingest.FeeRecord) error
	SubmitAttendance(ctx context.Context, batch []ingest.AttendanceRecord) error
}
