package ports

import (
	"context"

	"edunest/domain/refdata"
)

// ReferencePort supplies a fresh reference-data snapshot per validation
// pass. The pipeline treats the snapshot as read-only for the duration
// of the pass; refreshing it is the master-data collaborator's problem.
type ReferencePort interface {
	Snapshot(ctx context.Context) (*refdata.Snapshot, error)
}
