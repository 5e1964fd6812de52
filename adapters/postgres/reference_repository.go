package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"edunest/domain/refdata"
	"edunest/internal/errors"
	"edunest/ports"
)

// referenceRepository reads the recognized class combinations from the
// master-data tables. Each call produces a fresh snapshot; nothing is
// cached so validation always sees current data.
type referenceRepository struct {
	db *sqlx.DB
}

// NewReferenceRepository creates a reference-data repository.
func NewReferenceRepository(db *sqlx.DB) ports.ReferencePort {
	return &referenceRepository{db: db}
}

type classSectionRow struct {
	Grade   string `db:"grade"`
	Section string `db:"section"`
}

// Snapshot loads every active (grade, section) class pairing.
func (r *referenceRepository) Snapshot(ctx context.Context) (*refdata.Snapshot, error) {
	query := `SELECT grade, section FROM class_sections WHERE active ORDER BY grade, section`

	var rows []classSectionRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errors.WithCode(errors.CodeReferenceData,
			fmt.Errorf("failed to load class sections: %w", err))
	}

	combos := make([]refdata.Combination, 0, len(rows))
	for _, row := range rows {
		combos = append(combos, refdata.Combination{Grade: row.Grade, Section: row.Section})
	}
	snap := refdata.NewSnapshot(combos)
	return &snap, nil
}
