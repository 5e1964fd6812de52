package ingest

import (
	"fmt"
	"strings"

	"edunest/domain/refdata"
)

// ValidateBatch runs every check against every record and accumulates
// positional errors, ordered by row number ascending. It is exhaustive
// on purpose: a 50-row file with 50 bad rows reports all 50, never just
// the first. The batch is all-or-nothing; a single failed row rejects
// everything.
func ValidateBatch(records []ParsedRecord, schema Schema, snap refdata.Snapshot) BatchResult {
	result := BatchResult{Records: records}
	for _, rec := range records {
		for _, msg := range validateRecord(rec, schema, snap) {
			result.Errors = append(result.Errors, ValidationError{Row: rec.FileRow, Message: msg})
		}
	}
	return result
}

// validateRecord applies the shared checks column by column, then the
// schema-specific rules. Checks are independent so one failure never
// hides another on the same row.
func validateRecord(rec ParsedRecord, schema Schema, snap refdata.Snapshot) []string {
	var msgs []string

	for _, col := range schema.Columns {
		v := rec.Field(col.Name)

		if v.IsMissing() {
			if col.Required {
				msgs = append(msgs, missingMessage(col))
			}
			continue
		}

		if col.Kind == KindNumeric {
			if v.Unparsable {
				msgs = append(msgs, fmt.Sprintf("%s %q is not a valid number", col.Label, v.Text))
				continue
			}
			if col.NonNegative && v.Number < 0 {
				msgs = append(msgs, fmt.Sprintf("%s %q must be 0 or greater", col.Label, v.Text))
			}
		}
	}

	msgs = append(msgs, validateClassMembership(rec, schema, snap)...)

	for _, rule := range schema.Rules {
		msgs = append(msgs, rule(rec)...)
	}
	return msgs
}

// validateClassMembership checks grade and section individually against
// the snapshot, and only when both pass checks that the pair actually
// co-occurs as a class. Running the pair check after the memberships
// keeps a single bogus grade from producing a misleading second error.
func validateClassMembership(rec ParsedRecord, schema Schema, snap refdata.Snapshot) []string {
	if schema.GradeColumn == "" || schema.SectionColumn == "" {
		return nil
	}

	grade := rec.Field(schema.GradeColumn)
	section := rec.Field(schema.SectionColumn)
	if grade.IsMissing() || section.IsMissing() {
		return nil // presence failures are already reported
	}

	var msgs []string
	gradeOK := snap.HasGrade(grade.Text)
	sectionOK := snap.HasSection(section.Text)
	if !gradeOK {
		msgs = append(msgs, fmt.Sprintf("Grade %q does not exist in the system. Valid grades are: %s",
			grade.Text, strings.Join(snap.Grades, ", ")))
	}
	if !sectionOK {
		msgs = append(msgs, fmt.Sprintf("Section %q does not exist in the system. Valid sections are: %s",
			section.Text, strings.Join(snap.Sections, ", ")))
	}
	if gradeOK && sectionOK && !snap.HasCombination(grade.Text, section.Text) {
		msgs = append(msgs, fmt.Sprintf("Grade %q and Section %q combination does not exist in the system",
			grade.Text, section.Text))
	}
	return msgs
}

func missingMessage(col Column) string {
	switch col.Kind {
	case KindName:
		return fmt.Sprintf("%s is missing or contains invalid characters", col.Label)
	case KindDate:
		return fmt.Sprintf("%s is missing or not a valid date", col.Label)
	default:
		return fmt.Sprintf("%s is required", col.Label)
	}
}
