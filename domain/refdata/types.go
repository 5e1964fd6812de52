package refdata

// Combination is one recognized (grade, section) class pairing.
type Combination struct {
	Grade   string
	Section string
}

// Snapshot is a point-in-time copy of the valid categorical values used
// for membership checks. It is supplied fresh by the master-data
// collaborator for each validation pass and is never mutated by the
// pipeline.
type Snapshot struct {
	Grades       []string
	Sections     []string
	Combinations map[Combination]struct{}
}

// NewSnapshot builds a snapshot from the recognized class combinations,
// deriving the individual grade and section sets in first-seen order.
func NewSnapshot(combos []Combination) Snapshot {
	snap := Snapshot{Combinations: make(map[Combination]struct{}, len(combos))}
	seenGrade := make(map[string]bool)
	seenSection := make(map[string]bool)
	for _, c := range combos {
		snap.Combinations[c] = struct{}{}
		if !seenGrade[c.Grade] {
			seenGrade[c.Grade] = true
			snap.Grades = append(snap.Grades, c.Grade)
		}
		if !seenSection[c.Section] {
			seenSection[c.Section] = true
			snap.Sections = append(snap.Sections, c.Section)
		}
	}
	return snap
}

// HasGrade reports whether the grade exists on its own.
func (s Snapshot) HasGrade(grade string) bool {
	for _, g := range s.Grades {
		if g == grade {
			return true
		}
	}
	return false
}

// HasSection reports whether the section exists on its own.
func (s Snapshot) HasSection(section string) bool {
	for _, sec := range s.Sections {
		if sec == section {
			return true
		}
	}
	return false
}

// HasCombination reports whether the pair co-occurs as a real class.
func (s Snapshot) HasCombination(grade, section string) bool {
	_, ok := s.Combinations[Combination{Grade: grade, Section: section}]
	return ok
}
