package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"golang.org/x/sync/semaphore"

	"edunest/domain/ingest"
	"edunest/domain/refdata"
	"edunest/internal"
	"edunest/internal/errors"
	"edunest/ports"
)

// State is the pipeline position of one import. A rejected batch stays
// around so the user can resubmit without re-uploading the file.
type State string

const (
	StateIdle      State = "idle"
	StateParsed    State = "parsed"
	StateSubmitted State = "submitted"
	StateRejected  State = "rejected"
)

// Batch is the parsed content of one uploaded file.
type Batch struct {
	ID        string
	Records   []ingest.ParsedRecord
	CreatedAt time.Time
}

// Preview is what the console shows before any validation runs.
type Preview struct {
	BatchID  string              `json:"batchId"`
	Kind     ingest.SchemaKind   `json:"kind"`
	RowCount int                 `json:"rowCount"`
	Records  []map[string]string `json:"records"`
	Summary  *FeeSummary         `json:"summary,omitempty"`
}

// FeeSummary aggregates the parsable collected amounts of a fee batch.
// Preview-only; validation still decides whether the batch is usable.
type FeeSummary struct {
	TotalCollected float64 `json:"totalCollected"`
	MeanCollected  float64 `json:"meanCollected"`
	MaxCollected   float64 `json:"maxCollected"`
}

// ValidationFailure carries the full error list of a rejected batch.
// Never truncated here; capping the display is the UI's business.
type ValidationFailure struct {
	Errors []ingest.ValidationError
}

func (e *ValidationFailure) Error() string {
	return fmt.Sprintf("batch failed validation with %d error(s)", len(e.Errors))
}

// ImportService drives one upload through parse, preview, validation
// and submission. One service per uploaded file; the UI owns resets by
// discarding the service and starting over.
type ImportService struct {
	schema    ingest.Schema
	reader    ports.SheetReader
	submitter ports.SubmissionPort
	logger    *internal.Logger
	now       func() time.Time

	// inflight enforces the single-flight discipline: a second submit
	// (or a re-ingest) while one is outstanding is refused, never queued.
	inflight *semaphore.Weighted

	mu         sync.Mutex
	state      State
	batch      *Batch
	lastErrors []ingest.ValidationError
}

// NewImportService creates a pipeline instance for one import kind.
func NewImportService(schema ingest.Schema, reader ports.SheetReader, submitter ports.SubmissionPort, logger *internal.Logger) *ImportService {
	return &ImportService{
		schema:    schema,
		reader:    reader,
		submitter: submitter,
		logger:    logger,
		now:       time.Now,
		inflight:  semaphore.NewWeighted(1),
		state:     StateIdle,
	}
}

// Ingest decodes the uploaded bytes, parses the rows and returns the
// preview. A file that cannot be decoded changes nothing: the service
// keeps whatever state it had.
func (s *ImportService) Ingest(data []byte) (*Preview, error) {
	if !s.inflight.TryAcquire(1) {
		return nil, errors.New(errors.CodeSubmitInFlight, "a submission is already in progress")
	}
	defer s.inflight.Release(1)

	rows, err := s.reader.ReadRows(data)
	if err != nil {
		s.logger.Warn("ingest failed for %s import: %v", s.schema.Kind, err)
		return nil, err
	}

	records := ingest.ParseRows(rows, s.schema)
	batch := &Batch{
		ID:        uuid.New().String(),
		Records:   records,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.state = StateParsed
	s.batch = batch
	s.lastErrors = nil
	s.mu.Unlock()

	s.logger.Info("parsed %s batch %s: %d record(s)", s.schema.Kind, batch.ID, len(records))
	return s.preview(batch), nil
}

// ValidateAndSubmit validates the parsed batch against the snapshot and,
// only when every row passes, ships it to the backend. Both validation
// and backend failures land in Rejected with the batch preserved.
func (s *ImportService) ValidateAndSubmit(ctx context.Context, snap refdata.Snapshot) error {
	if !s.inflight.TryAcquire(1) {
		return errors.New(errors.CodeSubmitInFlight, "a submission is already in progress")
	}
	defer s.inflight.Release(1)

	s.mu.Lock()
	batch := s.batch
	s.mu.Unlock()
	if batch == nil {
		return errors.New(errors.CodeBatchNotFound, "no parsed batch to submit")
	}

	result := ingest.ValidateBatch(batch.Records, s.schema, snap)
	if !result.Valid() {
		s.setRejected(result.Errors)
		s.logger.Info("%s batch %s rejected: %d validation error(s)", s.schema.Kind, batch.ID, len(result.Errors))
		return &ValidationFailure{Errors: result.Errors}
	}

	if err := s.submit(ctx, result.Records); err != nil {
		s.setRejected(nil)
		s.logger.Error("%s batch %s submission failed: %v", s.schema.Kind, batch.ID, err)
		return err
	}

	s.mu.Lock()
	s.state = StateSubmitted
	s.batch = nil
	s.lastErrors = nil
	s.mu.Unlock()

	s.logger.Info("%s batch %s submitted (%d record(s))", s.schema.Kind, batch.ID, len(result.Records))
	return nil
}

// Discard drops the parsed batch and returns to Idle.
func (s *ImportService) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
	s.batch = nil
	s.lastErrors = nil
}

// State returns the current pipeline state.
func (s *ImportService) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Batch returns the parsed batch, or nil outside Parsed/Rejected.
func (s *ImportService) Batch() *Batch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batch
}

// LastErrors returns the validation errors of the last rejected pass.
func (s *ImportService) LastErrors() []ingest.ValidationError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErrors
}

func (s *ImportService) setRejected(errs []ingest.ValidationError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateRejected
	s.lastErrors = errs
}

func (s *ImportService) submit(ctx context.Context, records []ingest.ParsedRecord) error {
	switch s.schema.Kind {
	case ingest.SchemaFees:
		return s.submitter.SubmitFees(ctx, ingest.FeePayload(records, s.now()))
	case ingest.SchemaAttendance:
		return s.submitter.SubmitAttendance(ctx, ingest.AttendancePayload(records, s.now()))
	default:
		return fmt.Errorf("unknown import kind %q", s.schema.Kind)
	}
}

func (s *ImportService) preview(batch *Batch) *Preview {
	p := &Preview{
		BatchID:  batch.ID,
		Kind:     s.schema.Kind,
		RowCount: len(batch.Records),
		Records:  make([]map[string]string, 0, len(batch.Records)),
	}
	for _, rec := range batch.Records {
		p.Records = append(p.Records, rec.Display())
	}
	if s.schema.Kind == ingest.SchemaFees {
		p.Summary = feeSummary(batch.Records)
	}
	return p
}

// feeSummary aggregates whatever collected amounts parsed cleanly.
func feeSummary(records []ingest.ParsedRecord) *FeeSummary {
	var amounts []float64
	for _, rec := range records {
		v := rec.Field("feeCollected")
		if v.Kind == ingest.ValueKindNumeric {
			amounts = append(amounts, v.Number)
		}
	}
	if len(amounts) == 0 {
		return nil
	}

	total, _ := stats.Sum(amounts)
	mean, _ := stats.Mean(amounts)
	max, _ := stats.Max(amounts)
	return &FeeSummary{TotalCollected: total, MeanCollected: mean, MaxCollected: max}
}
