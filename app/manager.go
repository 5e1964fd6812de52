package app

import (
	"context"
	"sync"

	"edunest/domain/ingest"
	"edunest/internal"
	"edunest/internal/errors"
	"edunest/ports"
)

// Manager tracks one ImportService per uploaded batch so the HTTP layer
// can address them by ID across requests.
type Manager struct {
	reader    ports.SheetReader
	reference ports.ReferencePort
	submitter ports.SubmissionPort
	logger    *internal.Logger

	mu      sync.RWMutex
	imports map[string]*ImportService
}

// NewManager creates an import manager.
func NewManager(reader ports.SheetReader, reference ports.ReferencePort, submitter ports.SubmissionPort, logger *internal.Logger) *Manager {
	return &Manager{
		reader:    reader,
		reference: reference,
		submitter: submitter,
		logger:    logger,
		imports:   make(map[string]*ImportService),
	}
}

// Start parses an uploaded file of the given kind and registers the
// resulting batch for later submission or discard.
func (m *Manager) Start(kind ingest.SchemaKind, data []byte) (*Preview, error) {
	schema, err := ingest.SchemaFor(kind)
	if err != nil {
		return nil, errors.InvalidInput(err.Error())
	}

	svc := NewImportService(schema, m.reader, m.submitter, m.logger)
	preview, err := svc.Ingest(data)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.imports[preview.BatchID] = svc
	m.mu.Unlock()
	return preview, nil
}

// Submit validates the batch against a fresh reference snapshot and
// ships it. The batch entry is removed only on success; rejected
// batches stay addressable so the user can retry without re-uploading.
func (m *Manager) Submit(ctx context.Context, batchID string) error {
	svc, err := m.lookup(batchID)
	if err != nil {
		return err
	}

	snap, err := m.reference.Snapshot(ctx)
	if err != nil {
		return err
	}

	if err := svc.ValidateAndSubmit(ctx, *snap); err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.imports, batchID)
	m.mu.Unlock()
	return nil
}

// Discard drops a parsed batch entirely.
func (m *Manager) Discard(batchID string) error {
	svc, err := m.lookup(batchID)
	if err != nil {
		return err
	}
	svc.Discard()

	m.mu.Lock()
	delete(m.imports, batchID)
	m.mu.Unlock()
	return nil
}

func (m *Manager) lookup(batchID string) (*ImportService, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	svc, ok := m.imports[batchID]
	if !ok {
		return nil, errors.New(errors.CodeBatchNotFound, "batch not found: "+batchID)
	}
	return svc, nil
}
