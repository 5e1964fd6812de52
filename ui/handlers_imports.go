package ui

import (
	goerrors "errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"edunest/app"
	"edunest/domain/ingest"
	"edunest/internal/errors"
)

// maxUploadBytes caps spreadsheet uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// handleUpload accepts a multipart spreadsheet upload and responds with
// the parse preview. Nothing is validated or submitted yet.
func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	kind := ingest.SchemaKind(chi.URLParam(r, "kind"))

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, errors.InvalidInput("expected a multipart form with a \"file\" field"))
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, errors.InvalidInput("missing \"file\" field"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		writeError(w, errors.InvalidInput("failed to read uploaded file"))
		return
	}

	preview, err := a.manager.Start(kind, data)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

// handleSubmit validates the batch and submits it to the backend. The
// full validation error list goes back to the caller; truncating it for
// display is the console's concern, not ours.
func (a *App) handleSubmit(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batchID")

	err := a.manager.Submit(r.Context(), batchID)
	if err == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "submitted", "batchId": batchID})
		return
	}

	var failure *app.ValidationFailure
	if goerrors.As(err, &failure) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"status": "rejected",
			"errors": failure.Errors,
		})
		return
	}
	writeError(w, err)
}

// handleDiscard drops a parsed batch.
func (a *App) handleDiscard(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batchID")
	if err := a.manager.Discard(batchID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "discarded", "batchId": batchID})
}

// writeError maps application error codes onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeInvalidInput, errors.CodeDecodeFailed:
		status = http.StatusBadRequest
	case errors.CodeBatchNotFound:
		status = http.StatusNotFound
	case errors.CodeSubmitInFlight:
		status = http.StatusConflict
	case errors.CodeSubmitFailed, errors.CodeReferenceData:
		status = http.StatusBadGateway
	}
	writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}
