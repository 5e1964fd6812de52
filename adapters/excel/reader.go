package excel

import (
	"bytes"
	"fmt"
	"log"
	"time"

	"github.com/xuri/excelize/v2"

	"edunest/domain/ingest"
	"edunest/internal/errors"
	"edunest/ports"
)

// SheetReader decodes uploaded .xlsx/.xls bytes into raw rows using the
// first sheet of the workbook. Multi-sheet workbooks are not supported;
// everything past the first sheet is ignored.
type SheetReader struct{}

// NewSheetReader creates a reader for uploaded spreadsheet bytes.
func NewSheetReader() *SheetReader {
	return &SheetReader{}
}

var _ ports.SheetReader = (*SheetReader)(nil)

// ReadRows opens the workbook and returns every row of the first sheet,
// header row included. Decode failures are coded so the pipeline can
// surface them without touching its state.
func (r *SheetReader) ReadRows(data []byte) ([]ingest.RawRow, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.DecodeFailed(err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.DecodeFailed(fmt.Errorf("workbook has no sheets"))
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.DecodeFailed(fmt.Errorf("failed to read sheet %q: %w", sheets[0], err))
	}
	if len(rows) < 2 {
		return nil, errors.DecodeFailed(fmt.Errorf("file must have a header row and at least one data row"))
	}

	raw := make([]ingest.RawRow, len(rows))
	for i, row := range rows {
		raw[i] = ingest.RawRow(row)
	}

	log.Printf("[SheetReader] Decoded sheet %q in %.2fms (%d rows)",
		sheets[0], float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))
	return raw, nil
}
