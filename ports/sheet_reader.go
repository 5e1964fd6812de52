package ports

import "edunest/domain/ingest"

// SheetReader decodes an uploaded spreadsheet into raw rows, header
// included. A failure means the bytes were not a readable spreadsheet;
// no partial rows are ever returned.
type SheetReader interface {
	ReadRows(data []byte) ([]ingest.RawRow, error)
}
