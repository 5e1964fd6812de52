// Command importfile runs one import end to end from the command line:
// parse a local spreadsheet, print the preview, optionally validate and
// submit against the configured backend.
//
// Usage:
//
//	importfile -kind fees -file fees.xlsx -classes "8:A,8:B,9:A" [-submit]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	goerrors "errors"

	"github.com/joho/godotenv"

	"edunest/adapters/api"
	"edunest/adapters/excel"
	"edunest/app"
	"edunest/domain/ingest"
	"edunest/domain/refdata"
	"edunest/internal"
	"edunest/internal/config"
	"edunest/ports"
)

func main() {
	kind := flag.String("kind", "fees", "import kind: fees or attendance")
	file := flag.String("file", "", "path to the .xlsx file")
	classes := flag.String("classes", "", "valid grade:section pairs, comma separated")
	submit := flag.Bool("submit", false, "submit to the backend instead of a dry run")
	flag.Parse()

	if *file == "" {
		log.Fatal("-file is required")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *file, err)
	}

	schema, err := ingest.SchemaFor(ingest.SchemaKind(*kind))
	if err != nil {
		log.Fatal(err)
	}

	svc := app.NewImportService(schema, excel.NewSheetReader(), newSubmitter(*submit), internal.DefaultLogger)

	preview, err := svc.Ingest(data)
	if err != nil {
		log.Fatalf("Ingest failed: %v", err)
	}
	fmt.Printf("Parsed %d record(s) from %s\n", preview.RowCount, *file)
	if preview.Summary != nil {
		fmt.Printf("Fees collected: total %.2f, mean %.2f, max %.2f\n",
			preview.Summary.TotalCollected, preview.Summary.MeanCollected, preview.Summary.MaxCollected)
	}

	snap := parseClasses(*classes)
	if err := svc.ValidateAndSubmit(context.Background(), snap); err != nil {
		var failure *app.ValidationFailure
		if goerrors.As(err, &failure) {
			for _, ve := range failure.Errors {
				fmt.Println(ve.String())
			}
			os.Exit(1)
		}
		log.Fatalf("Submission failed: %v", err)
	}
	fmt.Println("Batch submitted")
}

// parseClasses turns "8:A,9:B" into a reference snapshot.
func parseClasses(s string) refdata.Snapshot {
	var combos []refdata.Combination
	for _, pair := range strings.Split(s, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), ":", 2)
		if len(parts) != 2 {
			continue
		}
		combos = append(combos, refdata.Combination{Grade: parts[0], Section: parts[1]})
	}
	return refdata.NewSnapshot(combos)
}

// newSubmitter returns the real backend client when -submit is set,
// otherwise a printer that shows what would have been sent.
func newSubmitter(submit bool) ports.SubmissionPort {
	if !submit {
		return consoleSubmitter{}
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	return api.NewClient(cfg.Backend)
}

// consoleSubmitter prints the backend-shaped payload instead of sending it.
type consoleSubmitter struct{}

func (consoleSubmitter) SubmitFees(_ context.Context, batch []ingest.FeeRecord) error {
	return printPayload(batch)
}

func (consoleSubmitter) SubmitAttendance(_ context.Context, batch []ingest.AttendanceRecord) error {
	return printPayload(batch)
}

func printPayload(payload interface{}) error {
	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
