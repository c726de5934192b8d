package tablescan_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/tsawler/tablescan"
	"github.com/tsawler/tablescan/export"
)

// These examples verify the README code samples compile correctly.
// They are not meant to be run as actual tests since they require files.

func Example_detectTables() {
	ctx := context.Background()
	tbls, warnings, err := tablescan.Open("invoice.jpg").Tables(ctx)
	if err != nil {
		log.Fatal(err)
	}

	for _, t := range tbls {
		fmt.Printf("table %d: %d rows x %d cols\n", t.Index, t.Rows(), t.Cols())
	}
	for _, w := range warnings {
		fmt.Println("Warning:", w)
	}
}

func Example_extractWithOptions() {
	grids, warnings, err := tablescan.Open("scan.pdf").
		Pages(1, 2).     // Specific pages (PDF only)
		Scale(20).       // Keep shorter ruling lines
		MinJoints(6).    // Require more intersections per table
		Language("eng"). // Tesseract language (build with -tags ocr)
		Grids(context.Background())
	_ = grids
	_ = warnings
	_ = err
}

func Example_exportCSV() {
	_, err := tablescan.Open("page.png").Write(context.Background(), os.Stdout, export.CSV)
	if err != nil {
		log.Fatal(err)
	}
}
