// Package tablescan provides a fluent API for recovering ruled tables from
// photographed or scanned page images.
//
// Basic usage:
//
//	tbls, warnings, err := tablescan.Open("invoice.jpg").Tables(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", tablescan.FormatWarnings(warnings))
//	}
//
// Cell text needs a word recognizer. Build with -tags ocr to use Tesseract,
// or supply one:
//
//	grids, _, err := tablescan.Open("scan.pdf").
//	    Pages(1, 2).
//	    Language("eng").
//	    Grids(ctx)
//
// For finer control, the tables, warp and raster packages expose each
// stage of the pipeline.
package tablescan

import (
	"image"

	"github.com/tsawler/tablescan/format"
)

// Open returns an Extractor for an image or PDF file. The file is read
// when a terminal operation runs.
//
// Example:
//
//	tbls, warnings, err := tablescan.Open("page.png").Tables(ctx)
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromImage returns an Extractor for an already decoded page image.
//
// Example:
//
//	grids, _, err := tablescan.FromImage(img).WithRecognizer(r).Grids(ctx)
func FromImage(img image.Image) *Extractor {
	return &Extractor{
		pages:   []format.Page{{Number: 1, Image: img}},
		decoded: true,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustTables is a helper that wraps a call to Tables() or Grids() and
// panics if the error is non-nil. It discards warnings and returns just
// the value.
//
// Example:
//
//	grids := tablescan.MustTables(tablescan.Open("page.png").Grids(ctx))
func MustTables[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
