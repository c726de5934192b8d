package tablescan

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/tsawler/tablescan/export"
	"github.com/tsawler/tablescan/format"
	"github.com/tsawler/tablescan/internal/logger"
	"github.com/tsawler/tablescan/model"
	"github.com/tsawler/tablescan/ocr"
	"github.com/tsawler/tablescan/tables"
)

// PageTable is one recovered table together with the page it came from
type PageTable struct {
	// Page is the 1-indexed page number
	Page int

	// Table is the detected table
	Table *tables.Table

	// Text is the recognized cell text, nil until recognition runs
	Text model.TextGrid
}

// Extractor provides a fluent interface for recovering tables from page
// images. Each configuration method returns a new Extractor instance,
// making it safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	pages    []format.Page
	decoded  bool

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		pages:    e.pages,
		decoded:  e.decoded,
		options:  e.options.clone(),
		err:      e.err,
		warnings: append([]Warning(nil), e.warnings...),
	}
}

func (e *Extractor) withErr(err error) *Extractor {
	newExt := e.clone()
	if newExt.err == nil {
		newExt.err = err
	}
	return newExt
}

func (e *Extractor) log() *slog.Logger {
	if e.options.logger != nil {
		return e.options.logger
	}
	return logger.Discard()
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages selects which pages of a PDF to process (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	tbls, _, err := tablescan.Open("scan.pdf").Pages(1, 3).Tables(ctx)
func (e *Extractor) Pages(pages ...int) *Extractor {
	for _, p := range pages {
		if p < 1 {
			return e.withErr(fmt.Errorf("invalid page number %d", p))
		}
	}
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	return newExt
}

// Scale sets the divisor of the image size that gives the minimum length
// of a ruling line. Larger values keep shorter lines.
func (e *Extractor) Scale(scale int) *Extractor {
	if scale < 1 {
		return e.withErr(fmt.Errorf("invalid scale %d: must be at least 1", scale))
	}
	newExt := e.clone()
	newExt.options.scale = scale
	return newExt
}

// BlockSize sets the neighborhood size of the adaptive threshold. Even
// values are rounded up to the next odd size.
func (e *Extractor) BlockSize(size int) *Extractor {
	if size < 3 {
		return e.withErr(fmt.Errorf("invalid block size %d: must be at least 3", size))
	}
	newExt := e.clone()
	newExt.options.blockSize = size
	return newExt
}

// MinArea sets the minimum contour area of a table candidate in square
// pixels.
func (e *Extractor) MinArea(area float64) *Extractor {
	if area < 0 {
		return e.withErr(fmt.Errorf("invalid minimum area %v", area))
	}
	newExt := e.clone()
	newExt.options.minArea = area
	return newExt
}

// MinJoints sets the minimum number of line intersections a table needs.
//
// Example:
//
//	tbls, _, err := tablescan.Open("page.jpg").Scale(20).MinJoints(6).Tables(ctx)
func (e *Extractor) MinJoints(n int) *Extractor {
	if n < 0 {
		return e.withErr(fmt.Errorf("invalid minimum joints %d", n))
	}
	newExt := e.clone()
	newExt.options.minJoints = n
	return newExt
}

// Workers bounds the number of table candidates processed concurrently.
// Zero means one per CPU.
func (e *Extractor) Workers(n int) *Extractor {
	if n < 0 {
		return e.withErr(fmt.Errorf("invalid worker count %d", n))
	}
	newExt := e.clone()
	newExt.options.workers = n
	return newExt
}

// Margin sets the white margin in pixels added around each rectified table.
func (e *Extractor) Margin(px int) *Extractor {
	if px < 0 {
		return e.withErr(fmt.Errorf("invalid margin %d", px))
	}
	newExt := e.clone()
	newExt.options.margin = px
	return newExt
}

// Strategies selects the registered cell boundary strategies to try, in
// order.
//
// Example:
//
//	tbls, _, err := tablescan.Open("page.png").Strategies("fallback").Tables(ctx)
func (e *Extractor) Strategies(names ...string) *Extractor {
	strategies, err := tables.StrategiesByName(names...)
	if err != nil {
		return e.withErr(err)
	}
	newExt := e.clone()
	newExt.options.strategies = strategies
	return newExt
}

// Language sets the Tesseract language, such as "eng" or "eng+deu". It is
// ignored when a recognizer is supplied with WithRecognizer.
func (e *Extractor) Language(lang string) *Extractor {
	newExt := e.clone()
	newExt.options.language = lang
	return newExt
}

// PageSegMode sets the Tesseract page segmentation mode. The default,
// ocr.PSM_SINGLE_BLOCK, reads each table image as one block of text. It is
// ignored when a recognizer is supplied with WithRecognizer.
func (e *Extractor) PageSegMode(mode ocr.PageSegMode) *Extractor {
	if !mode.Valid() {
		return e.withErr(fmt.Errorf("invalid page segmentation mode %d: must be 0-13", mode))
	}
	newExt := e.clone()
	newExt.options.pageSegMode = mode
	return newExt
}

// CleanForOCR controls whether ruling lines are erased from table images
// before recognition. Enabled by default.
func (e *Extractor) CleanForOCR(enabled bool) *Extractor {
	newExt := e.clone()
	newExt.options.cleanForOCR = enabled
	return newExt
}

// MinConfidence drops recognized words scored below score (0-100).
func (e *Extractor) MinConfidence(score float64) *Extractor {
	newExt := e.clone()
	newExt.options.minConfidence = score
	return newExt
}

// WithRecognizer supplies the word recognizer used by Grids and Extract
// instead of the built-in Tesseract client.
func (e *Extractor) WithRecognizer(r tables.WordRecognizer) *Extractor {
	newExt := e.clone()
	newExt.options.recognizer = r
	return newExt
}

// WithLogger sets the logger that receives pipeline messages.
func (e *Extractor) WithLogger(l *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = l
	return newExt
}

// ============================================================================
// Terminal Operations (execute extraction and return results)
// ============================================================================

// Tables detects the tables of every selected page without recognizing
// text. Tables are returned in page order, then detection order.
//
// Example:
//
//	tbls, warnings, err := tablescan.Open("page.png").Tables(ctx)
//	for _, t := range tbls {
//	    fmt.Println(t.Rows(), "rows")
//	}
func (e *Extractor) Tables(ctx context.Context) ([]*tables.Table, []Warning, error) {
	found, warnings, err := e.detect(ctx)
	if err != nil {
		return nil, warnings, err
	}
	out := make([]*tables.Table, len(found))
	for i, pt := range found {
		out[i] = pt.Table
	}
	return out, warnings, nil
}

// Extract detects the tables of every selected page and recognizes their
// cell text.
func (e *Extractor) Extract(ctx context.Context) ([]PageTable, []Warning, error) {
	found, warnings, err := e.detect(ctx)
	if err != nil {
		return nil, warnings, err
	}
	if len(found) == 0 {
		return found, warnings, nil
	}

	r, closeFn, err := e.recognizer()
	if err != nil {
		return nil, warnings, err
	}
	defer closeFn()

	tbls := make([]*tables.Table, len(found))
	for i, pt := range found {
		tbls[i] = pt.Table
	}
	grids, err := tables.Recognize(ctx, tbls, r, e.options.recognizeOptions())
	if err != nil {
		return nil, warnings, err
	}
	for i := range found {
		found[i].Text = grids[i]
	}
	return found, warnings, nil
}

// Grids returns the recognized text grid of every table.
//
// Example:
//
//	grids, _, err := tablescan.Open("page.png").Language("eng").Grids(ctx)
func (e *Extractor) Grids(ctx context.Context) ([]model.TextGrid, []Warning, error) {
	found, warnings, err := e.Extract(ctx)
	if err != nil {
		return nil, warnings, err
	}
	grids := make([]model.TextGrid, len(found))
	for i, pt := range found {
		grids[i] = pt.Text
	}
	return grids, warnings, nil
}

// Write recognizes every table and renders the grids to w.
//
// Example:
//
//	_, err := tablescan.Open("page.png").Write(ctx, os.Stdout, export.CSV)
func (e *Extractor) Write(ctx context.Context, w io.Writer, f export.Format) ([]Warning, error) {
	grids, warnings, err := e.Grids(ctx)
	if err != nil {
		return warnings, err
	}
	return warnings, export.Write(w, f, grids)
}

// ============================================================================
// Pipeline
// ============================================================================

// loadPages decodes the source and applies the page selection.
func (e *Extractor) loadPages() ([]format.Page, []Warning, error) {
	pages := e.pages
	if !e.decoded {
		if e.filename == "" {
			return nil, nil, fmt.Errorf("no filename specified")
		}
		decoded, err := format.DecodeFile(e.filename)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open %s: %w", e.filename, err)
		}
		pages = decoded
	}

	selected := e.options.pages
	if selected == nil {
		return pages, nil, nil
	}

	var warnings []Warning
	var out []format.Page
	for _, p := range pages {
		if slices.Contains(selected, p.Number) {
			out = append(out, p)
		}
	}
	for _, n := range selected {
		if !slices.ContainsFunc(out, func(p format.Page) bool { return p.Number == n }) {
			warnings = append(warnings, Warning{Page: n, Message: "no image on page"})
		}
	}
	return out, warnings, nil
}

// detect runs the detector over every selected page.
func (e *Extractor) detect(ctx context.Context) ([]PageTable, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	pages, pageWarnings, err := e.loadPages()
	if err != nil {
		return nil, nil, err
	}
	warnings := append(append([]Warning(nil), e.warnings...), pageWarnings...)

	log := e.log()
	det := tables.NewDetector(e.options.detectorConfig())

	var found []PageTable
	for _, page := range pages {
		result, err := det.Run(ctx, page.Image)
		if err != nil {
			return nil, warnings, fmt.Errorf("page %d: %w", page.Number, err)
		}
		for _, r := range result.Rejected {
			warnings = append(warnings, Warning{Page: page.Number, Message: r.Error()})
		}
		for _, t := range result.Tables {
			found = append(found, PageTable{Page: page.Number, Table: t})
		}
		log.Debug("page processed", "page", page.Number, "tables", len(result.Tables), "rejected", len(result.Rejected))
	}
	return found, warnings, nil
}

// recognizer returns the configured recognizer, or a Tesseract client
// that the caller must release with the returned function.
func (e *Extractor) recognizer() (tables.WordRecognizer, func(), error) {
	if e.options.recognizer != nil {
		return e.options.recognizer, func() {}, nil
	}
	client, err := ocr.New()
	if err != nil {
		return nil, nil, err
	}
	if e.options.language != "" {
		if err := client.SetLanguage(e.options.language); err != nil {
			client.Close()
			return nil, nil, err
		}
	}
	if err := client.SetPageSegMode(e.options.pageSegMode); err != nil {
		client.Close()
		return nil, nil, err
	}
	return client, func() { client.Close() }, nil
}
