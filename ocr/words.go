// Package ocr recognizes words in table images with the Tesseract OCR
// engine via gosseract.
//
// Tesseract support is compiled in only with the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr libtesseract-dev
//
// Without the tag, [New] returns [ErrOCRNotEnabled]. The helpers in this
// file are available in both builds.
package ocr

import (
	"errors"
	"strings"

	"github.com/tsawler/tablescan/model"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// PageSegMode represents page segmentation modes for OCR.
// These control how Tesseract analyzes the page layout.
type PageSegMode int

// Page segmentation modes, numbered as in Tesseract
const (
	PSM_OSD_ONLY               PageSegMode = 0  // Orientation and script detection only
	PSM_AUTO_OSD               PageSegMode = 1  // Automatic with OSD
	PSM_AUTO_ONLY              PageSegMode = 2  // Automatic, no OSD or OCR
	PSM_AUTO                   PageSegMode = 3  // Fully automatic (default)
	PSM_SINGLE_COLUMN          PageSegMode = 4  // Single column of variable sizes
	PSM_SINGLE_BLOCK_VERT_TEXT PageSegMode = 5  // Single uniform block of vertically aligned text
	PSM_SINGLE_BLOCK           PageSegMode = 6  // Single uniform block of text
	PSM_SINGLE_LINE            PageSegMode = 7  // Single text line
	PSM_SINGLE_WORD            PageSegMode = 8  // Single word
	PSM_CIRCLE_WORD            PageSegMode = 9  // Single word in a circle
	PSM_SINGLE_CHAR            PageSegMode = 10 // Single character
	PSM_SPARSE_TEXT            PageSegMode = 11 // Find as much text as possible
	PSM_SPARSE_TEXT_OSD        PageSegMode = 12 // Sparse text with OSD
	PSM_RAW_LINE               PageSegMode = 13 // Treat image as single text line
)

// DefaultPageSegMode treats a rectified table as one uniform block of text
const DefaultPageSegMode = PSM_SINGLE_BLOCK

// Valid reports whether m is a mode Tesseract knows
func (m PageSegMode) Valid() bool {
	return m >= PSM_OSD_ONLY && m <= PSM_RAW_LINE
}

// CleanWords trims the text of each word and drops words left empty.
// Order is preserved and the input is not modified.
func CleanWords(words []model.WordBox) []model.WordBox {
	out := make([]model.WordBox, 0, len(words))
	for _, w := range words {
		w.Text = strings.TrimSpace(w.Text)
		if w.Text == "" {
			continue
		}
		out = append(out, w)
	}
	return out
}

// FilterConfidence drops words whose confidence is below min
func FilterConfidence(words []model.WordBox, min float64) []model.WordBox {
	out := make([]model.WordBox, 0, len(words))
	for _, w := range words {
		if w.Confidence >= min {
			out = append(out, w)
		}
	}
	return out
}
