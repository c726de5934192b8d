package tables

import (
	"context"
	"fmt"
	"image"

	"github.com/tsawler/tablescan/model"
	"github.com/tsawler/tablescan/ocr"
	"github.com/tsawler/tablescan/raster"
)

// WordRecognizer returns the words of an image with their boxes in the
// pixel space of that image. *ocr.Client implements it.
type WordRecognizer interface {
	Words(ctx context.Context, img image.Image) ([]model.WordBox, error)
}

// RecognizeOptions controls Recognize
type RecognizeOptions struct {
	// RemoveLines erases ruling lines before recognition
	RemoveLines bool

	// Contrast adjustment in percent applied with RemoveLines
	Contrast float64

	// MinConfidence drops words the engine scored lower
	MinConfidence float64
}

// DefaultRecognizeOptions returns the options used by the extractor
func DefaultRecognizeOptions() RecognizeOptions {
	return RecognizeOptions{
		RemoveLines: true,
		Contrast:    20,
	}
}

// Recognize runs r on each table image and assigns the words to cells.
// Tables are processed one at a time in order. The first recognizer or
// assignment error aborts and is returned wrapped.
func Recognize(ctx context.Context, tables []*Table, r WordRecognizer, opts RecognizeOptions) ([]model.TextGrid, error) {
	grids := make([]model.TextGrid, 0, len(tables))
	for _, t := range tables {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var img image.Image = t.Image
		if opts.RemoveLines && t.Lines != nil {
			img = raster.RemoveLines(t.Image, t.Lines, opts.Contrast)
		}

		words, err := r.Words(ctx, img)
		if err != nil {
			return nil, fmt.Errorf("table %d: recognize: %w", t.Index, err)
		}
		words = ocr.CleanWords(words)
		if opts.MinConfidence > 0 {
			words = ocr.FilterConfidence(words, opts.MinConfidence)
		}

		grid, err := t.AssignWords(words)
		if err != nil {
			return nil, fmt.Errorf("table %d: %w", t.Index, err)
		}
		grids = append(grids, grid)
	}
	return grids, nil
}
