package tablescan

import (
	"log/slog"

	"github.com/tsawler/tablescan/ocr"
	"github.com/tsawler/tablescan/tables"
)

// ExtractOptions holds configuration for table extraction.
type ExtractOptions struct {
	// Page selection (1-indexed, nil means all pages)
	pages []int

	// Detection
	scale      int
	blockSize  int
	minArea    float64
	minJoints  int
	workers    int
	margin     int
	strategies []tables.BoundaryStrategy

	// Recognition
	language      string
	pageSegMode   ocr.PageSegMode
	cleanForOCR   bool
	minConfidence float64
	recognizer    tables.WordRecognizer

	logger *slog.Logger
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	cfg := tables.DefaultConfig()
	rec := tables.DefaultRecognizeOptions()
	return ExtractOptions{
		scale:         cfg.Mask.Scale,
		blockSize:     cfg.Mask.BlockSize,
		minArea:       cfg.MinTableArea,
		minJoints:     cfg.MinJoints,
		workers:       cfg.Workers,
		margin:        cfg.Pad.Margin,
		language:      "eng",
		pageSegMode:   ocr.DefaultPageSegMode,
		cleanForOCR:   rec.RemoveLines,
		minConfidence: rec.MinConfidence,
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}
	if o.strategies != nil {
		newOpts.strategies = make([]tables.BoundaryStrategy, len(o.strategies))
		copy(newOpts.strategies, o.strategies)
	}
	return newOpts
}

// detectorConfig maps the options onto a detector configuration
func (o ExtractOptions) detectorConfig() tables.Config {
	cfg := tables.DefaultConfig()
	cfg.Mask.Scale = o.scale
	cfg.Mask.BlockSize = o.blockSize
	cfg.MinTableArea = o.minArea
	cfg.MinJoints = o.minJoints
	cfg.Workers = o.workers
	cfg.Pad.Margin = o.margin
	cfg.Strategies = o.strategies
	cfg.Logger = o.logger
	return cfg
}

// recognizeOptions maps the options onto recognition settings
func (o ExtractOptions) recognizeOptions() tables.RecognizeOptions {
	rec := tables.DefaultRecognizeOptions()
	rec.RemoveLines = o.cleanForOCR
	rec.MinConfidence = o.minConfidence
	return rec
}
