package tables

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/disintegration/imaging"

	"github.com/tsawler/tablescan/internal/logger"
	"github.com/tsawler/tablescan/raster"
	"github.com/tsawler/tablescan/warp"
)

// Detector finds ruled tables in page images
type Detector struct {
	config Config
	log    *slog.Logger
}

// Detection is the full result of one Run
type Detection struct {
	// Tables holds the accepted tables in discovery order
	Tables []*Table

	// Rejected lists the candidates that were dropped, in discovery order
	Rejected []Rejection

	// Candidates is the number of regions that passed the mask checks
	Candidates int
}

// NewDetector creates a detector. Zero numeric fields of cfg are not
// replaced by defaults; start from DefaultConfig.
func NewDetector(cfg Config) *Detector {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if len(cfg.Strategies) == 0 {
		cfg.Strategies = DefaultStrategies()
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}
	return &Detector{config: cfg, log: log}
}

// Config returns the detector configuration
func (d *Detector) Config() Config {
	return d.config
}

// Detect finds the tables of img. A page without tables yields an empty
// slice and no error.
func (d *Detector) Detect(ctx context.Context, img image.Image) ([]*Table, error) {
	det, err := d.Run(ctx, img)
	if err != nil {
		return nil, err
	}
	return det.Tables, nil
}

// Run finds the tables of img and reports the rejected candidates.
//
// Candidate regions are processed concurrently, bounded by
// Config.Workers. A failing candidate is recorded and skipped; only
// context cancellation aborts the run.
func (d *Detector) Run(ctx context.Context, img image.Image) (*Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if img == nil || img.Bounds().Empty() {
		return &Detection{Tables: []*Table{}}, nil
	}

	src := imaging.Clone(img)
	gm := raster.BuildGridMask(src, d.config.Mask)
	regions, rejected := DetectRegions(gm.Mask, gm.Intersections(), d.config)
	d.log.Debug("regions found", "accepted", len(regions), "rejected", len(rejected))

	tables := make([]*Table, len(regions))
	failures := make([]*Rejection, len(regions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.config.Workers)
	for i, region := range regions {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t, err := d.process(src, region)
			if err != nil {
				d.log.Warn("table candidate dropped", "index", region.Index, "error", err)
				failures[i] = &Rejection{Index: region.Index, Rect: region.Rect, Err: err}
				return nil
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	det := &Detection{
		Tables:     make([]*Table, 0, len(regions)),
		Rejected:   rejected,
		Candidates: len(regions),
	}
	for i, t := range tables {
		if t != nil {
			t.Index = len(det.Tables)
			det.Tables = append(det.Tables, t)
		} else if failures[i] != nil {
			det.Rejected = append(det.Rejected, *failures[i])
		}
	}
	return det, nil
}

// process rectifies one region and derives its joint grid and cell bounds
func (d *Detector) process(src *image.NRGBA, region Region) (*Table, error) {
	flat, quad, err := warp.Normalize(src, region.Contour, d.config.Pad)
	if err != nil {
		return nil, fmt.Errorf("rectify: %w", err)
	}

	gm := raster.BuildGridMask(flat, d.config.Mask)
	joints := DropShortRows(ClusterJoints(gm.Intersections(), d.config.YCutoff, d.config.XCutoff))

	if n := joints.Count(); n < d.config.MinJoints {
		return nil, fmt.Errorf("%w: %d joints after rectification, need %d", ErrRegionRejected, n, d.config.MinJoints)
	}
	if err := joints.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegionRejected, err)
	}

	t := &Table{
		Index:      region.Index,
		Region:     region.Rect,
		Quad:       quad,
		Image:      flat,
		Lines:      gm.Mask,
		Joints:     joints,
		strategies: d.config.Strategies,
		log:        d.log,
	}
	if _, err := t.CellBounds(); err != nil {
		return nil, err
	}
	return t, nil
}
