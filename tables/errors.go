package tables

import (
	"errors"
	"fmt"

	"github.com/tsawler/tablescan/model"
)

var (
	// ErrRegionRejected marks a candidate region that did not pass the table
	// checks (contour area, joint count or joint grid shape)
	ErrRegionRejected = errors.New("tables: region rejected")

	// ErrBoundaryConstructionFailed is returned when no boundary strategy
	// could derive cell bounds from a joint grid
	ErrBoundaryConstructionFailed = errors.New("tables: cell boundary construction failed")

	// ErrGridShape is returned by a boundary strategy when a joint row is
	// too short for the cells it must close
	ErrGridShape = errors.New("tables: joint grid shape mismatch")
)

// ShapeError reports the joint row that a strategy could not use
type ShapeError struct {
	Strategy string
	Row      int // index of the short joint row
	Need     int // joints required
	Have     int // joints present
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("tables: %s strategy: joint row %d has %d joints, need %d",
		e.Strategy, e.Row, e.Have, e.Need)
}

func (e *ShapeError) Unwrap() error {
	return ErrGridShape
}

// BoundaryError is returned when every boundary strategy failed. Err joins
// the individual strategy errors in the order they were tried.
type BoundaryError struct {
	Err error
}

func (e *BoundaryError) Error() string {
	return fmt.Sprintf("%v: %v", ErrBoundaryConstructionFailed, e.Err)
}

func (e *BoundaryError) Unwrap() []error {
	return []error{ErrBoundaryConstructionFailed, e.Err}
}

// Rejection records a candidate region dropped by the detector
type Rejection struct {
	Index int        // position of the candidate in discovery order
	Rect  model.Rect // bounding rect of the candidate in the source image
	Err   error
}

func (r Rejection) Error() string {
	return fmt.Sprintf("candidate %d at %dx%d+%d+%d: %v",
		r.Index, r.Rect.Width, r.Rect.Height, r.Rect.X, r.Rect.Y, r.Err)
}

func (r Rejection) Unwrap() error {
	return r.Err
}
