package tables

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tsawler/tablescan/internal/logger"
	"github.com/tsawler/tablescan/model"
)

// BoundaryStrategy derives cell bounds from a joint grid. The result has one
// row per pair of consecutive joint rows.
type BoundaryStrategy interface {
	// Name returns the strategy name
	Name() string

	// Bounds computes the cell bounds, row-major
	Bounds(grid model.JointGrid) ([][]model.CellBounds, error)
}

// PrimaryStrategy closes the cell between joints (i, j) and (i+1, j+1).
// It needs every joint row to be at least as long as the row above it.
type PrimaryStrategy struct{}

// Name returns "primary"
func (PrimaryStrategy) Name() string {
	return "primary"
}

// Bounds computes one cell per diagonal joint pair
func (s PrimaryStrategy) Bounds(grid model.JointGrid) ([][]model.CellBounds, error) {
	var cells [][]model.CellBounds
	for i := 0; i+1 < len(grid); i++ {
		upper, lower := grid[i], grid[i+1]
		if len(upper) < 2 {
			return nil, &ShapeError{Strategy: s.Name(), Row: i, Need: 2, Have: len(upper)}
		}
		if len(lower) < len(upper) {
			return nil, &ShapeError{Strategy: s.Name(), Row: i + 1, Need: len(upper), Have: len(lower)}
		}

		row := make([]model.CellBounds, 0, max(0, len(upper)-1))
		for j := 0; j+1 < len(upper); j++ {
			row = append(row, model.BoundsFromCorners(upper[j], lower[j+1]))
		}
		cells = append(cells, row)
	}
	return cells, nil
}

// FallbackStrategy tolerates rows of different lengths. For each pair of
// joint rows the shorter one defines the columns: consecutive joints of
// that row give the left and right edges, and the first joint of the other
// row gives the remaining horizontal edge. Inverted bounds are normalized.
//
// This is a heuristic. Columns are only as accurate as the shorter row.
type FallbackStrategy struct{}

// Name returns "fallback"
func (FallbackStrategy) Name() string {
	return "fallback"
}

// Bounds computes cells from the shorter row of each pair
func (s FallbackStrategy) Bounds(grid model.JointGrid) ([][]model.CellBounds, error) {
	var cells [][]model.CellBounds
	for i := 0; i+1 < len(grid); i++ {
		defining, helper := grid[i], grid[i+1]
		if len(helper) < len(defining) {
			defining, helper = helper, defining
		}
		if len(defining) < 2 {
			row := i
			if len(grid[i]) >= 2 {
				row = i + 1
			}
			return nil, &ShapeError{Strategy: s.Name(), Row: row, Need: 2, Have: len(defining)}
		}

		edgeY := helper[0].Y
		row := make([]model.CellBounds, 0, max(0, len(defining)-1))
		for j := 0; j+1 < len(defining); j++ {
			row = append(row, model.CellBounds{
				Top:    defining[j].Y,
				Bottom: edgeY,
				Left:   defining[j].X,
				Right:  defining[j+1].X,
			}.Normalize())
		}
		cells = append(cells, row)
	}
	return cells, nil
}

// BuildCellBounds tries each strategy in order and returns the first
// result. A failing or panicking strategy is logged at warn level and the
// next one is tried. When every strategy fails the error is a
// *BoundaryError wrapping ErrBoundaryConstructionFailed and each cause.
// A grid that fails model.JointGrid.Validate is rejected before any
// strategy runs, with a *BoundaryError wrapping model.ErrMalformedJointGrid.
//
// With no strategies the registered "primary" and "fallback" are used.
func BuildCellBounds(log *slog.Logger, grid model.JointGrid, strategies ...BoundaryStrategy) ([][]model.CellBounds, error) {
	if log == nil {
		log = logger.Discard()
	}
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}

	if err := grid.Validate(); err != nil {
		return nil, &BoundaryError{Err: err}
	}

	var errs []error
	for n, s := range strategies {
		cells, err := runStrategy(s, grid)
		if err == nil {
			if n > 0 {
				log.Info("boundary strategy recovered", "strategy", s.Name(), "ragged", grid.IsRagged())
			}
			return cells, nil
		}
		log.Warn("boundary strategy failed", "strategy", s.Name(), "error", err)
		errs = append(errs, err)
	}
	return nil, &BoundaryError{Err: errors.Join(errs...)}
}

func runStrategy(s BoundaryStrategy, grid model.JointGrid) (cells [][]model.CellBounds, err error) {
	defer func() {
		if r := recover(); r != nil {
			cells, err = nil, fmt.Errorf("tables: %s strategy panicked: %v", s.Name(), r)
		}
	}()
	return s.Bounds(grid)
}

// StrategyRegistry holds boundary strategies by name
type StrategyRegistry struct {
	strategies map[string]BoundaryStrategy
	order      []string
}

// NewRegistry creates a new strategy registry
func NewRegistry() *StrategyRegistry {
	return &StrategyRegistry{
		strategies: make(map[string]BoundaryStrategy),
	}
}

// Register registers a strategy, replacing any with the same name
func (r *StrategyRegistry) Register(s BoundaryStrategy) {
	if _, ok := r.strategies[s.Name()]; !ok {
		r.order = append(r.order, s.Name())
	}
	r.strategies[s.Name()] = s
}

// Get retrieves a strategy by name
func (r *StrategyRegistry) Get(name string) BoundaryStrategy {
	return r.strategies[name]
}

// List returns the registered names in registration order
func (r *StrategyRegistry) List() []string {
	return append([]string(nil), r.order...)
}

// Global registry
var globalRegistry = NewRegistry()

// RegisterStrategy registers a strategy globally. Call it from init.
func RegisterStrategy(s BoundaryStrategy) {
	globalRegistry.Register(s)
}

// GetStrategy retrieves a strategy by name, or nil
func GetStrategy(name string) BoundaryStrategy {
	return globalRegistry.Get(name)
}

// ListStrategies returns all registered strategy names
func ListStrategies() []string {
	return globalRegistry.List()
}

// StrategiesByName resolves names against the global registry
func StrategiesByName(names ...string) ([]BoundaryStrategy, error) {
	out := make([]BoundaryStrategy, 0, len(names))
	for _, name := range names {
		s := GetStrategy(name)
		if s == nil {
			return nil, fmt.Errorf("tables: unknown boundary strategy %q", name)
		}
		out = append(out, s)
	}
	return out, nil
}

// DefaultStrategies returns the primary strategy followed by the fallback
func DefaultStrategies() []BoundaryStrategy {
	return []BoundaryStrategy{PrimaryStrategy{}, FallbackStrategy{}}
}

func init() {
	RegisterStrategy(PrimaryStrategy{})
	RegisterStrategy(FallbackStrategy{})
}
