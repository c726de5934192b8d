package tables

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/tsawler/tablescan/model"
)

func TestPrimaryStrategy_Regular(t *testing.T) {
	grid := regularGrid([]int{10, 85, 160}, []int{10, 70, 130})
	cells, err := PrimaryStrategy{}.Bounds(grid)
	if err != nil {
		t.Fatalf("Bounds() error = %v", err)
	}
	if len(cells) != 2 || len(cells[0]) != 2 || len(cells[1]) != 2 {
		t.Fatalf("shape = %v", cells)
	}
	want := model.CellBounds{Top: 70, Bottom: 130, Left: 85, Right: 160}
	if cells[1][1] != want {
		t.Errorf("cells[1][1] = %+v, want %+v", cells[1][1], want)
	}
	for _, row := range cells {
		for _, c := range row {
			if !c.Valid() {
				t.Errorf("invalid bounds %+v", c)
			}
		}
	}
}

func TestPrimaryStrategy_Skewed(t *testing.T) {
	// Lower joint left of the upper one still yields ordered edges
	grid := model.JointGrid{
		{model.Pt(10, 12), model.Pt(50, 10)},
		{model.Pt(8, 40), model.Pt(48, 42)},
	}
	cells, err := PrimaryStrategy{}.Bounds(grid)
	if err != nil {
		t.Fatalf("Bounds() error = %v", err)
	}
	want := model.CellBounds{Top: 12, Bottom: 42, Left: 10, Right: 48}
	if cells[0][0] != want {
		t.Errorf("cell = %+v, want %+v", cells[0][0], want)
	}
}

func TestPrimaryStrategy_ShortRow(t *testing.T) {
	grid := model.JointGrid{
		{model.Pt(0, 0), model.Pt(10, 0), model.Pt(20, 0)},
		{model.Pt(0, 10), model.Pt(20, 10)},
	}
	_, err := PrimaryStrategy{}.Bounds(grid)
	if !errors.Is(err, ErrGridShape) {
		t.Fatalf("error = %v, want ErrGridShape", err)
	}
	var shape *ShapeError
	if !errors.As(err, &shape) {
		t.Fatalf("error %T is not *ShapeError", err)
	}
	if shape.Row != 1 || shape.Need != 3 || shape.Have != 2 || shape.Strategy != "primary" {
		t.Errorf("ShapeError = %+v", shape)
	}
}

func TestFallbackStrategy(t *testing.T) {
	tests := []struct {
		name string
		grid model.JointGrid
		want [][]model.CellBounds
	}{
		{
			name: "upper row shorter",
			grid: model.JointGrid{
				{model.Pt(0, 0), model.Pt(20, 0)},
				{model.Pt(0, 10), model.Pt(10, 10), model.Pt(20, 10)},
			},
			want: [][]model.CellBounds{{{Top: 0, Bottom: 10, Left: 0, Right: 20}}},
		},
		{
			name: "lower row shorter is normalized",
			grid: model.JointGrid{
				{model.Pt(0, 0), model.Pt(10, 0), model.Pt(20, 0)},
				{model.Pt(0, 10), model.Pt(20, 10)},
			},
			want: [][]model.CellBounds{{{Top: 0, Bottom: 10, Left: 0, Right: 20}}},
		},
		{
			name: "equal rows",
			grid: regularGrid([]int{0, 10, 20}, []int{0, 10}),
			want: [][]model.CellBounds{{
				{Top: 0, Bottom: 10, Left: 0, Right: 10},
				{Top: 0, Bottom: 10, Left: 10, Right: 20},
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FallbackStrategy{}.Bounds(tt.grid)
			if err != nil {
				t.Fatalf("Bounds() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Bounds() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFallbackStrategy_EmptyRow(t *testing.T) {
	grid := model.JointGrid{{model.Pt(0, 0), model.Pt(10, 0)}, {}}
	if _, err := (FallbackStrategy{}).Bounds(grid); !errors.Is(err, ErrGridShape) {
		t.Errorf("error = %v, want ErrGridShape", err)
	}
}

func TestFallbackStrategy_SinglePointRow(t *testing.T) {
	grid := model.JointGrid{
		{model.Pt(0, 0), model.Pt(10, 0)},
		{model.Pt(5, 10)},
	}
	_, err := FallbackStrategy{}.Bounds(grid)
	var shape *ShapeError
	if !errors.As(err, &shape) {
		t.Fatalf("error = %v, want *ShapeError", err)
	}
	if shape.Row != 1 || shape.Need != 2 || shape.Have != 1 {
		t.Errorf("ShapeError = %+v", shape)
	}
}

func TestBuildCellBounds_MalformedGrid(t *testing.T) {
	tests := []struct {
		name string
		grid model.JointGrid
	}{
		{"empty", nil},
		{"single row", model.JointGrid{{model.Pt(0, 0), model.Pt(10, 0)}}},
		{"single point row", model.JointGrid{
			{model.Pt(0, 0), model.Pt(10, 0)},
			{model.Pt(5, 10)},
		}},
		{"empty row", model.JointGrid{{model.Pt(0, 0), model.Pt(10, 0)}, {}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells, err := BuildCellBounds(nil, tt.grid)
			if cells != nil {
				t.Errorf("cells = %v, want nil", cells)
			}
			if !errors.Is(err, model.ErrMalformedJointGrid) {
				t.Fatalf("error = %v, want ErrMalformedJointGrid", err)
			}
			var be *BoundaryError
			if !errors.As(err, &be) {
				t.Errorf("error %T is not *BoundaryError", err)
			}
		})
	}
}

type failingStrategy struct{ err error }

func (failingStrategy) Name() string { return "failing" }
func (s failingStrategy) Bounds(model.JointGrid) ([][]model.CellBounds, error) {
	return nil, s.err
}

type panickingStrategy struct{}

func (panickingStrategy) Name() string { return "panicking" }
func (panickingStrategy) Bounds(grid model.JointGrid) ([][]model.CellBounds, error) {
	_ = grid[10][10]
	return nil, nil
}

func TestBuildCellBounds_FallsBack(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	grid := model.JointGrid{
		{model.Pt(0, 0), model.Pt(10, 0), model.Pt(20, 0)},
		{model.Pt(0, 10), model.Pt(20, 10)},
	}
	cells, err := BuildCellBounds(log, grid)
	if err != nil {
		t.Fatalf("BuildCellBounds() error = %v", err)
	}
	if len(cells) != 1 || len(cells[0]) != 1 {
		t.Errorf("cells = %v", cells)
	}
	if !strings.Contains(buf.String(), "boundary strategy failed") || !strings.Contains(buf.String(), "strategy=primary") {
		t.Errorf("expected a warning for the primary strategy, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "strategy=fallback ragged=true") {
		t.Errorf("expected the fallback recovery to be logged, got %q", buf.String())
	}
}

func TestBuildCellBounds_PrimaryFirst(t *testing.T) {
	grid := regularGrid([]int{0, 10, 20}, []int{0, 10, 20})
	cells, err := BuildCellBounds(nil, grid)
	if err != nil {
		t.Fatalf("BuildCellBounds() error = %v", err)
	}
	if len(cells) != len(grid)-1 {
		t.Errorf("rows = %d, want %d", len(cells), len(grid)-1)
	}
}

func TestBuildCellBounds_AllFail(t *testing.T) {
	grid := regularGrid([]int{0, 10}, []int{0, 10})
	cause := errors.New("no luck")

	_, err := BuildCellBounds(nil, grid, failingStrategy{cause}, panickingStrategy{})
	if !errors.Is(err, ErrBoundaryConstructionFailed) {
		t.Fatalf("error = %v, want ErrBoundaryConstructionFailed", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("error %v does not wrap the strategy cause", err)
	}
	var be *BoundaryError
	if !errors.As(err, &be) {
		t.Fatalf("error %T is not *BoundaryError", err)
	}
	if !strings.Contains(err.Error(), "panicking strategy panicked") {
		t.Errorf("panic not reported: %v", err)
	}
}

func TestStrategyRegistry(t *testing.T) {
	names := ListStrategies()
	if !slices.Contains(names, "primary") || !slices.Contains(names, "fallback") {
		t.Errorf("ListStrategies() = %v", names)
	}
	if GetStrategy("primary") == nil {
		t.Error("primary strategy not registered")
	}

	got, err := StrategiesByName("fallback", "primary")
	if err != nil {
		t.Fatalf("StrategiesByName() error = %v", err)
	}
	if got[0].Name() != "fallback" || got[1].Name() != "primary" {
		t.Errorf("StrategiesByName() order = %s, %s", got[0].Name(), got[1].Name())
	}
	if _, err := StrategiesByName("diagonal"); err == nil {
		t.Error("expected error for unknown strategy")
	}

	r := NewRegistry()
	r.Register(PrimaryStrategy{})
	r.Register(PrimaryStrategy{})
	if len(r.List()) != 1 {
		t.Errorf("re-registering added a duplicate: %v", r.List())
	}
}
