// Package grid recomputes a single scalar output across two varying inputs.
//
// 모든 셀은 같은 기준 스냅샷의 복사본에서 독립적으로 계산한다.
// 조건 오류(rate <= growth 등)가 난 셀은 값 대신 N/A로 표시한다.
package grid

import (
	"fmt"
	"math"

	"github.com/wonny/valuecalc/internal/calc"
)

// Axis 그리드 축 (행 또는 열)
type Axis struct {
	Name   string    `json:"name" yaml:"name"`
	Values []float64 `json:"values" yaml:"values"`
}

// Steps builds an ascending axis center-each×step … center+each×step.
func Steps(name string, center, step float64, each int) Axis {
	values := make([]float64, 0, 2*each+1)
	for i := -each; i <= each; i++ {
		values = append(values, center+float64(i)*step)
	}
	return Axis{Name: name, Values: values}
}

// Cell 그리드 셀. Applicable == false이면 Value는 nil
type Cell struct {
	Row        float64  `json:"row"`
	Col        float64  `json:"col"`
	Value      *float64 `json:"value"`
	Applicable bool     `json:"applicable"`
	Reason     string   `json:"reason,omitempty"` // 조건 이름 (예: NonConvergentTerminalValue)
}

// Grid 행 × 열 결과
type Grid struct {
	Rows  Axis     `json:"rows"`
	Cols  Axis     `json:"cols"`
	Cells [][]Cell `json:"cells"`
}

// At returns the cell at (i, j).
func (g *Grid) At(i, j int) Cell {
	return g.Cells[i][j]
}

// NotApplicable counts N/A cells.
func (g *Grid) NotApplicable() int {
	n := 0
	for _, row := range g.Cells {
		for _, c := range row {
			if !c.Applicable {
				n++
			}
		}
	}
	return n
}

// MaxAxisValues 축당 값 개수 상한
const MaxAxisValues = 101

// EvalFunc computes one cell from its row and column parameters.
type EvalFunc func(row, col float64) (float64, error)

func validateAxis(field string, a Axis) error {
	if len(a.Values) == 0 {
		return calc.Newf(calc.ErrInvalidInput, field, "axis %q has no values", a.Name)
	}
	if len(a.Values) > MaxAxisValues {
		return calc.Newf(calc.ErrInvalidInput, field, "axis %q has %d values, max %d", a.Name, len(a.Values), MaxAxisValues)
	}
	for _, v := range a.Values {
		if err := calc.RequireFinite(field, v); err != nil {
			return err
		}
	}
	return nil
}

// Build evaluates every (row, col) pair. Condition errors become N/A cells;
// any other error aborts the build.
func Build(rows, cols Axis, eval EvalFunc) (*Grid, error) {
	if err := validateAxis("rows", rows); err != nil {
		return nil, err
	}
	if err := validateAxis("cols", cols); err != nil {
		return nil, err
	}

	cells := make([][]Cell, len(rows.Values))
	for i, r := range rows.Values {
		cells[i] = make([]Cell, len(cols.Values))
		for j, c := range cols.Values {
			cell := Cell{Row: r, Col: c}

			v, err := eval(r, c)
			switch {
			case err != nil && calc.IsCondition(err):
				cell.Reason = calc.ConditionName(err)
			case err != nil:
				return nil, fmt.Errorf("grid cell (%s=%v, %s=%v): %w", rows.Name, r, cols.Name, c, err)
			case math.IsNaN(v) || math.IsInf(v, 0):
				cell.Reason = calc.ConditionName(calc.ErrDivisionByZero)
			default:
				value := v
				cell.Value = &value
				cell.Applicable = true
			}

			cells[i][j] = cell
		}
	}

	return &Grid{Rows: rows, Cols: cols, Cells: cells}, nil
}
