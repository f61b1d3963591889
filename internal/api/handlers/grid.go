package handlers

import (
	"github.com/wonny/valuecalc/internal/bond"
	"github.com/wonny/valuecalc/internal/calc"
	"github.com/wonny/valuecalc/internal/dcf"
	"github.com/wonny/valuecalc/internal/ddm"
	"github.com/wonny/valuecalc/internal/grid"
)

// GridRequest 기준 입력 + 두 축 값
type GridRequest[T any] struct {
	Base T         `json:"base"`
	Rows []float64 `json:"rows"`
	Cols []float64 `json:"cols"`
}

// GridResponse 기준 결과와 그리드는 같은 입력 스냅샷에서 계산
type GridResponse struct {
	Base          interface{}    `json:"base,omitempty"`
	BaseCondition *ConditionBody `json:"baseCondition,omitempty"`
	Grid          *grid.Grid     `json:"grid"`
}

// gridResponse runs the base computation and folds a condition into the
// response body instead of failing the whole request.
func gridResponse(g *grid.Grid, base interface{}, baseErr error) (interface{}, error) {
	resp := &GridResponse{Grid: g}
	switch {
	case baseErr == nil:
		resp.Base = base
	case calc.IsCondition(baseErr):
		resp.BaseCondition = conditionBody(baseErr)
	default:
		return nil, baseErr
	}
	return resp, nil
}

func dcfGrid(req GridRequest[dcf.Inputs]) (interface{}, error) {
	g, err := grid.DCFPrice(req.Base,
		grid.Axis{Name: grid.AxisWACC, Values: req.Rows},
		grid.Axis{Name: grid.AxisGrowth, Values: req.Cols})
	if err != nil {
		return nil, err
	}
	base, baseErr := dcf.Calculate(req.Base.Clone())
	return gridResponse(g, base, baseErr)
}

func ddmGrid(req GridRequest[ddm.GordonInputs]) (interface{}, error) {
	g, err := grid.DDMValue(req.Base,
		grid.Axis{Name: grid.AxisCostOfEquity, Values: req.Rows},
		grid.Axis{Name: grid.AxisDDMGrowth, Values: req.Cols})
	if err != nil {
		return nil, err
	}
	base, baseErr := ddm.Gordon(req.Base)
	return gridResponse(g, base, baseErr)
}

func bondGrid(req GridRequest[bond.Inputs]) (interface{}, error) {
	g, err := grid.BondPrice(req.Base,
		grid.Axis{Name: grid.AxisYTM, Values: req.Rows},
		grid.Axis{Name: grid.AxisMaturity, Values: req.Cols})
	if err != nil {
		return nil, err
	}
	base, baseErr := bond.Analyze(req.Base)
	return gridResponse(g, base, baseErr)
}
