package grid

import (
	"github.com/wonny/valuecalc/internal/bond"
	"github.com/wonny/valuecalc/internal/dcf"
	"github.com/wonny/valuecalc/internal/ddm"
)

// Axis names used by the ready-made builders.
const (
	AxisWACC         = "wacc"
	AxisGrowth       = "terminalGrowth"
	AxisCostOfEquity = "costOfEquity"
	AxisDDMGrowth    = "growthRate"
	AxisYTM          = "ytm"
	AxisMaturity     = "maturity"
)

// DCFPrice varies WACC (rows) and terminal growth (cols) and reports the
// intrinsic price per share.
func DCFPrice(base dcf.Inputs, wacc, growth Axis) (*Grid, error) {
	snapshot := base.Clone()

	return Build(wacc, growth, func(w, g float64) (float64, error) {
		in := snapshot.Clone()
		in.WACC = w
		in.TerminalGrowth = g

		res, err := dcf.Calculate(in)
		if err != nil {
			return 0, err
		}
		return res.IntrinsicPrice, nil
	})
}

// DDMValue varies Ke (rows) and g (cols) for the Gordon model.
func DDMValue(base ddm.GordonInputs, ke, growth Axis) (*Grid, error) {
	snapshot := base

	return Build(ke, growth, func(k, g float64) (float64, error) {
		in := snapshot
		in.CostOfEquity = k
		in.GrowthRate = g

		res, err := ddm.Gordon(in)
		if err != nil {
			return 0, err
		}
		return res.IntrinsicValue, nil
	})
}

// BondPrice varies YTM (rows) and maturity (cols).
func BondPrice(base bond.Inputs, ytm, maturity Axis) (*Grid, error) {
	snapshot := base

	return Build(ytm, maturity, func(y, m float64) (float64, error) {
		in := snapshot
		in.MarketRate = y
		in.Maturity = m

		s, err := bond.Price(in)
		if err != nil {
			return 0, err
		}
		return s.Price, nil
	})
}
