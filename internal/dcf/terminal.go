package dcf

import (
	"math"

	"github.com/wonny/valuecalc/internal/calc"
	"github.com/wonny/valuecalc/internal/units"
)

// EstimateTerminalValue applies the Gordon growth model to the last forecast
// year and discounts it back over the forecast horizon.
//
// FORMULA: TV = FCF_N × (1 + g) / (wacc - g)
//
//	PV(TV) = TV / (1 + wacc)^N
//
// wacc, growth: 퍼센트 정수 표기
func EstimateTerminalValue(lastFCF, wacc, growth float64, horizon int) (TerminalValue, error) {
	if err := calc.RequireFinite("fcf", lastFCF); err != nil {
		return TerminalValue{}, err
	}
	if horizon <= 0 {
		return TerminalValue{}, calc.Newf(calc.ErrEmptyForecast, "fcf", "horizon must be > 0, got %d", horizon)
	}
	if err := calc.RequireSpread("wacc", wacc, "terminalGrowth", growth); err != nil {
		return TerminalValue{}, err
	}

	r := units.PercentToDecimal(wacc)
	g := units.PercentToDecimal(growth)
	if err := calc.RequireDiscountBase("wacc", r); err != nil {
		return TerminalValue{}, err
	}

	tv, err := calc.SafeDiv("terminalValue", lastFCF*(1+g), r-g)
	if err != nil {
		return TerminalValue{}, err
	}

	return TerminalValue{
		Value:        tv,
		PresentValue: tv / math.Pow(1+r, float64(horizon)),
		Horizon:      horizon,
	}, nil
}
