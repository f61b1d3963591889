package dcf

import (
	"fmt"
	"math"

	"github.com/wonny/valuecalc/internal/calc"
	"github.com/wonny/valuecalc/internal/units"
)

// ProjectCashFlows discounts each forecast year at the WACC.
//
// FORMULA: PV_t = FCF_t / (1 + wacc)^t, t = 1..N
//
// 잔존가치가 정의되지 않는 경우(wacc <= g)에도 연도별 PV는 계산 가능하므로
// Calculate와 분리되어 있다.
func ProjectCashFlows(in Inputs) ([]Projection, error) {
	if len(in.FCF) == 0 {
		return nil, calc.Newf(calc.ErrEmptyForecast, "fcf", "at least one forecast year is required")
	}
	for i, fcf := range in.FCF {
		if err := calc.RequireFinite(fmt.Sprintf("fcf[%d]", i), fcf); err != nil {
			return nil, err
		}
	}

	rate := units.PercentToDecimal(in.WACC)
	if err := calc.RequireDiscountBase("wacc", rate); err != nil {
		return nil, err
	}

	rows := make([]Projection, len(in.FCF))
	for i, fcf := range in.FCF {
		year := i + 1
		compound := math.Pow(1+rate, float64(year))
		rows[i] = Projection{
			Year:           year,
			FCF:            fcf,
			DiscountFactor: 1 / compound,
			PV:             fcf / compound,
		}
	}

	return rows, nil
}
