// Package ddm values equity from its dividend stream.
package ddm

import (
	"math"

	"github.com/wonny/valuecalc/internal/calc"
	"github.com/wonny/valuecalc/internal/units"
)

// GordonInputs 항상 성장 배당할인모형 입력
type GordonInputs struct {
	CurrentDividend float64 `json:"currentDividend" yaml:"current_dividend"` // D0 (원/주)
	CostOfEquity    float64 `json:"costOfEquity" yaml:"cost_of_equity"`       // Ke (%)
	GrowthRate      float64 `json:"growthRate" yaml:"growth_rate"`            // g (%)
}

// TwoStageInputs 2단계 배당할인모형 입력
type TwoStageInputs struct {
	CurrentDividend    float64 `json:"currentDividend" yaml:"current_dividend"`
	CostOfEquity       float64 `json:"costOfEquity" yaml:"cost_of_equity"`
	HighGrowthRate     float64 `json:"highGrowthRate" yaml:"high_growth_rate"`         // g1 (%)
	HighGrowthYears    int     `json:"highGrowthYears" yaml:"high_growth_years"`       // N
	TerminalGrowthRate float64 `json:"terminalGrowthRate" yaml:"terminal_growth_rate"` // g2 (%)
}

// DividendRow 고성장 구간 연도별 배당
type DividendRow struct {
	Year     int     `json:"year"`
	Dividend float64 `json:"dividend"`
	PV       float64 `json:"pv"`
}

// Result DDM 결과 (Gordon은 Dividends가 비어 있음)
type Result struct {
	NextDividend    float64       `json:"nextDividend"` // D1
	Dividends       []DividendRow `json:"dividends,omitempty"`
	PVDividends     float64       `json:"pvDividends"`
	TerminalValue   float64       `json:"terminalValue"`
	PVTerminalValue float64       `json:"pvTerminalValue"`
	IntrinsicValue  float64       `json:"intrinsicValue"`
}

// MaxHighGrowthYears 고성장 기간 상한 (년)
const MaxHighGrowthYears = 100

func checkDividend(d0 float64) error {
	if err := calc.RequireFinite("currentDividend", d0); err != nil {
		return err
	}
	return calc.RequireNonNegative("currentDividend", d0)
}

// Gordon applies the constant-growth model.
//
// FORMULA: D1 = D0 × (1 + g), V = D1 / (Ke - g)
func Gordon(in GordonInputs) (*Result, error) {
	if err := checkDividend(in.CurrentDividend); err != nil {
		return nil, err
	}
	if err := calc.RequireSpread("costOfEquity", in.CostOfEquity, "growthRate", in.GrowthRate); err != nil {
		return nil, err
	}

	ke := units.PercentToDecimal(in.CostOfEquity)
	if err := calc.RequireDiscountBase("costOfEquity", ke); err != nil {
		return nil, err
	}
	g := units.PercentToDecimal(in.GrowthRate)

	d1 := in.CurrentDividend * (1 + g)
	value, err := calc.SafeDiv("costOfEquity", d1, ke-g)
	if err != nil {
		return nil, err
	}

	return &Result{
		NextDividend:    d1,
		TerminalValue:   value,
		PVTerminalValue: value,
		IntrinsicValue:  value,
	}, nil
}

// TwoStage grows dividends at g1 for N years, then values the rest as a
// Gordon perpetuity at g2 discounted back N years.
func TwoStage(in TwoStageInputs) (*Result, error) {
	if err := checkDividend(in.CurrentDividend); err != nil {
		return nil, err
	}
	if in.HighGrowthYears < 1 {
		return nil, calc.Newf(calc.ErrInvalidInput, "highGrowthYears", "must be >= 1, got %d", in.HighGrowthYears)
	}
	if in.HighGrowthYears > MaxHighGrowthYears {
		return nil, calc.Newf(calc.ErrInvalidInput, "highGrowthYears", "must be <= %d, got %d", MaxHighGrowthYears, in.HighGrowthYears)
	}
	if err := calc.RequireFinite("highGrowthRate", in.HighGrowthRate); err != nil {
		return nil, err
	}
	if err := calc.RequireSpread("costOfEquity", in.CostOfEquity, "terminalGrowthRate", in.TerminalGrowthRate); err != nil {
		return nil, err
	}

	ke := units.PercentToDecimal(in.CostOfEquity)
	if err := calc.RequireDiscountBase("costOfEquity", ke); err != nil {
		return nil, err
	}
	g1 := units.PercentToDecimal(in.HighGrowthRate)
	g2 := units.PercentToDecimal(in.TerminalGrowthRate)

	rows := make([]DividendRow, in.HighGrowthYears)
	div := in.CurrentDividend
	var pvSum float64
	for year := 1; year <= in.HighGrowthYears; year++ {
		div *= 1 + g1
		pv := div / math.Pow(1+ke, float64(year))
		rows[year-1] = DividendRow{Year: year, Dividend: div, PV: pv}
		pvSum += pv
	}

	tv, err := calc.SafeDiv("costOfEquity", div*(1+g2), ke-g2)
	if err != nil {
		return nil, err
	}
	pvTV := tv / math.Pow(1+ke, float64(in.HighGrowthYears))

	return &Result{
		NextDividend:    rows[0].Dividend,
		Dividends:       rows,
		PVDividends:     pvSum,
		TerminalValue:   tv,
		PVTerminalValue: pvTV,
		IntrinsicValue:  pvSum + pvTV,
	}, nil
}
