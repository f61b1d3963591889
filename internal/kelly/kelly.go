// Package kelly sizes a position with the Kelly criterion.
package kelly

import (
	"github.com/wonny/valuecalc/internal/calc"
	"github.com/wonny/valuecalc/internal/units"
)

// DefaultFraction Half-Kelly
const DefaultFraction = 0.5

// Inputs Kelly 입력
type Inputs struct {
	WinProbability float64 `json:"winProbability" yaml:"win_probability"` // 승률 (%)
	PayoffRatio    float64 `json:"payoffRatio" yaml:"payoff_ratio"`       // 평균 이익 / 평균 손실
	Fraction       float64 `json:"fraction,omitempty" yaml:"fraction"`    // (0, 1], 0이면 DefaultFraction
}

// Result Kelly 결과 (비중은 퍼센트)
type Result struct {
	FullKelly       float64 `json:"fullKelly"`       // f* 원값 (음수 가능)
	FractionalKelly float64 `json:"fractionalKelly"` // 권장 비중, 0 이상
	Fraction        float64 `json:"fraction"`
	HasEdge         bool    `json:"hasEdge"`
}

// Size computes the Kelly fraction.
//
// FORMULA: f* = p - (1 - p) / b
func Size(in Inputs) (*Result, error) {
	if err := calc.RequireFinite("winProbability", in.WinProbability); err != nil {
		return nil, err
	}
	if in.WinProbability < 0 || in.WinProbability > 100 {
		return nil, calc.Newf(calc.ErrInvalidInput, "winProbability", "must be within [0, 100], got %v", in.WinProbability)
	}
	if err := calc.RequirePositive("payoffRatio", in.PayoffRatio, calc.ErrDivisionByZero); err != nil {
		return nil, err
	}

	if err := calc.RequireFinite("fraction", in.Fraction); err != nil {
		return nil, err
	}
	fraction := in.Fraction
	if fraction == 0 {
		fraction = DefaultFraction
	}
	if fraction < 0 || fraction > 1 {
		return nil, calc.Newf(calc.ErrInvalidInput, "fraction", "must be within (0, 1], got %v", in.Fraction)
	}

	p := units.PercentToDecimal(in.WinProbability)
	full := p - (1-p)/in.PayoffRatio

	recommended := full * fraction
	if recommended < 0 {
		recommended = 0
	}

	return &Result{
		FullKelly:       units.DecimalToPercent(full),
		FractionalKelly: units.DecimalToPercent(recommended),
		Fraction:        fraction,
		HasEdge:         full > 0,
	}, nil
}
