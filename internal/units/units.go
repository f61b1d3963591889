// Package units isolates every unit conversion used by the calculators.
//
// 단위 규약:
//   - 금액(FCF, 순부채, 자기자본가치): 억원 (1억원 = 10^8 원)
//   - 주식 수: 백만주 (1백만주 = 10^6 주)
//   - 주당 가격: 원
//   - 비율 입력: 퍼센트 정수 표기 (3.5 = 3.5%)
//
// ⭐ SSOT: 단위 변환은 이 패키지에서만. 계산식 안에 10^8 같은 상수를 인라인하지 않는다.
package units

import (
	"github.com/shopspring/decimal"

	"github.com/wonny/valuecalc/internal/calc"
)

const (
	eokExponent           = 8 // 1억 = 10^8
	millionSharesExponent = 6 // 1백만 = 10^6
	pricePrecision        = 8
)

// PercentToDecimal converts a whole-number percent (3.5) to a fraction (0.035).
// Call it exactly once per value, at the point of first use.
func PercentToDecimal(pct float64) float64 {
	return pct / 100
}

// DecimalToPercent converts a fraction back to whole-number percent.
func DecimalToPercent(d float64) float64 {
	return d * 100
}

// EokToWon converts 억원 to 원.
func EokToWon(eok float64) (float64, error) {
	if err := calc.RequireFinite("eok", eok); err != nil {
		return 0, err
	}
	won, _ := decimal.NewFromFloat(eok).Shift(eokExponent).Float64()
	return won, nil
}

// MillionSharesToShares converts 백만주 to a share count.
func MillionSharesToShares(millions float64) (float64, error) {
	if err := calc.RequireFinite("sharesOutstanding", millions); err != nil {
		return 0, err
	}
	shares, _ := decimal.NewFromFloat(millions).Shift(millionSharesExponent).Float64()
	return shares, nil
}

// EquityValueToPricePerShare converts an equity value in 억원 and a share
// count in 백만주 into a per-share price in 원:
//
//	price = equity × 10^8 / (shares × 10^6)
func EquityValueToPricePerShare(equityEok, sharesMillion float64) (float64, error) {
	if err := calc.RequireFinite("equityValue", equityEok); err != nil {
		return 0, err
	}
	if err := calc.RequirePositive("sharesOutstanding", sharesMillion, calc.ErrDivisionByZero); err != nil {
		return 0, err
	}

	won := decimal.NewFromFloat(equityEok).Shift(eokExponent)
	shares := decimal.NewFromFloat(sharesMillion).Shift(millionSharesExponent)

	price, _ := won.DivRound(shares, pricePrecision).Float64()
	return price, nil
}
