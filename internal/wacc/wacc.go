// Package wacc composes the weighted average cost of capital from a CAPM
// cost of equity and an after-tax cost of debt.
package wacc

import (
	"github.com/wonny/valuecalc/internal/calc"
	"github.com/wonny/valuecalc/internal/units"
)

// Inputs WACC 입력 (비율은 퍼센트 정수 표기, 가치는 억원)
type Inputs struct {
	RiskFreeRate      float64 `json:"riskFreeRate" yaml:"risk_free_rate"`
	Beta              float64 `json:"beta" yaml:"beta"`
	MarketRiskPremium float64 `json:"marketRiskPremium" yaml:"market_risk_premium"`
	CostOfDebt        float64 `json:"costOfDebt" yaml:"cost_of_debt"` // 세전 타인자본비용
	TaxRate           float64 `json:"taxRate" yaml:"tax_rate"`
	EquityValue       float64 `json:"equityValue" yaml:"equity_value"`
	DebtValue         float64 `json:"debtValue" yaml:"debt_value"`
}

// Result WACC 결과
// CostOfEquity, AfterTaxCostOfDebt, WACC: 퍼센트 / EquityWeight + DebtWeight == 1
type Result struct {
	CostOfEquity       float64 `json:"costOfEquity"`
	AfterTaxCostOfDebt float64 `json:"afterTaxCostOfDebt"`
	EquityWeight       float64 `json:"equityWeight"`
	DebtWeight         float64 `json:"debtWeight"`
	WACC               float64 `json:"wacc"`
	TotalValue         float64 `json:"totalValue"`
}

// CostOfEquityCAPM returns the required return on equity.
//
// FORMULA: Ke = rf + β × MRP
func CostOfEquityCAPM(riskFreeRate, beta, marketRiskPremium float64) float64 {
	return riskFreeRate + beta*marketRiskPremium
}

// AfterTaxCostOfDebt applies the interest tax shield.
//
// FORMULA: Kd_at = Kd × (1 - T)
func AfterTaxCostOfDebt(costOfDebt, taxRate float64) float64 {
	return costOfDebt * (1 - units.PercentToDecimal(taxRate))
}

// Compose computes weights and WACC.
//
// FORMULA: WACC = E/V × Ke + D/V × Kd × (1 - T)
func Compose(in Inputs) (*Result, error) {
	fields := []struct {
		name  string
		value float64
	}{
		{"riskFreeRate", in.RiskFreeRate},
		{"beta", in.Beta},
		{"marketRiskPremium", in.MarketRiskPremium},
		{"costOfDebt", in.CostOfDebt},
		{"taxRate", in.TaxRate},
	}
	for _, f := range fields {
		if err := calc.RequireFinite(f.name, f.value); err != nil {
			return nil, err
		}
	}
	if err := calc.RequireNonNegative("equityValue", in.EquityValue); err != nil {
		return nil, err
	}
	if err := calc.RequireNonNegative("debtValue", in.DebtValue); err != nil {
		return nil, err
	}

	total := in.EquityValue + in.DebtValue
	if total <= 0 {
		return nil, calc.Newf(calc.ErrUndefinedCapitalStructure, "equityValue",
			"equity + debt must be > 0, got %v", total)
	}

	ke := CostOfEquityCAPM(in.RiskFreeRate, in.Beta, in.MarketRiskPremium)
	kdAT := AfterTaxCostOfDebt(in.CostOfDebt, in.TaxRate)

	we := in.EquityValue / total
	wd := 1 - we

	return &Result{
		CostOfEquity:       ke,
		AfterTaxCostOfDebt: kdAT,
		EquityWeight:       we,
		DebtWeight:         wd,
		WACC:               we*ke + wd*kdAT,
		TotalValue:         total,
	}, nil
}
