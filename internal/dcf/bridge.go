// Package dcf implements the multi-year discounted-cash-flow valuation:
// per-year projection, Gordon terminal value, and the enterprise → equity →
// per-share bridge.
package dcf

import (
	"github.com/wonny/valuecalc/internal/calc"
	"github.com/wonny/valuecalc/internal/units"
)

// BridgeToEquity walks enterprise value down to a per-share price.
//
// FORMULA: EV = Σ PV(FCF) + PV(TV)
//
//	Equity = EV - NetDebt
//	Price  = Equity(억원) → 원/주 (units.EquityValueToPricePerShare)
//	TV%    = PV(TV) / EV, EV == 0 이면 nil (N/A)
func BridgeToEquity(sumPVFCF, pvTerminal, netDebt, sharesOutstanding float64) (Bridge, error) {
	if err := calc.RequireFinite("netDebt", netDebt); err != nil {
		return Bridge{}, err
	}

	ev := sumPVFCF + pvTerminal
	equity := ev - netDebt

	price, err := units.EquityValueToPricePerShare(equity, sharesOutstanding)
	if err != nil {
		return Bridge{}, err
	}

	bridge := Bridge{
		EnterpriseValue: ev,
		EquityValue:     equity,
		IntrinsicPrice:  price,
	}
	if tvShare, err := calc.SafeDiv("enterpriseValue", pvTerminal, ev); err == nil {
		pct := units.DecimalToPercent(tvShare)
		bridge.TVPercentage = &pct
	}
	return bridge, nil
}

// Calculate runs projector, terminal value and bridge on one input snapshot.
// wacc <= terminalGrowth returns ErrNonConvergentTerminalValue and no result.
func Calculate(in Inputs) (*Result, error) {
	rows, err := ProjectCashFlows(in)
	if err != nil {
		return nil, err
	}

	tv, err := EstimateTerminalValue(in.FCF[len(in.FCF)-1], in.WACC, in.TerminalGrowth, len(in.FCF))
	if err != nil {
		return nil, err
	}

	pv := make([]float64, len(rows))
	var sum float64
	for i, row := range rows {
		pv[i] = row.PV
		sum += row.PV
	}

	bridge, err := BridgeToEquity(sum, tv.PresentValue, in.NetDebt, in.SharesOutstanding)
	if err != nil {
		return nil, err
	}

	return &Result{
		PVFCF:           pv,
		TerminalValue:   tv.Value,
		PVTerminalValue: tv.PresentValue,
		EnterpriseValue: bridge.EnterpriseValue,
		EquityValue:     bridge.EquityValue,
		IntrinsicPrice:  bridge.IntrinsicPrice,
		TVPercentage:    bridge.TVPercentage,
	}, nil
}
