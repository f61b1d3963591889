package dcf

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/valuecalc/internal/calc"
)

func flatScenario() Inputs {
	return Inputs{
		FCF:               []float64{100, 100, 100, 100, 100}, // 억원
		WACC:              10,
		TerminalGrowth:    2,
		SharesOutstanding: 10, // 백만주
		NetDebt:           0,
	}
}

func TestProjectCashFlows(t *testing.T) {
	rows, err := ProjectCashFlows(flatScenario())
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, 1, rows[0].Year)
	assert.InDelta(t, 90.909091, rows[0].PV, 1e-6)
	assert.InDelta(t, 62.092132, rows[4].PV, 1e-6)
	assert.InDelta(t, 1/1.61051, rows[4].DiscountFactor, 1e-12)

	var sum float64
	for _, r := range rows {
		sum += r.PV
	}
	assert.InDelta(t, 379.08, sum, 0.005)
}

func TestProjectCashFlows_Empty(t *testing.T) {
	_, err := ProjectCashFlows(Inputs{WACC: 10})
	assert.ErrorIs(t, err, calc.ErrEmptyForecast)
}

func TestProjectCashFlows_RateAtMinusHundred(t *testing.T) {
	in := flatScenario()
	in.WACC = -100
	_, err := ProjectCashFlows(in)
	assert.ErrorIs(t, err, calc.ErrDivisionByZero)
}

func TestEstimateTerminalValue(t *testing.T) {
	tv, err := EstimateTerminalValue(100, 10, 2, 5)
	require.NoError(t, err)

	assert.InDelta(t, 1275.0, tv.Value, 1e-9)
	assert.InDelta(t, 791.6747, tv.PresentValue, 1e-4)
	assert.Equal(t, 5, tv.Horizon)
}

func TestEstimateTerminalValue_NonConvergent(t *testing.T) {
	tests := []struct {
		name   string
		wacc   float64
		growth float64
	}{
		{"growth above wacc", 2, 3},
		{"growth equals wacc", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EstimateTerminalValue(100, tt.wacc, tt.growth, 5)
			require.Error(t, err)
			assert.ErrorIs(t, err, calc.ErrNonConvergentTerminalValue)
		})
	}
}

// Scenario A: flat 100억원 FCF, WACC 10%, g 2%, 10백만주, 순부채 0
// Gordon 공식 그대로 적용한 값 (TV = 100 × 1.02 / 0.08 = 1275억원)
func TestCalculate_FlatFiveYearScenario(t *testing.T) {
	res, err := Calculate(flatScenario())
	require.NoError(t, err)

	assert.InDelta(t, 379.08, res.SumPVFCF(), 0.005)
	assert.InDelta(t, 1275.0, res.TerminalValue, 1e-9)
	assert.InDelta(t, 791.6747, res.PVTerminalValue, 1e-4)
	assert.InDelta(t, 1170.75, res.EnterpriseValue, 0.005)
	assert.InDelta(t, 1170.75, res.EquityValue, 0.005)
	assert.InDelta(t, 11707.53, res.IntrinsicPrice, 0.01)
	require.NotNil(t, res.TVPercentage)
	assert.InDelta(t, 67.62, *res.TVPercentage, 0.01)
}

// Scenario C: wacc 2%, g 3% → 잔존가치 미정의, 결과 없음
func TestCalculate_InfeasibleTerminalValue(t *testing.T) {
	in := flatScenario()
	in.WACC = 2
	in.TerminalGrowth = 3

	res, err := Calculate(in)
	assert.Nil(t, res)
	require.Error(t, err)
	assert.ErrorIs(t, err, calc.ErrNonConvergentTerminalValue)
	assert.True(t, calc.IsCondition(err))

	// 연도별 PV는 여전히 계산 가능
	rows, err := ProjectCashFlows(in)
	require.NoError(t, err)
	assert.Len(t, rows, 5)
}

func TestCalculate_BridgeIdentity(t *testing.T) {
	cases := []Inputs{
		flatScenario(),
		{FCF: []float64{120, 135.5, 150.25, 162}, WACC: 8.7, TerminalGrowth: 1.5, SharesOutstanding: 5.96, NetDebt: 312.4},
		{FCF: []float64{-40, 10, 80, 140, 190, 230}, WACC: 12.3, TerminalGrowth: 3.1, SharesOutstanding: 0.75, NetDebt: -85.2},
		{FCF: []float64{1e4}, WACC: 6, TerminalGrowth: -1, SharesOutstanding: 597, NetDebt: 1e5},
	}

	for _, in := range cases {
		res, err := Calculate(in)
		require.NoError(t, err)

		var sum float64
		for _, pv := range res.PVFCF {
			sum += pv
		}
		assert.Equal(t, sum+res.PVTerminalValue, res.EnterpriseValue)
		assert.Equal(t, res.EnterpriseValue-in.NetDebt, res.EquityValue)
	}
}

func TestCalculate_PriceDecreasesWithWACC(t *testing.T) {
	in := flatScenario()
	in.NetDebt = 150

	prev := 0.0
	for i, wacc := range []float64{4, 5, 6, 7.5, 9, 10, 12, 15, 20} {
		in.WACC = wacc
		res, err := Calculate(in)
		require.NoError(t, err)
		if i > 0 {
			assert.Less(t, res.IntrinsicPrice, prev, "wacc=%v", wacc)
		}
		prev = res.IntrinsicPrice
	}
}

func TestCalculate_NetDebtReducesEquity(t *testing.T) {
	base, err := Calculate(flatScenario())
	require.NoError(t, err)

	in := flatScenario()
	in.NetDebt = 200
	levered, err := Calculate(in)
	require.NoError(t, err)

	assert.Equal(t, base.EnterpriseValue, levered.EnterpriseValue)
	assert.InDelta(t, base.EquityValue-200, levered.EquityValue, 1e-9)
	// 200억원 / 10백만주 = 2,000원
	assert.InDelta(t, base.IntrinsicPrice-2000, levered.IntrinsicPrice, 1e-6)
}

func TestCalculate_ZeroShares(t *testing.T) {
	in := flatScenario()
	in.SharesOutstanding = 0

	_, err := Calculate(in)
	assert.ErrorIs(t, err, calc.ErrDivisionByZero)
	assert.Equal(t, "sharesOutstanding", calc.FieldOf(err))
}

func TestCalculate_ZeroEnterpriseValue(t *testing.T) {
	in := flatScenario()
	in.FCF = []float64{0, 0, 0}

	in.NetDebt = -50

	// EV == 0 이면 잔존가치 비중만 N/A, 나머지 결과는 유지
	res, err := Calculate(in)
	require.NoError(t, err)
	assert.Zero(t, res.EnterpriseValue)
	assert.InDelta(t, 50.0, res.EquityValue, 1e-9)
	assert.Greater(t, res.IntrinsicPrice, 0.0)
	assert.Nil(t, res.TVPercentage)

	raw, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"tvPercentage":null`)
}

func TestBridgeToEquity_ZeroEnterpriseValue(t *testing.T) {
	b, err := BridgeToEquity(0, 0, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, b.IntrinsicPrice)
	assert.Nil(t, b.TVPercentage)
}

func TestInputs_Clone(t *testing.T) {
	in := flatScenario()
	cp := in.Clone()
	cp.FCF[0] = 999

	assert.Equal(t, 100.0, in.FCF[0])
}
