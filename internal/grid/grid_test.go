package grid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/valuecalc/internal/bond"
	"github.com/wonny/valuecalc/internal/calc"
	"github.com/wonny/valuecalc/internal/dcf"
	"github.com/wonny/valuecalc/internal/ddm"
)

func baseDCF() dcf.Inputs {
	return dcf.Inputs{
		FCF:               []float64{100, 100, 100, 100, 100},
		WACC:              10,
		TerminalGrowth:    2,
		SharesOutstanding: 10,
	}
}

func TestSteps(t *testing.T) {
	a := Steps(AxisWACC, 10, 1, 2)
	assert.Equal(t, AxisWACC, a.Name)
	assert.Equal(t, []float64{8, 9, 10, 11, 12}, a.Values)
}

func TestBuild_ConditionBecomesNotApplicable(t *testing.T) {
	rows := Axis{Name: "r", Values: []float64{1, 2}}
	cols := Axis{Name: "c", Values: []float64{1, 2}}

	g, err := Build(rows, cols, func(r, c float64) (float64, error) {
		if r <= c {
			return 0, calc.Newf(calc.ErrNonConvergentTerminalValue, "r", "r <= c")
		}
		return r - c, nil
	})
	require.NoError(t, err)

	assert.False(t, g.At(0, 0).Applicable)
	assert.Nil(t, g.At(0, 0).Value)
	assert.Equal(t, "NonConvergentTerminalValue", g.At(0, 0).Reason)

	require.True(t, g.At(1, 0).Applicable)
	assert.Equal(t, 1.0, *g.At(1, 0).Value)
	assert.Empty(t, g.At(1, 0).Reason)

	assert.Equal(t, 3, g.NotApplicable())
}

func TestBuild_DefectAborts(t *testing.T) {
	boom := errors.New("boom")
	g, err := Build(Axis{Values: []float64{1}}, Axis{Values: []float64{1}}, func(float64, float64) (float64, error) {
		return 0, boom
	})
	assert.Nil(t, g)
	assert.ErrorIs(t, err, boom)
}

func TestBuild_EmptyAxis(t *testing.T) {
	_, err := Build(Axis{Name: "r"}, Axis{Values: []float64{1}}, nil)
	assert.ErrorIs(t, err, calc.ErrInvalidInput)
	assert.Equal(t, "rows", calc.FieldOf(err))
}

func TestBuild_AxisTooLong(t *testing.T) {
	long := Steps("c", 0, 0.1, MaxAxisValues/2+1)
	require.Len(t, long.Values, MaxAxisValues+2)

	called := false
	g, err := Build(Axis{Name: "r", Values: []float64{1}}, long, func(float64, float64) (float64, error) {
		called = true
		return 0, nil
	})
	assert.Nil(t, g)
	assert.ErrorIs(t, err, calc.ErrInvalidInput)
	assert.Equal(t, "cols", calc.FieldOf(err))
	assert.False(t, called)
}

func TestBuild_AxisAtLimit(t *testing.T) {
	full := Steps("r", 0, 1, MaxAxisValues/2)
	require.Len(t, full.Values, MaxAxisValues)

	g, err := Build(full, Axis{Name: "c", Values: []float64{1}}, func(r, c float64) (float64, error) {
		return r + c, nil
	})
	require.NoError(t, err)
	assert.Len(t, g.Cells, MaxAxisValues)
}

func TestDCFPrice(t *testing.T) {
	base := baseDCF()
	wacc := Axis{Name: AxisWACC, Values: []float64{2, 8, 10, 12}}
	growth := Axis{Name: AxisGrowth, Values: []float64{1, 2, 3}}

	g, err := DCFPrice(base, wacc, growth)
	require.NoError(t, err)
	require.Len(t, g.Cells, 4)

	// wacc 2 <= g 2, 3 → N/A
	assert.True(t, g.At(0, 0).Applicable)
	assert.False(t, g.At(0, 1).Applicable)
	assert.False(t, g.At(0, 2).Applicable)
	assert.Equal(t, "NonConvergentTerminalValue", g.At(0, 2).Reason)

	// 기준 결과와 같은 스냅샷의 셀은 정확히 일치
	res, err := dcf.Calculate(base)
	require.NoError(t, err)
	cell := g.At(2, 1)
	require.True(t, cell.Applicable)
	assert.Equal(t, res.IntrinsicPrice, *cell.Value)

	// 같은 열에서 WACC 증가 → 가격 하락
	for i := 2; i < len(wacc.Values); i++ {
		assert.Less(t, *g.At(i, 1).Value, *g.At(i-1, 1).Value)
	}
}

func TestDCFPrice_DoesNotMutateBase(t *testing.T) {
	base := baseDCF()
	_, err := DCFPrice(base, Steps(AxisWACC, 10, 1, 1), Steps(AxisGrowth, 2, 0.5, 1))
	require.NoError(t, err)

	assert.Equal(t, 10.0, base.WACC)
	assert.Equal(t, 2.0, base.TerminalGrowth)
	assert.Equal(t, []float64{100, 100, 100, 100, 100}, base.FCF)
}

func TestDDMValue(t *testing.T) {
	base := ddm.GordonInputs{CurrentDividend: 1000, CostOfEquity: 8, GrowthRate: 3}
	g, err := DDMValue(base, Axis{Name: AxisCostOfEquity, Values: []float64{3, 8}}, Axis{Name: AxisDDMGrowth, Values: []float64{3}})
	require.NoError(t, err)

	assert.False(t, g.At(0, 0).Applicable)
	require.True(t, g.At(1, 0).Applicable)
	assert.InDelta(t, 20600.0, *g.At(1, 0).Value, 1e-6)
}

func TestBondPrice(t *testing.T) {
	base := bond.Inputs{FaceValue: 10000, CouponRate: 3, MarketRate: 4, Maturity: 5, Frequency: 2}
	g, err := BondPrice(base,
		Axis{Name: AxisYTM, Values: []float64{3, 4}},
		Axis{Name: AxisMaturity, Values: []float64{0, 5}})
	require.NoError(t, err)

	// 만기 0 → InvalidBondTerms
	assert.False(t, g.At(0, 0).Applicable)
	assert.Equal(t, "InvalidBondTerms", g.At(0, 0).Reason)

	// 표면금리 == YTM → 액면가
	require.True(t, g.At(0, 1).Applicable)
	assert.InEpsilon(t, 10000.0, *g.At(0, 1).Value, 1e-6)

	assert.InDelta(t, 9550.87, *g.At(1, 1).Value, 0.01)
}
