package bond

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/valuecalc/internal/calc"
)

// 액면 10,000 / 표면 3% / 시장 4% / 5년 / 반기
func discountBond() Inputs {
	return Inputs{FaceValue: 10000, CouponRate: 3, MarketRate: 4, Maturity: 5, Frequency: 2}
}

func TestPrice_Schedule(t *testing.T) {
	s, err := Price(discountBond())
	require.NoError(t, err)

	assert.Equal(t, 10, s.TotalPeriods)
	assert.Len(t, s.Rows, 10)
	assert.InDelta(t, 150.0, s.CouponPerPeriod, 1e-9)
	assert.InDelta(t, 0.02, s.RatePerPeriod, 1e-15)

	var sum float64
	for i, row := range s.Rows {
		assert.Equal(t, i+1, row.Period)
		assert.InDelta(t, float64(i+1)/2, row.Time, 1e-15)
		if i < 9 {
			assert.Equal(t, 0.0, row.Principal)
		}
		sum += row.PresentValue
	}
	assert.Equal(t, 10000.0, s.Rows[9].Principal)
	assert.InDelta(t, 10150.0, s.Rows[9].CashFlow, 1e-9)
	assert.InDelta(t, s.Price, sum, 1e-9)
}

func TestAnalyze_DiscountBond(t *testing.T) {
	res, err := Analyze(discountBond())
	require.NoError(t, err)

	assert.InDelta(t, 9550.87, res.Price, 0.01)
	assert.InDelta(t, 4.67, res.MacaulayDuration, 0.01)
	assert.InDelta(t, 4.58, res.ModifiedDuration, 0.01)
	assert.Equal(t, ClassDiscount, res.Classification)
	assert.InDelta(t, res.MacaulayDuration/1.02, res.ModifiedDuration, 1e-12)
}

func TestAnalyze_ParInvariant(t *testing.T) {
	cases := []Inputs{
		{FaceValue: 10000, CouponRate: 4, MarketRate: 4, Maturity: 5, Frequency: 2},
		{FaceValue: 1000, CouponRate: 7.5, MarketRate: 7.5, Maturity: 30, Frequency: 1},
		{FaceValue: 100, CouponRate: 2.25, MarketRate: 2.25, Maturity: 3, Frequency: 4},
		{FaceValue: 5000, CouponRate: 0.5, MarketRate: 0.5, Maturity: 10, Frequency: 2},
	}

	for _, in := range cases {
		res, err := Analyze(in)
		require.NoError(t, err)
		assert.InEpsilon(t, in.FaceValue, res.Price, 1e-6, "%+v", in)
		assert.Equal(t, ClassPar, res.Classification)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		coupon float64
		market float64
		want   Classification
	}{
		{"market above coupon", 3, 4, ClassDiscount},
		{"market below coupon", 5, 4, ClassPremium},
		{"equal", 4, 4, ClassPar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := discountBond()
			in.CouponRate = tt.coupon
			in.MarketRate = tt.market
			assert.Equal(t, tt.want, Classify(in))

			res, err := Analyze(in)
			require.NoError(t, err)
			switch tt.want {
			case ClassDiscount:
				assert.Less(t, res.Price, in.FaceValue)
			case ClassPremium:
				assert.Greater(t, res.Price, in.FaceValue)
			}
		})
	}
}

func TestPrice_InvalidTerms(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Inputs)
		want   error
		field  string
	}{
		{"zero face", func(in *Inputs) { in.FaceValue = 0 }, calc.ErrInvalidBondTerms, "faceValue"},
		{"negative maturity", func(in *Inputs) { in.Maturity = -1 }, calc.ErrInvalidBondTerms, "maturity"},
		{"tiny maturity", func(in *Inputs) { in.Maturity = 0.1; in.Frequency = 1 }, calc.ErrInvalidBondTerms, "maturity"},
		{"monthly frequency", func(in *Inputs) { in.Frequency = 12 }, calc.ErrInvalidBondTerms, "frequency"},
		{"negative coupon", func(in *Inputs) { in.CouponRate = -1 }, calc.ErrInvalidBondTerms, "couponRate"},
		{"rate wipes discount base", func(in *Inputs) { in.MarketRate = -200 }, calc.ErrDivisionByZero, "marketRate"},
		{"NaN market", func(in *Inputs) { in.MarketRate = math.NaN() }, calc.ErrInvalidInput, "marketRate"},
		{"too many periods", func(in *Inputs) { in.Maturity = 200.5 }, calc.ErrInvalidBondTerms, "maturity"},
		{"huge maturity", func(in *Inputs) { in.Maturity = 1e17 }, calc.ErrInvalidBondTerms, "maturity"},
		{"int overflow maturity", func(in *Inputs) { in.Maturity = math.MaxFloat64 / 8 }, calc.ErrInvalidBondTerms, "maturity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := discountBond()
			tt.mutate(&in)

			s, err := Price(in)
			assert.Nil(t, s)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.field, calc.FieldOf(err))
		})
	}
}

func TestPrice_PeriodLimit(t *testing.T) {
	in := discountBond()
	in.Maturity = 100
	in.Frequency = 4

	s, err := Price(in)
	require.NoError(t, err)
	assert.Len(t, s.Rows, MaxPeriods)
}

func TestEstimate_MatchesFiniteDifference(t *testing.T) {
	in := discountBond()
	res, err := Analyze(in)
	require.NoError(t, err)

	const h = 1e-4 // 소수
	priceAt := func(dr float64) float64 {
		shocked := in
		shocked.MarketRate += dr * 100
		s, err := Price(shocked)
		require.NoError(t, err)
		return s.Price
	}

	up, down := priceAt(h), priceAt(-h)
	numericModified := (down - up) / (2 * h * res.Price)
	numericConvexity := (up + down - 2*res.Price) / (h * h * res.Price)

	// 반기 복리에서 수정 듀레이션은 연 복리 수익률 미분과 일치
	assert.InEpsilon(t, numericModified, res.ModifiedDuration, 1e-3)
	assert.InEpsilon(t, numericConvexity, res.Convexity, 1e-3)
}

func TestEstimate_ZeroCouponDuration(t *testing.T) {
	res, err := Analyze(Inputs{FaceValue: 1000, CouponRate: 0, MarketRate: 5, Maturity: 7, Frequency: 1})
	require.NoError(t, err)

	assert.InDelta(t, 7.0, res.MacaulayDuration, 1e-12)
	// t(t+1)/(1+r)² = 56 / 1.1025
	assert.InDelta(t, 56/1.1025, res.Convexity, 1e-9)
}

func TestEstimate_EmptySchedule(t *testing.T) {
	_, err := Estimate(nil)
	assert.ErrorIs(t, err, calc.ErrInvalidBondTerms)

	_, err = Estimate(&Schedule{})
	assert.ErrorIs(t, err, calc.ErrInvalidBondTerms)
}

func TestDuration(t *testing.T) {
	res, err := Duration(DurationInputs{FaceValue: 10000, CouponRate: 3, YTM: 4, YearsToMaturity: 5, Frequency: 2})
	require.NoError(t, err)

	assert.InDelta(t, 9550.87, res.BondPrice, 0.01)
	assert.InDelta(t, 4.67, res.MacaulayDuration, 0.01)
	assert.InDelta(t, -res.ModifiedDuration*res.BondPrice*0.0001, res.PriceChange1bp, 1e-12)
	assert.Less(t, res.PriceChange1bp, 0.0)
}

func TestDuration_InvalidFrequency(t *testing.T) {
	_, err := Duration(DurationInputs{FaceValue: 10000, CouponRate: 3, YTM: 4, YearsToMaturity: 5, Frequency: 3})
	assert.ErrorIs(t, err, calc.ErrInvalidBondTerms)
}

func TestSimulate_DefaultShocks(t *testing.T) {
	in := discountBond()
	rows, err := Simulate(in, DefaultShocks())
	require.NoError(t, err)
	require.Len(t, rows, 8)

	base, err := Analyze(in)
	require.NoError(t, err)

	for i, row := range rows {
		if i > 0 {
			assert.Greater(t, row.Shock, rows[i-1].Shock)
		}
		assert.InDelta(t, row.ApproxPrice-row.ExactPrice, row.Error, 1e-9)

		exact, err := Price(Inputs{
			FaceValue: in.FaceValue, CouponRate: in.CouponRate,
			MarketRate: in.MarketRate + row.Shock*100, Maturity: in.Maturity, Frequency: in.Frequency,
		})
		require.NoError(t, err)
		assert.InDelta(t, exact.Price, row.ExactPrice, 1e-9)

		// 금리 상승 → 가격 하락
		if row.Shock > 0 {
			assert.Less(t, row.ExactPrice, base.Price)
		} else {
			assert.Greater(t, row.ExactPrice, base.Price)
		}
	}
}

func TestSimulate_ErrorShrinksFasterThanShock(t *testing.T) {
	in := discountBond()

	for _, sign := range []float64{1, -1} {
		shocks := []float64{sign * 1e-2, sign * 1e-3, sign * 1e-4}
		rows, err := Simulate(in, shocks)
		require.NoError(t, err)

		ratios := make([]float64, len(rows))
		for i, row := range rows {
			ratios[i] = math.Abs(row.Error) / math.Abs(row.Shock)
		}

		assert.Less(t, ratios[1], ratios[0])
		assert.Less(t, ratios[2], ratios[1])
		assert.Less(t, ratios[2], 0.01)
	}
}

func TestSimulate_PropagatesInvalidTerms(t *testing.T) {
	in := discountBond()
	in.Frequency = 0

	rows, err := Simulate(in, DefaultShocks())
	assert.Nil(t, rows)
	assert.ErrorIs(t, err, calc.ErrInvalidBondTerms)
}

func TestApproximateChange(t *testing.T) {
	p := Profile{Price: 100, ModifiedDuration: 5, Convexity: 30}
	assert.InDelta(t, -0.05+0.5*30*0.0001, ApproximateChange(p, 0.01), 1e-15)
	assert.Equal(t, 0.0, ApproximateChange(p, 0))
}
