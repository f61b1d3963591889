package bond

import (
	"math"

	"github.com/wonny/valuecalc/internal/calc"
)

const oneBasisPoint = 0.0001

// Estimate derives Macaulay duration, modified duration and convexity from a
// priced schedule.
//
// FORMULA: D_mac = Σ (t/f) × PV_t / P
//
//	D_mod = D_mac / (1 + y/f)
//	C     = Σ t(t+1) × CF_t / (1 + y/f)^(t+2) / (P × f²)
//
// 볼록성은 기간 단위 값을 f²로 나눠 연 단위로 환산한다.
func Estimate(s *Schedule) (Profile, error) {
	if s == nil || len(s.Rows) == 0 {
		return Profile{}, calc.Newf(calc.ErrInvalidBondTerms, "schedule", "no cash flows")
	}

	var weighted, curvature float64
	for _, row := range s.Rows {
		t := float64(row.Period)
		weighted += row.TimeWeightedPV
		curvature += t * (t + 1) * row.CashFlow / math.Pow(1+s.RatePerPeriod, t+2)
	}

	mac, err := calc.SafeDiv("price", weighted, s.Price)
	if err != nil {
		return Profile{}, err
	}

	freq := float64(s.Frequency)
	conv, err := calc.SafeDiv("price", curvature, s.Price*freq*freq)
	if err != nil {
		return Profile{}, err
	}

	return Profile{
		Price:            s.Price,
		MacaulayDuration: mac,
		ModifiedDuration: mac / (1 + s.RatePerPeriod),
		Convexity:        conv,
	}, nil
}

// Duration adapts the duration-calculator wire record.
func Duration(in DurationInputs) (*DurationResult, error) {
	res, err := Analyze(Inputs{
		FaceValue:  in.FaceValue,
		CouponRate: in.CouponRate,
		MarketRate: in.YTM,
		Maturity:   in.YearsToMaturity,
		Frequency:  in.Frequency,
	})
	if err != nil {
		return nil, err
	}

	return &DurationResult{
		MacaulayDuration: res.MacaulayDuration,
		ModifiedDuration: res.ModifiedDuration,
		Convexity:        res.Convexity,
		BondPrice:        res.Price,
		PriceChange1bp:   -res.ModifiedDuration * res.Price * oneBasisPoint,
	}, nil
}
