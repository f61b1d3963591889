// Package bond prices fixed-coupon bonds from their cash-flow schedule and
// derives duration, convexity and rate-shock sensitivity from that schedule.
package bond

import (
	"math"

	"github.com/wonny/valuecalc/internal/calc"
	"github.com/wonny/valuecalc/internal/units"
)

// MaxPeriods 현금흐름 기간 수 상한 (100년 × 분기)
const MaxPeriods = 400

func validateTerms(in Inputs) error {
	if err := calc.RequirePositive("faceValue", in.FaceValue, calc.ErrInvalidBondTerms); err != nil {
		return err
	}
	if err := calc.RequirePositive("maturity", in.Maturity, calc.ErrInvalidBondTerms); err != nil {
		return err
	}
	if err := calc.RequireFrequency("frequency", in.Frequency); err != nil {
		return err
	}
	if err := calc.RequireFinite("couponRate", in.CouponRate); err != nil {
		return err
	}
	if in.CouponRate < 0 {
		return calc.Newf(calc.ErrInvalidBondTerms, "couponRate", "must be >= 0, got %v", in.CouponRate)
	}
	return calc.RequireFinite("marketRate", in.MarketRate)
}

// Price builds the coupon/principal schedule and discounts it.
//
// FORMULA: P = Σ CF_t / (1 + y/f)^t, t = 1..round(maturity × f)
func Price(in Inputs) (*Schedule, error) {
	if err := validateTerms(in); err != nil {
		return nil, err
	}

	n := math.Round(in.Maturity * float64(in.Frequency))
	if n > MaxPeriods {
		return nil, calc.Newf(calc.ErrInvalidBondTerms, "maturity",
			"maturity %v × frequency %d exceeds %d periods", in.Maturity, in.Frequency, MaxPeriods)
	}
	periods := int(n)
	if periods <= 0 {
		return nil, calc.Newf(calc.ErrInvalidBondTerms, "maturity",
			"maturity %v × frequency %d rounds to zero periods", in.Maturity, in.Frequency)
	}

	freq := float64(in.Frequency)
	coupon := in.FaceValue * units.PercentToDecimal(in.CouponRate) / freq
	rate := units.PercentToDecimal(in.MarketRate) / freq
	if err := calc.RequireDiscountBase("marketRate", rate); err != nil {
		return nil, err
	}

	rows := make([]CashFlowRow, periods)
	var price float64
	for t := 1; t <= periods; t++ {
		principal := 0.0
		if t == periods {
			principal = in.FaceValue
		}
		cf := coupon + principal
		pv := cf / math.Pow(1+rate, float64(t))
		years := float64(t) / freq

		rows[t-1] = CashFlowRow{
			Period:         t,
			Time:           years,
			Coupon:         coupon,
			Principal:      principal,
			CashFlow:       cf,
			PresentValue:   pv,
			TimeWeightedPV: years * pv,
		}
		price += pv
	}

	return &Schedule{
		Rows:            rows,
		Price:           price,
		CouponPerPeriod: coupon,
		RatePerPeriod:   rate,
		TotalPeriods:    periods,
		Frequency:       in.Frequency,
	}, nil
}

// Classify compares market yield with coupon rate.
func Classify(in Inputs) Classification {
	switch {
	case in.MarketRate > in.CouponRate:
		return ClassDiscount
	case in.MarketRate < in.CouponRate:
		return ClassPremium
	default:
		return ClassPar
	}
}

// Analyze prices the bond and attaches its risk profile.
func Analyze(in Inputs) (*Result, error) {
	sched, err := Price(in)
	if err != nil {
		return nil, err
	}

	risk, err := Estimate(sched)
	if err != nil {
		return nil, err
	}

	return &Result{
		Price:            sched.Price,
		MacaulayDuration: risk.MacaulayDuration,
		ModifiedDuration: risk.ModifiedDuration,
		Convexity:        risk.Convexity,
		Classification:   Classify(in),
		Schedule:         sched.Rows,
	}, nil
}
