package calc

import "math"

// =============================================================================
// InputGuard
// 분모가 되는 값은 사용 전에 반드시 여기서 검사
// =============================================================================

// RequireFinite rejects NaN and ±Inf inputs.
func RequireFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Newf(ErrInvalidInput, field, "must be finite, got %v", v)
	}
	return nil
}

// RequirePositive rejects v <= 0 with the given condition.
func RequirePositive(field string, v float64, condition error) error {
	if err := RequireFinite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return Newf(condition, field, "must be > 0, got %v", v)
	}
	return nil
}

// RequireNonNegative rejects v < 0.
func RequireNonNegative(field string, v float64) error {
	if err := RequireFinite(field, v); err != nil {
		return err
	}
	if v < 0 {
		return Newf(ErrInvalidInput, field, "must be >= 0, got %v", v)
	}
	return nil
}

// RequireSpread enforces rate > growth for perpetuity formulas.
// 두 값 모두 퍼센트(정수 표기) 단위
func RequireSpread(rateField string, rate float64, growthField string, growth float64) error {
	if err := RequireFinite(rateField, rate); err != nil {
		return err
	}
	if err := RequireFinite(growthField, growth); err != nil {
		return err
	}
	if rate <= growth {
		return Newf(ErrNonConvergentTerminalValue, rateField,
			"%s=%v must exceed %s=%v", rateField, rate, growthField, growth)
	}
	return nil
}

// RequireDiscountBase rejects per-period rates at or below -100%, where
// (1 + r)^t is zero or changes sign.
func RequireDiscountBase(field string, ratePerPeriod float64) error {
	if err := RequireFinite(field, ratePerPeriod); err != nil {
		return err
	}
	if 1+ratePerPeriod <= 0 {
		return Newf(ErrDivisionByZero, field, "1 + rate must be > 0, got rate %v", ratePerPeriod)
	}
	return nil
}

// AllowedFrequencies 연간 이자 지급 횟수 (연/반기/분기)
var AllowedFrequencies = []int{1, 2, 4}

// RequireFrequency accepts only annual, semi-annual and quarterly payments.
func RequireFrequency(field string, f int) error {
	for _, allowed := range AllowedFrequencies {
		if f == allowed {
			return nil
		}
	}
	return Newf(ErrInvalidBondTerms, field, "must be one of 1, 2, 4, got %d", f)
}

// SafeDiv divides and reports ErrDivisionByZero instead of producing Inf/NaN.
func SafeDiv(field string, num, den float64) (float64, error) {
	if den == 0 {
		return 0, Newf(ErrDivisionByZero, field, "denominator is zero")
	}
	q := num / den
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 0, Newf(ErrDivisionByZero, field, "result is not finite")
	}
	return q, nil
}
