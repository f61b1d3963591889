package bond

import (
	"fmt"

	"github.com/wonny/valuecalc/internal/units"
)

// DefaultShocks ±50bp ~ ±200bp (소수 표기)
func DefaultShocks() []float64 {
	return []float64{-0.02, -0.015, -0.01, -0.005, 0.005, 0.01, 0.015, 0.02}
}

// ApproximateChange returns the second-order relative price change for a
// yield shock dr (decimal).
//
// FORMULA: ΔP/P ≈ -D_mod × Δr + ½ × C × Δr²
func ApproximateChange(p Profile, dr float64) float64 {
	return -p.ModifiedDuration*dr + 0.5*p.Convexity*dr*dr
}

// Simulate compares the duration-convexity approximation with an exact
// repricing at marketRate + Δr for every shock. Both prices are always
// returned; the approximation never replaces the repricing.
func Simulate(in Inputs, shocks []float64) ([]SensitivityRow, error) {
	base, err := Analyze(in)
	if err != nil {
		return nil, err
	}
	profile := base.Profile()

	rows := make([]SensitivityRow, 0, len(shocks))
	for _, dr := range shocks {
		rel := ApproximateChange(profile, dr)
		approx := profile.Price * (1 + rel)

		shocked := in
		shocked.MarketRate = in.MarketRate + units.DecimalToPercent(dr)
		exact, err := Price(shocked)
		if err != nil {
			return nil, fmt.Errorf("reprice at shock %+.4f: %w", dr, err)
		}

		rows = append(rows, SensitivityRow{
			Shock:           dr,
			ApproxChangePct: units.DecimalToPercent(rel),
			ApproxPrice:     approx,
			ExactPrice:      exact.Price,
			Error:           approx - exact.Price,
		})
	}

	return rows, nil
}
