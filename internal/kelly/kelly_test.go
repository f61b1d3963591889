package kelly

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/valuecalc/internal/calc"
)

func TestSize(t *testing.T) {
	tests := []struct {
		name           string
		in             Inputs
		wantFull       float64
		wantFractional float64
		wantEdge       bool
	}{
		{"even odds 60%", Inputs{WinProbability: 60, PayoffRatio: 1}, 20, 10, true},
		{"2:1 payoff 40%", Inputs{WinProbability: 40, PayoffRatio: 2}, 10, 5, true},
		{"full kelly", Inputs{WinProbability: 60, PayoffRatio: 1, Fraction: 1}, 20, 20, true},
		{"no edge", Inputs{WinProbability: 40, PayoffRatio: 1}, -20, 0, false},
		{"break even", Inputs{WinProbability: 50, PayoffRatio: 1}, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Size(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantFull, res.FullKelly, 1e-9)
			assert.InDelta(t, tt.wantFractional, res.FractionalKelly, 1e-9)
			assert.Equal(t, tt.wantEdge, res.HasEdge)
		})
	}
}

func TestSize_DefaultFraction(t *testing.T) {
	res, err := Size(Inputs{WinProbability: 55, PayoffRatio: 1.5})
	require.NoError(t, err)
	assert.Equal(t, DefaultFraction, res.Fraction)
}

func TestSize_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		in    Inputs
		want  error
		field string
	}{
		{"zero payoff", Inputs{WinProbability: 60, PayoffRatio: 0}, calc.ErrDivisionByZero, "payoffRatio"},
		{"negative payoff", Inputs{WinProbability: 60, PayoffRatio: -1}, calc.ErrDivisionByZero, "payoffRatio"},
		{"probability above 100", Inputs{WinProbability: 101, PayoffRatio: 1}, calc.ErrInvalidInput, "winProbability"},
		{"negative probability", Inputs{WinProbability: -1, PayoffRatio: 1}, calc.ErrInvalidInput, "winProbability"},
		{"NaN probability", Inputs{WinProbability: math.NaN(), PayoffRatio: 1}, calc.ErrInvalidInput, "winProbability"},
		{"fraction above 1", Inputs{WinProbability: 60, PayoffRatio: 1, Fraction: 1.5}, calc.ErrInvalidInput, "fraction"},
		{"NaN fraction", Inputs{WinProbability: 60, PayoffRatio: 1, Fraction: math.NaN()}, calc.ErrInvalidInput, "fraction"},
		{"Inf fraction", Inputs{WinProbability: 60, PayoffRatio: 1, Fraction: math.Inf(1)}, calc.ErrInvalidInput, "fraction"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Size(tt.in)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.field, calc.FieldOf(err))
		})
	}
}
