package calc

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireSpread(t *testing.T) {
	tests := []struct {
		name   string
		rate   float64
		growth float64
		wantOK bool
	}{
		{"rate above growth", 10, 2, true},
		{"rate equals growth", 3, 3, false},
		{"rate below growth", 2, 3, false},
		{"negative growth", 1, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireSpread("wacc", tt.rate, "terminalGrowth", tt.growth)
			if tt.wantOK {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrNonConvergentTerminalValue)
			assert.Equal(t, "wacc", FieldOf(err))
		})
	}
}

func TestRequireFrequency(t *testing.T) {
	for _, f := range []int{1, 2, 4} {
		assert.NoError(t, RequireFrequency("frequency", f))
	}
	for _, f := range []int{0, 3, 12, -2} {
		err := RequireFrequency("frequency", f)
		assert.ErrorIs(t, err, ErrInvalidBondTerms, "frequency %d", f)
	}
}

func TestRequirePositive(t *testing.T) {
	assert.NoError(t, RequirePositive("faceValue", 10000, ErrInvalidBondTerms))
	assert.ErrorIs(t, RequirePositive("faceValue", 0, ErrInvalidBondTerms), ErrInvalidBondTerms)
	assert.ErrorIs(t, RequirePositive("faceValue", -1, ErrInvalidBondTerms), ErrInvalidBondTerms)
	assert.ErrorIs(t, RequirePositive("faceValue", math.NaN(), ErrInvalidBondTerms), ErrInvalidInput)
}

func TestRequireDiscountBase(t *testing.T) {
	assert.NoError(t, RequireDiscountBase("wacc", -0.5))
	assert.ErrorIs(t, RequireDiscountBase("wacc", -1), ErrDivisionByZero)
	assert.ErrorIs(t, RequireDiscountBase("wacc", -1.5), ErrDivisionByZero)
}

func TestSafeDiv(t *testing.T) {
	q, err := SafeDiv("x", 10, 4)
	require.NoError(t, err)
	assert.Equal(t, 2.5, q)

	_, err = SafeDiv("x", 1, 0)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = SafeDiv("x", math.Inf(1), 1)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestIsCondition(t *testing.T) {
	wrapped := fmt.Errorf("dcf: %w", Newf(ErrUndefinedCapitalStructure, "debtValue", "total capital is zero"))

	assert.True(t, IsCondition(wrapped))
	assert.Equal(t, "UndefinedCapitalStructure", ConditionName(wrapped))
	assert.Equal(t, "debtValue", FieldOf(wrapped))

	defect := errors.New("boom")
	assert.False(t, IsCondition(defect))
	assert.Equal(t, "", ConditionName(defect))
	assert.Equal(t, "", FieldOf(defect))
}

func TestConditionError_Error(t *testing.T) {
	err := &ConditionError{Condition: ErrDivisionByZero, Field: "sharesOutstanding"}
	assert.Equal(t, "sharesOutstanding: division by zero", err.Error())

	err.Message = "must be > 0"
	assert.Equal(t, "sharesOutstanding: division by zero (must be > 0)", err.Error())
}
