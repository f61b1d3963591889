package calc

import (
	"errors"
	"fmt"
)

// =============================================================================
// Condition taxonomy
// ⭐ SSOT: 계산 엔진의 모든 "정상적인 실패"는 여기 정의된 sentinel로만 표현
// NaN/Inf 값을 상위로 흘려보내지 않는다
// =============================================================================

var (
	// ErrNonConvergentTerminalValue 할인율 <= 영구성장률 (Gordon 모형 발산)
	ErrNonConvergentTerminalValue = errors.New("non-convergent terminal value")
	// ErrUndefinedCapitalStructure 자기자본 + 부채 <= 0
	ErrUndefinedCapitalStructure = errors.New("undefined capital structure")
	// ErrInvalidBondTerms 액면가/만기/이자지급횟수 비정상
	ErrInvalidBondTerms = errors.New("invalid bond terms")
	// ErrDivisionByZero 분모가 0 이거나 결과가 유한하지 않음
	ErrDivisionByZero = errors.New("division by zero")
	// ErrEmptyForecast 예측 현금흐름 없음
	ErrEmptyForecast = errors.New("empty forecast")
	// ErrInvalidInput 범위를 벗어난 입력
	ErrInvalidInput = errors.New("invalid input")
)

var conditions = []error{
	ErrNonConvergentTerminalValue,
	ErrUndefinedCapitalStructure,
	ErrInvalidBondTerms,
	ErrDivisionByZero,
	ErrEmptyForecast,
	ErrInvalidInput,
}

// ConditionError names the input field that triggered a business condition.
type ConditionError struct {
	Condition error
	Field     string
	Message   string
}

func (e *ConditionError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Condition)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Condition, e.Message)
}

func (e *ConditionError) Unwrap() error {
	return e.Condition
}

// Newf builds a ConditionError for field with a formatted message.
func Newf(condition error, field, format string, args ...interface{}) error {
	return &ConditionError{
		Condition: condition,
		Field:     field,
		Message:   fmt.Sprintf(format, args...),
	}
}

// IsCondition reports whether err is one of the expected business conditions
// rather than a defect.
func IsCondition(err error) bool {
	for _, c := range conditions {
		if errors.Is(err, c) {
			return true
		}
	}
	return false
}

// ConditionName returns the taxonomy name used on the wire, or "" for defects.
func ConditionName(err error) string {
	switch {
	case errors.Is(err, ErrNonConvergentTerminalValue):
		return "NonConvergentTerminalValue"
	case errors.Is(err, ErrUndefinedCapitalStructure):
		return "UndefinedCapitalStructure"
	case errors.Is(err, ErrInvalidBondTerms):
		return "InvalidBondTerms"
	case errors.Is(err, ErrDivisionByZero):
		return "DivisionByZero"
	case errors.Is(err, ErrEmptyForecast):
		return "EmptyForecast"
	case errors.Is(err, ErrInvalidInput):
		return "InvalidInput"
	default:
		return ""
	}
}

// FieldOf extracts the offending field name from a condition error.
func FieldOf(err error) string {
	var ce *ConditionError
	if errors.As(err, &ce) {
		return ce.Field
	}
	return ""
}
