package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/wonny/valuecalc/internal/calc"
)

// errBadRequest 본문 디코딩 실패 (400)
var errBadRequest = errors.New("bad request")

// ConditionBody 계산 조건 오류 응답 (422)
type ConditionBody struct {
	Error     string `json:"error"`
	Condition string `json:"condition"`
	Field     string `json:"field,omitempty"`
}

func conditionBody(err error) *ConditionBody {
	return &ConditionBody{
		Error:     err.Error(),
		Condition: calc.ConditionName(err),
		Field:     calc.FieldOf(err),
	}
}

func badRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

// decodeStrict decodes one JSON value, rejecting unknown fields.
func decodeStrict(data []byte, v interface{}) error {
	if len(data) == 0 {
		return badRequest("empty body")
	}

	dec := json.NewDecoder(bytesReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequest("invalid JSON: %v", err)
	}
	return nil
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

func respondSuccess(w http.ResponseWriter, data interface{}) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case calc.IsCondition(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
