package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/wonny/valuecalc/internal/scenario"
	"github.com/wonny/valuecalc/pkg/logger"
)

// ScenarioHandler handles scenario evaluation
type ScenarioHandler struct {
	logger *logger.Logger
}

// NewScenarioHandler creates a new scenario handler
func NewScenarioHandler(log *logger.Logger) *ScenarioHandler {
	return &ScenarioHandler{
		logger: log,
	}
}

// Evaluate handles POST /api/scenario
// 본문: YAML 또는 snake_case JSON 시나리오 문서
func (h *ScenarioHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	s, err := scenario.Parse(data)
	if err != nil {
		var ve scenario.ValidationError
		if errors.As(err, &ve) {
			respondJSON(w, http.StatusBadRequest, map[string]string{
				"error": ve.Error(),
				"field": ve.Field,
			})
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := scenario.Evaluate(s)
	if err != nil {
		h.logger.WithError(err).WithField("scenario_id", s.Meta.ScenarioID).Error("Scenario evaluation failed")
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"scenario_id": report.ScenarioID,
		"run_id":      report.RunID,
		"input_hash":  report.InputHash,
		"conditions":  len(report.Conditions),
		"warnings":    len(report.Warnings),
	}).Info("Scenario evaluated")

	respondSuccess(w, report)
}
