package handlers

import (
	"bytes"
	"io"
	"net/http"

	"github.com/wonny/valuecalc/internal/api/cache"
	"github.com/wonny/valuecalc/internal/bond"
	"github.com/wonny/valuecalc/internal/dcf"
	"github.com/wonny/valuecalc/internal/ddm"
	"github.com/wonny/valuecalc/internal/kelly"
	"github.com/wonny/valuecalc/internal/wacc"
	"github.com/wonny/valuecalc/pkg/logger"
)

const maxBodyBytes = 1 << 20

// Calculation kinds (HTTP 경로 접미사 = WebSocket kind)
const (
	KindDCF             = "dcf"
	KindWACC            = "wacc"
	KindBond            = "bond"
	KindDuration        = "duration"
	KindBondSensitivity = "bond/sensitivity"
	KindDDMGordon       = "ddm/gordon"
	KindDDMTwoStage     = "ddm/two-stage"
	KindKelly           = "kelly"
	KindGridDCF         = "grid/dcf"
	KindGridDDM         = "grid/ddm"
	KindGridBond        = "grid/bond"
)

// request 디코딩된 입력 스냅샷 + 그 스냅샷에 묶인 계산
type request struct {
	input   interface{}
	compute func() (interface{}, error)
}

type binder func(raw []byte) (*request, error)

// bind decodes raw JSON into T and closes fn over that single value.
func bind[T any](fn func(T) (interface{}, error)) binder {
	return func(raw []byte) (*request, error) {
		var in T
		if err := decodeStrict(raw, &in); err != nil {
			return nil, err
		}
		return &request{
			input:   in,
			compute: func() (interface{}, error) { return fn(in) },
		}, nil
	}
}

// SensitivityRequest 채권 + 금리 충격 (비어 있으면 기본 충격)
type SensitivityRequest struct {
	bond.Inputs
	Shocks []float64 `json:"shocks,omitempty"`
}

var calculators = map[string]binder{
	KindDCF: bind(func(in dcf.Inputs) (interface{}, error) {
		return dcf.Calculate(in)
	}),
	KindWACC: bind(func(in wacc.Inputs) (interface{}, error) {
		return wacc.Compose(in)
	}),
	KindBond: bind(func(in bond.Inputs) (interface{}, error) {
		return bond.Analyze(in)
	}),
	KindDuration: bind(func(in bond.DurationInputs) (interface{}, error) {
		return bond.Duration(in)
	}),
	KindBondSensitivity: bind(func(in SensitivityRequest) (interface{}, error) {
		shocks := in.Shocks
		if len(shocks) == 0 {
			shocks = bond.DefaultShocks()
		}
		return bond.Simulate(in.Inputs, shocks)
	}),
	KindDDMGordon: bind(func(in ddm.GordonInputs) (interface{}, error) {
		return ddm.Gordon(in)
	}),
	KindDDMTwoStage: bind(func(in ddm.TwoStageInputs) (interface{}, error) {
		return ddm.TwoStage(in)
	}),
	KindKelly: bind(func(in kelly.Inputs) (interface{}, error) {
		return kelly.Size(in)
	}),
	KindGridDCF:  bind(dcfGrid),
	KindGridDDM:  bind(ddmGrid),
	KindGridBond: bind(bondGrid),
}

// Kinds lists every calculation kind.
func Kinds() []string {
	return []string{
		KindDCF, KindWACC, KindBond, KindDuration, KindBondSensitivity,
		KindDDMGordon, KindDDMTwoStage, KindKelly,
		KindGridDCF, KindGridDDM, KindGridBond,
	}
}

// CalcHandler handles calculator API endpoints
// ⭐ SSOT: 계산 API 핸들러는 이 구조체에서만
type CalcHandler struct {
	cache  *cache.ResultCache // nil이면 캐시 비활성
	logger *logger.Logger
}

// NewCalcHandler creates a new calc handler
func NewCalcHandler(resultCache *cache.ResultCache, log *logger.Logger) *CalcHandler {
	return &CalcHandler{
		cache:  resultCache,
		logger: log,
	}
}

// run decodes one snapshot and computes (or reuses) its result.
func (h *CalcHandler) run(kind string, raw []byte) (interface{}, bool, error) {
	b, ok := calculators[kind]
	if !ok {
		return nil, false, badRequest("unknown calculation kind %q", kind)
	}

	req, err := b(raw)
	if err != nil {
		return nil, false, err
	}

	if h.cache == nil {
		v, err := req.compute()
		return v, false, err
	}

	key, err := cache.Key(kind, req.input)
	if err != nil {
		return nil, false, err
	}
	return h.cache.GetOrCompute(key, req.compute)
}

// Handle returns the POST handler for one calculation kind.
func (h *CalcHandler) Handle(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			respondError(w, http.StatusBadRequest, "failed to read body")
			return
		}

		result, hit, err := h.run(kind, raw)
		if err != nil {
			h.writeError(w, kind, err)
			return
		}

		if hit {
			w.Header().Set("X-Cache", "HIT")
		} else {
			w.Header().Set("X-Cache", "MISS")
		}
		respondSuccess(w, result)
	}
}

// CacheStats returns result cache counters
func (h *CalcHandler) CacheStats(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		respondSuccess(w, map[string]interface{}{"enabled": false})
		return
	}
	respondSuccess(w, h.cache.Stats())
}

func (h *CalcHandler) writeError(w http.ResponseWriter, kind string, err error) {
	status := statusFor(err)
	switch status {
	case http.StatusUnprocessableEntity:
		h.logger.WithFields(map[string]interface{}{
			"kind":  kind,
			"error": err.Error(),
		}).Debug("Calculation condition")
		respondJSON(w, status, conditionBody(err))
	case http.StatusBadRequest:
		respondError(w, status, err.Error())
	default:
		h.logger.WithError(err).WithField("kind", kind).Error("Calculation failed")
		respondError(w, status, "Internal server error")
	}
}

func bytesReader(data []byte) io.Reader {
	return bytes.NewReader(data)
}
