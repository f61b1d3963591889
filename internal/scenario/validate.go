package scenario

import (
	"errors"
	"fmt"
	"math"

	"github.com/wonny/valuecalc/internal/calc"
	"github.com/wonny/valuecalc/internal/grid"
)

// ValidationError 검증 실패 (평가 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Warning 권장 위반 (경고만)
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	tvDominantPct       = 75.0 // 잔존가치 비중 경고 기준 (%)
	betaMin             = 0.0
	betaMax             = 3.0
	terminalGrowthMax   = 4.0 // 장기 명목성장률 상단 (%)
	shortHorizonYears   = 5
	approxErrorWarnRate = 0.01 // 근사 오차가 가격의 1% 초과
)

// Validate checks structural constraints.
// rate <= growth 같은 계산 조건은 여기서 막지 않는다. 평가 결과의 Conditions로 보고됨
func Validate(s *Scenario) error {
	// === Meta ===
	if s.Meta.ScenarioID == "" {
		return ValidationError{"meta.scenario_id", "required"}
	}
	if s.WACC == nil && s.DCF == nil && s.Bond == nil && s.DDM == nil && s.Kelly == nil {
		return ValidationError{"scenario", "at least one of wacc, dcf, bond, ddm, kelly is required"}
	}

	// === DCF ===
	if d := s.DCF; d != nil {
		if len(d.FCF) == 0 {
			return ValidationError{"dcf.fcf", "must not be empty"}
		}
		if err := validateFinite(d.FCF); err != nil {
			return ValidationError{"dcf.fcf", err.Error()}
		}
		if err := requireFinite(
			namedValue{"dcf.wacc", d.WACC},
			namedValue{"dcf.terminal_growth", d.TerminalGrowth},
			namedValue{"dcf.shares_outstanding", d.SharesOutstanding},
			namedValue{"dcf.net_debt", d.NetDebt},
		); err != nil {
			return err
		}
		if d.SharesOutstanding <= 0 {
			return ValidationError{"dcf.shares_outstanding", "must be > 0"}
		}
		if d.UseWACCResult && s.WACC == nil {
			return ValidationError{"dcf.use_wacc_result", "requires a wacc section"}
		}
		if err := validateGrid("dcf.grid", d.Grid); err != nil {
			return err
		}
	}

	// === WACC ===
	if w := s.WACC; w != nil {
		if err := requireFinite(
			namedValue{"wacc.risk_free_rate", w.RiskFreeRate},
			namedValue{"wacc.beta", w.Beta},
			namedValue{"wacc.market_risk_premium", w.MarketRiskPremium},
			namedValue{"wacc.cost_of_debt", w.CostOfDebt},
			namedValue{"wacc.tax_rate", w.TaxRate},
			namedValue{"wacc.equity_value", w.EquityValue},
			namedValue{"wacc.debt_value", w.DebtValue},
		); err != nil {
			return err
		}
		if w.TaxRate < 0 || w.TaxRate > 100 {
			return ValidationError{"wacc.tax_rate", "must be in range [0, 100]"}
		}
		if w.EquityValue < 0 || w.DebtValue < 0 {
			return ValidationError{"wacc", "equity_value and debt_value must be >= 0"}
		}
	}

	// === Bond ===
	if b := s.Bond; b != nil {
		if err := requireFinite(
			namedValue{"bond.face_value", b.FaceValue},
			namedValue{"bond.coupon_rate", b.CouponRate},
			namedValue{"bond.market_rate", b.MarketRate},
			namedValue{"bond.maturity", b.Maturity},
		); err != nil {
			return err
		}
		if b.FaceValue <= 0 {
			return ValidationError{"bond.face_value", "must be > 0"}
		}
		if b.Maturity <= 0 {
			return ValidationError{"bond.maturity", "must be > 0"}
		}
		if err := calc.RequireFrequency("bond.frequency", b.Frequency); err != nil {
			return ValidationError{"bond.frequency", "must be one of 1, 2, 4"}
		}
		if err := validateFinite(b.Shocks); err != nil {
			return ValidationError{"bond.shocks", err.Error()}
		}
		if err := validateGrid("bond.grid", b.Grid); err != nil {
			return err
		}
	}

	// === DDM ===
	if d := s.DDM; d != nil {
		if d.Gordon == nil && d.TwoStage == nil {
			return ValidationError{"ddm", "requires gordon or two_stage"}
		}
		if g := d.Gordon; g != nil {
			if err := requireFinite(
				namedValue{"ddm.gordon.current_dividend", g.CurrentDividend},
				namedValue{"ddm.gordon.cost_of_equity", g.CostOfEquity},
				namedValue{"ddm.gordon.growth_rate", g.GrowthRate},
			); err != nil {
				return err
			}
		}
		if ts := d.TwoStage; ts != nil {
			if err := requireFinite(
				namedValue{"ddm.two_stage.current_dividend", ts.CurrentDividend},
				namedValue{"ddm.two_stage.cost_of_equity", ts.CostOfEquity},
				namedValue{"ddm.two_stage.high_growth_rate", ts.HighGrowthRate},
				namedValue{"ddm.two_stage.terminal_growth_rate", ts.TerminalGrowthRate},
			); err != nil {
				return err
			}
		}
		if d.Grid != nil && d.Gordon == nil {
			return ValidationError{"ddm.grid", "requires ddm.gordon as the base case"}
		}
		if d.TwoStage != nil && d.TwoStage.HighGrowthYears < 1 {
			return ValidationError{"ddm.two_stage.high_growth_years", "must be >= 1"}
		}
		if err := validateGrid("ddm.grid", d.Grid); err != nil {
			return err
		}
	}

	// === Kelly ===
	if k := s.Kelly; k != nil {
		if err := requireFinite(
			namedValue{"kelly.win_probability", k.WinProbability},
			namedValue{"kelly.payoff_ratio", k.PayoffRatio},
			namedValue{"kelly.fraction", k.Fraction},
		); err != nil {
			return err
		}
		if err := validatePctRange(k.WinProbability, "kelly.win_probability"); err != nil {
			return err
		}
		if k.Fraction < 0 || k.Fraction > 1 {
			return ValidationError{"kelly.fraction", "must be in range [0, 1]"}
		}
	}

	return nil
}

// Warn checks recommended input ranges (non-fatal)
func Warn(s *Scenario) []Warning {
	var warnings []Warning

	if w := s.WACC; w != nil && (w.Beta < betaMin || w.Beta > betaMax) {
		warnings = append(warnings, Warning{
			Code:    "BETA_OUT_OF_RANGE",
			Message: fmt.Sprintf("beta=%.2f: 일반적 범위 [%.0f, %.0f] 밖", w.Beta, betaMin, betaMax),
		})
	}

	if d := s.DCF; d != nil {
		if d.TerminalGrowth > terminalGrowthMax {
			warnings = append(warnings, Warning{
				Code:    "HIGH_TERMINAL_GROWTH",
				Message: fmt.Sprintf("영구성장률 %.2f%% > %.0f%%: 장기 성장률로 과도함", d.TerminalGrowth, terminalGrowthMax),
			})
		}
		if len(d.FCF) < shortHorizonYears {
			warnings = append(warnings, Warning{
				Code:    "SHORT_HORIZON",
				Message: fmt.Sprintf("예측 기간 %d년 < %d년: 잔존가치 비중이 커짐", len(d.FCF), shortHorizonYears),
			})
		}
	}

	return warnings
}

// warnResults checks computed outputs (non-fatal)
func warnResults(r *Report) []Warning {
	var warnings []Warning

	if r.DCF != nil && r.DCF.TVPercentage != nil && *r.DCF.TVPercentage > tvDominantPct {
		warnings = append(warnings, Warning{
			Code:    "TV_DOMINANT",
			Message: fmt.Sprintf("잔존가치 비중 %.1f%% > %.0f%%: 가정 민감도 높음", *r.DCF.TVPercentage, tvDominantPct),
		})
	}

	for _, row := range r.BondSensitivity {
		if row.ExactPrice != 0 && math.Abs(row.Error/row.ExactPrice) > approxErrorWarnRate {
			warnings = append(warnings, Warning{
				Code:    "APPROXIMATION_DRIFT",
				Message: fmt.Sprintf("shock %+.4f: 듀레이션-볼록성 근사 오차 > %.0f%%", row.Shock, approxErrorWarnRate*100),
			})
		}
	}

	for _, ng := range r.Grids.named() {
		if n := ng.grid.NotApplicable(); n > 0 {
			warnings = append(warnings, Warning{
				Code:    "GRID_NOT_APPLICABLE",
				Message: fmt.Sprintf("%s grid: %d개 셀 N/A", ng.name, n),
			})
		}
	}

	return warnings
}

// === Helper Functions ===

func validateGrid(field string, g *GridSpec) error {
	if g == nil {
		return nil
	}
	if len(g.Rows) == 0 || len(g.Cols) == 0 {
		return ValidationError{field, "rows and cols must not be empty"}
	}
	if len(g.Rows) > grid.MaxAxisValues || len(g.Cols) > grid.MaxAxisValues {
		return ValidationError{field, fmt.Sprintf("rows and cols must have at most %d values", grid.MaxAxisValues)}
	}
	if err := validateFinite(g.Rows); err != nil {
		return ValidationError{field + ".rows", err.Error()}
	}
	if err := validateFinite(g.Cols); err != nil {
		return ValidationError{field + ".cols", err.Error()}
	}
	return nil
}

func validateFinite(values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("[%d] must be finite", i)
		}
	}
	return nil
}

type namedValue struct {
	field string
	value float64
}

// requireFinite YAML의 .nan / .inf 입력 차단
func requireFinite(values ...namedValue) error {
	for _, nv := range values {
		if math.IsNaN(nv.value) || math.IsInf(nv.value, 0) {
			return ValidationError{nv.field, "must be finite"}
		}
	}
	return nil
}

// validatePctRange는 퍼센트 값이 0~100 범위인지 검증
func validatePctRange(pct float64, field string) error {
	if pct < 0 || pct > 100 {
		return ValidationError{field, "must be in range [0, 100]"}
	}
	return nil
}

// IsValidationError reports whether err came from Validate.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
