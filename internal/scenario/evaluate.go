package scenario

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wonny/valuecalc/internal/bond"
	"github.com/wonny/valuecalc/internal/calc"
	"github.com/wonny/valuecalc/internal/dcf"
	"github.com/wonny/valuecalc/internal/ddm"
	"github.com/wonny/valuecalc/internal/grid"
	"github.com/wonny/valuecalc/internal/kelly"
	"github.com/wonny/valuecalc/internal/wacc"
)

// Condition 기준 결과를 막은 계산 조건 (결과는 nil, N/A로 표시)
type Condition struct {
	Section   string `json:"section"`
	Condition string `json:"condition"`
	Field     string `json:"field,omitempty"`
	Message   string `json:"message"`
}

// Grids 섹션별 민감도 그리드
type Grids struct {
	DCF  *grid.Grid `json:"dcf,omitempty"`
	DDM  *grid.Grid `json:"ddm,omitempty"`
	Bond *grid.Grid `json:"bond,omitempty"`
}

type namedGrid struct {
	name string
	grid *grid.Grid
}

func (g Grids) named() []namedGrid {
	var out []namedGrid
	if g.DCF != nil {
		out = append(out, namedGrid{"dcf", g.DCF})
	}
	if g.DDM != nil {
		out = append(out, namedGrid{"ddm", g.DDM})
	}
	if g.Bond != nil {
		out = append(out, namedGrid{"bond", g.Bond})
	}
	return out
}

// Report 시나리오 1회 평가 결과 (재현성용 해시 포함)
type Report struct {
	RunID      string    `json:"run_id"`
	ScenarioID string    `json:"scenario_id"`
	InputHash  string    `json:"input_hash"`
	CreatedAt  time.Time `json:"created_at"`

	WACC            *wacc.Result          `json:"wacc,omitempty"`
	DCF             *dcf.Result           `json:"dcf,omitempty"`
	DCFDiscountRate float64               `json:"dcf_discount_rate,omitempty"` // 실제 사용한 WACC (%)
	Bond            *bond.Result          `json:"bond,omitempty"`
	BondSensitivity []bond.SensitivityRow `json:"bond_sensitivity,omitempty"`
	Gordon          *ddm.Result           `json:"gordon,omitempty"`
	TwoStage        *ddm.Result           `json:"two_stage,omitempty"`
	Kelly           *kelly.Result         `json:"kelly,omitempty"`
	Grids           Grids                 `json:"grids"`

	Conditions []Condition `json:"conditions,omitempty"`
	Warnings   []Warning   `json:"warnings,omitempty"`
}

// Evaluate validates s, takes one deep-copied snapshot and computes every
// base result and every grid from that snapshot.
func Evaluate(s *Scenario) (*Report, error) {
	if err := Validate(s); err != nil {
		return nil, err
	}

	snap := s.Clone()
	hash, err := Hash(snap)
	if err != nil {
		return nil, fmt.Errorf("hash scenario: %w", err)
	}

	r := &Report{
		RunID:      uuid.NewString(),
		ScenarioID: snap.Meta.ScenarioID,
		InputHash:  hash,
		CreatedAt:  time.Now(),
	}
	e := &evaluator{snap: snap, report: r}

	steps := []func() error{e.evalWACC, e.evalDCF, e.evalBond, e.evalDDM, e.evalKelly}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}

	r.Warnings = append(Warn(snap), warnResults(r)...)
	return r, nil
}

type evaluator struct {
	snap    *Scenario
	report  *Report
	waccErr error
}

// record keeps condition errors in the report and returns defects.
func (e *evaluator) record(section string, err error) error {
	if err == nil {
		return nil
	}
	if !calc.IsCondition(err) {
		return fmt.Errorf("%s: %w", section, err)
	}

	e.report.Conditions = append(e.report.Conditions, Condition{
		Section:   section,
		Condition: calc.ConditionName(err),
		Field:     calc.FieldOf(err),
		Message:   err.Error(),
	})
	return nil
}

func (e *evaluator) evalWACC() error {
	if e.snap.WACC == nil {
		return nil
	}

	res, err := wacc.Compose(*e.snap.WACC)
	e.waccErr = err
	e.report.WACC = res
	return e.record("wacc", err)
}

func (e *evaluator) evalDCF() error {
	sec := e.snap.DCF
	if sec == nil {
		return nil
	}

	in := sec.Inputs.Clone()
	baseOK := true
	if sec.UseWACCResult {
		if e.report.WACC == nil {
			baseOK = false
			if err := e.record("dcf", e.waccErr); err != nil {
				return err
			}
		} else {
			in.WACC = e.report.WACC.WACC
		}
	}

	if baseOK {
		res, err := dcf.Calculate(in)
		if err := e.record("dcf", err); err != nil {
			return err
		}
		if res != nil {
			e.report.DCF = res
			e.report.DCFDiscountRate = in.WACC
		}
	}

	if sec.Grid != nil {
		g, err := grid.DCFPrice(in,
			grid.Axis{Name: grid.AxisWACC, Values: sec.Grid.Rows},
			grid.Axis{Name: grid.AxisGrowth, Values: sec.Grid.Cols})
		if err != nil {
			return fmt.Errorf("dcf grid: %w", err)
		}
		e.report.Grids.DCF = g
	}

	return nil
}

func (e *evaluator) evalBond() error {
	sec := e.snap.Bond
	if sec == nil {
		return nil
	}

	res, err := bond.Analyze(sec.Inputs)
	if err := e.record("bond", err); err != nil {
		return err
	}
	e.report.Bond = res

	if res != nil {
		shocks := sec.Shocks
		if len(shocks) == 0 {
			shocks = bond.DefaultShocks()
		}
		rows, err := bond.Simulate(sec.Inputs, shocks)
		if err := e.record("bond.sensitivity", err); err != nil {
			return err
		}
		e.report.BondSensitivity = rows
	}

	if sec.Grid != nil {
		g, err := grid.BondPrice(sec.Inputs,
			grid.Axis{Name: grid.AxisYTM, Values: sec.Grid.Rows},
			grid.Axis{Name: grid.AxisMaturity, Values: sec.Grid.Cols})
		if err != nil {
			return fmt.Errorf("bond grid: %w", err)
		}
		e.report.Grids.Bond = g
	}

	return nil
}

func (e *evaluator) evalDDM() error {
	sec := e.snap.DDM
	if sec == nil {
		return nil
	}

	if sec.Gordon != nil {
		res, err := ddm.Gordon(*sec.Gordon)
		if err := e.record("ddm.gordon", err); err != nil {
			return err
		}
		e.report.Gordon = res
	}

	if sec.TwoStage != nil {
		res, err := ddm.TwoStage(*sec.TwoStage)
		if err := e.record("ddm.two_stage", err); err != nil {
			return err
		}
		e.report.TwoStage = res
	}

	if sec.Grid != nil {
		g, err := grid.DDMValue(*sec.Gordon,
			grid.Axis{Name: grid.AxisCostOfEquity, Values: sec.Grid.Rows},
			grid.Axis{Name: grid.AxisDDMGrowth, Values: sec.Grid.Cols})
		if err != nil {
			return fmt.Errorf("ddm grid: %w", err)
		}
		e.report.Grids.DDM = g
	}

	return nil
}

func (e *evaluator) evalKelly() error {
	if e.snap.Kelly == nil {
		return nil
	}

	res, err := kelly.Size(*e.snap.Kelly)
	if err := e.record("kelly", err); err != nil {
		return err
	}
	e.report.Kelly = res
	return nil
}
