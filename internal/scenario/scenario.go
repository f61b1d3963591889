package scenario

import (
	"github.com/wonny/valuecalc/internal/bond"
	"github.com/wonny/valuecalc/internal/dcf"
	"github.com/wonny/valuecalc/internal/ddm"
	"github.com/wonny/valuecalc/internal/kelly"
	"github.com/wonny/valuecalc/internal/wacc"
)

// Scenario 밸류에이션 시나리오 전체 입력 (YAML 한 문서 = 한 스냅샷)
// 섹션은 모두 선택. 최소 하나는 있어야 함
type Scenario struct {
	Meta  Meta          `yaml:"meta" json:"meta"`
	WACC  *wacc.Inputs  `yaml:"wacc,omitempty" json:"wacc,omitempty"`
	DCF   *DCFSection   `yaml:"dcf,omitempty" json:"dcf,omitempty"`
	Bond  *BondSection  `yaml:"bond,omitempty" json:"bond,omitempty"`
	DDM   *DDMSection   `yaml:"ddm,omitempty" json:"ddm,omitempty"`
	Kelly *kelly.Inputs `yaml:"kelly,omitempty" json:"kelly,omitempty"`
}

// Meta 메타 정보
type Meta struct {
	ScenarioID  string `yaml:"scenario_id" json:"scenario_id"`
	Version     string `yaml:"version" json:"version"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// GridSpec 2차원 민감도 축 값 (축 이름은 섹션이 정함)
type GridSpec struct {
	Rows []float64 `yaml:"rows" json:"rows"`
	Cols []float64 `yaml:"cols" json:"cols"`
}

// DCFSection DCF 입력 + 옵션
type DCFSection struct {
	dcf.Inputs `yaml:",inline"`

	// true면 wacc 섹션 결과를 할인율로 사용 (같은 스냅샷)
	UseWACCResult bool      `yaml:"use_wacc_result,omitempty" json:"use_wacc_result,omitempty"`
	Grid          *GridSpec `yaml:"grid,omitempty" json:"grid,omitempty"` // WACC × 영구성장률
}

// BondSection 채권 입력 + 금리 충격
type BondSection struct {
	bond.Inputs `yaml:",inline"`

	Shocks []float64 `yaml:"shocks,omitempty" json:"shocks,omitempty"` // 비어 있으면 bond.DefaultShocks
	Grid   *GridSpec `yaml:"grid,omitempty" json:"grid,omitempty"`     // YTM × 만기
}

// DDMSection 배당할인모형
type DDMSection struct {
	Gordon   *ddm.GordonInputs   `yaml:"gordon,omitempty" json:"gordon,omitempty"`
	TwoStage *ddm.TwoStageInputs `yaml:"two_stage,omitempty" json:"two_stage,omitempty"`
	Grid     *GridSpec           `yaml:"grid,omitempty" json:"grid,omitempty"` // Ke × g (gordon 기준)
}

// Clone returns a deep copy; evaluation only ever reads the copy.
func (s *Scenario) Clone() *Scenario {
	out := &Scenario{Meta: s.Meta}

	if s.WACC != nil {
		w := *s.WACC
		out.WACC = &w
	}
	if s.DCF != nil {
		d := *s.DCF
		d.Inputs = s.DCF.Inputs.Clone()
		d.Grid = s.DCF.Grid.clone()
		out.DCF = &d
	}
	if s.Bond != nil {
		b := *s.Bond
		b.Shocks = cloneFloats(s.Bond.Shocks)
		b.Grid = s.Bond.Grid.clone()
		out.Bond = &b
	}
	if s.DDM != nil {
		d := DDMSection{Grid: s.DDM.Grid.clone()}
		if s.DDM.Gordon != nil {
			g := *s.DDM.Gordon
			d.Gordon = &g
		}
		if s.DDM.TwoStage != nil {
			ts := *s.DDM.TwoStage
			d.TwoStage = &ts
		}
		out.DDM = &d
	}
	if s.Kelly != nil {
		k := *s.Kelly
		out.Kelly = &k
	}

	return out
}

func (g *GridSpec) clone() *GridSpec {
	if g == nil {
		return nil
	}
	return &GridSpec{Rows: cloneFloats(g.Rows), Cols: cloneFloats(g.Cols)}
}

func cloneFloats(v []float64) []float64 {
	if v == nil {
		return nil
	}
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
