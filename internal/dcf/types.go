package dcf

// Inputs DCF 입력 스냅샷
// 금액은 억원, 주식 수는 백만주, 비율은 퍼센트 정수 표기
type Inputs struct {
	FCF               []float64 `json:"fcf" yaml:"fcf"`                               // 연도별 예측 FCF (억원)
	WACC              float64   `json:"wacc" yaml:"wacc"`                             // 할인율 (%)
	TerminalGrowth    float64   `json:"terminalGrowth" yaml:"terminal_growth"`        // 영구성장률 (%)
	SharesOutstanding float64   `json:"sharesOutstanding" yaml:"shares_outstanding"` // 발행주식수 (백만주)
	NetDebt           float64   `json:"netDebt" yaml:"net_debt"`                      // 순부채 (억원)
}

// Clone returns a deep copy so a snapshot never aliases the caller's slice.
func (in Inputs) Clone() Inputs {
	out := in
	if in.FCF != nil {
		out.FCF = make([]float64, len(in.FCF))
		copy(out.FCF, in.FCF)
	}
	return out
}

// Projection 연도별 현금흐름 현재가치
type Projection struct {
	Year           int     `json:"year"`
	FCF            float64 `json:"fcf"`
	DiscountFactor float64 `json:"discountFactor"`
	PV             float64 `json:"pv"`
}

// TerminalValue Gordon 성장모형 잔존가치
type TerminalValue struct {
	Value        float64 `json:"value"`        // 억원, N년차 시점
	PresentValue float64 `json:"presentValue"` // 억원, 현재 시점
	Horizon      int     `json:"horizon"`      // 할인 기간 N
}

// Bridge 기업가치 → 자기자본가치 → 주당가치
type Bridge struct {
	EnterpriseValue float64  `json:"enterpriseValue"`
	EquityValue     float64  `json:"equityValue"`
	IntrinsicPrice  float64  `json:"intrinsicPrice"` // 원/주
	TVPercentage    *float64 `json:"tvPercentage"`   // 기업가치 중 잔존가치 비중 (%), EV == 0 이면 nil
}

// Result DCF 결과 (UI 계약 필드명 그대로)
// 불변식: EnterpriseValue == Σ PVFCF + PVTerminalValue, EquityValue == EnterpriseValue - NetDebt
type Result struct {
	PVFCF           []float64 `json:"pvFCF"`
	TerminalValue   float64   `json:"terminalValue"`
	PVTerminalValue float64   `json:"pvTerminalValue"`
	EnterpriseValue float64   `json:"enterpriseValue"`
	EquityValue     float64   `json:"equityValue"`
	IntrinsicPrice  float64   `json:"intrinsicPrice"`
	TVPercentage    *float64  `json:"tvPercentage"` // nil = N/A
}

// SumPVFCF sums the per-year present values in forecast order.
func (r *Result) SumPVFCF() float64 {
	var sum float64
	for _, pv := range r.PVFCF {
		sum += pv
	}
	return sum
}
