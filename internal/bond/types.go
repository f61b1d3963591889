package bond

// Classification 액면/할인/할증 구분
type Classification string

const (
	ClassPar      Classification = "par"      // 시장금리 == 표면금리
	ClassDiscount Classification = "discount" // 시장금리 > 표면금리
	ClassPremium  Classification = "premium"  // 시장금리 < 표면금리
)

// Inputs 채권 조건 (금리는 퍼센트 정수 표기)
type Inputs struct {
	FaceValue  float64 `json:"faceValue" yaml:"face_value"`
	CouponRate float64 `json:"couponRate" yaml:"coupon_rate"` // 연 표면금리 (%)
	MarketRate float64 `json:"marketRate" yaml:"market_rate"` // 시장금리/YTM (%)
	Maturity   float64 `json:"maturity" yaml:"maturity"`      // 잔존만기 (년)
	Frequency  int     `json:"frequency" yaml:"frequency"`    // 연 이자지급 횟수 {1, 2, 4}
}

// CashFlowRow 기간별 현금흐름
type CashFlowRow struct {
	Period         int     `json:"period"`
	Time           float64 `json:"time"` // 년 단위 (period / frequency)
	Coupon         float64 `json:"coupon"`
	Principal      float64 `json:"principal"` // 마지막 기간에만 0이 아님
	CashFlow       float64 `json:"cashFlow"`
	PresentValue   float64 `json:"presentValue"`
	TimeWeightedPV float64 `json:"timeWeightedPV"` // Time × PresentValue
}

// Schedule BondPricer 산출물
type Schedule struct {
	Rows            []CashFlowRow `json:"rows"`
	Price           float64       `json:"price"`
	CouponPerPeriod float64       `json:"couponPerPeriod"`
	RatePerPeriod   float64       `json:"ratePerPeriod"` // 소수 (0.02 = 2%)
	TotalPeriods    int           `json:"totalPeriods"`
	Frequency       int           `json:"frequency"`
}

// Profile 가격 민감도 계산에 필요한 4개 스칼라
// ⭐ 민감도 시뮬레이션은 이 값들만 사용
type Profile struct {
	Price            float64 `json:"price"`
	MacaulayDuration float64 `json:"macaulayDuration"` // 년
	ModifiedDuration float64 `json:"modifiedDuration"`
	Convexity        float64 `json:"convexity"`
}

// Result 채권 가격 + 위험 지표
type Result struct {
	Price            float64        `json:"price"`
	MacaulayDuration float64        `json:"macaulayDuration"`
	ModifiedDuration float64        `json:"modifiedDuration"`
	Convexity        float64        `json:"convexity"`
	Classification   Classification `json:"classification"`
	Schedule         []CashFlowRow  `json:"schedule"`
}

// Profile extracts the four risk scalars.
func (r *Result) Profile() Profile {
	return Profile{
		Price:            r.Price,
		MacaulayDuration: r.MacaulayDuration,
		ModifiedDuration: r.ModifiedDuration,
		Convexity:        r.Convexity,
	}
}

// DurationInputs UI 듀레이션 계산기 입력 계약
type DurationInputs struct {
	FaceValue       float64 `json:"faceValue" yaml:"face_value"`
	CouponRate      float64 `json:"couponRate" yaml:"coupon_rate"`
	YTM             float64 `json:"ytm" yaml:"ytm"`
	YearsToMaturity float64 `json:"yearsToMaturity" yaml:"years_to_maturity"`
	Frequency       int     `json:"frequency" yaml:"frequency"`
}

// DurationResult UI 듀레이션 계산기 출력 계약
type DurationResult struct {
	MacaulayDuration float64 `json:"macaulayDuration"`
	ModifiedDuration float64 `json:"modifiedDuration"`
	Convexity        float64 `json:"convexity"`
	BondPrice        float64 `json:"bondPrice"`
	PriceChange1bp   float64 `json:"priceChange1bp"` // +1bp 시 1차 근사 가격 변화
}

// SensitivityRow 금리 충격별 근사 vs 재계산 가격
type SensitivityRow struct {
	Shock           float64 `json:"shock"`           // Δr (소수, 0.01 = +100bp)
	ApproxChangePct float64 `json:"approxChangePct"` // ΔP/P 근사 (%)
	ApproxPrice     float64 `json:"approxPrice"`
	ExactPrice      float64 `json:"exactPrice"`
	Error           float64 `json:"error"` // ApproxPrice - ExactPrice
}
