package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/valuecalc/internal/bond"
)

// bondCmd represents the bond command
var bondCmd = &cobra.Command{
	Use:   "bond",
	Short: "채권 가격 / 듀레이션 / 볼록성 / 금리 민감도",
	Long: `고정 이표채의 현금흐름을 시장금리로 할인해 가격을 구하고
Macaulay/수정 듀레이션과 볼록성을 계산합니다.
--sensitivity를 주면 금리 충격별 근사 가격과 재계산 가격을 비교합니다.

Example:
  go run ./cmd/valuecalc bond --face 10000 --coupon 3 --market 4 --maturity 5 --freq 2
  go run ./cmd/valuecalc bond --face 10000 --coupon 3 --market 4 --maturity 5 --schedule --sensitivity
  go run ./cmd/valuecalc bond --face 10000 --coupon 3 --market 4 --maturity 5 --shocks -0.01,0.01`,
	RunE: runBond,
}

var (
	bondIn       bond.Inputs
	bondSchedule bool
	bondSens     bool
	bondShocks   string
)

// bondOutput --json 출력 레코드
type bondOutput struct {
	*bond.Result
	Sensitivity []bond.SensitivityRow `json:"sensitivity,omitempty"`
}

func init() {
	rootCmd.AddCommand(bondCmd)

	addBondFlags(bondCmd, &bondIn)
	bondCmd.Flags().BoolVar(&bondSchedule, "schedule", false, "기간별 현금흐름 표 출력")
	bondCmd.Flags().BoolVar(&bondSens, "sensitivity", false, "기본 금리 충격(±50~200bp) 민감도 출력")
	bondCmd.Flags().StringVar(&bondShocks, "shocks", "", "금리 충격 (소수, 0.01 = +100bp, 쉼표 구분)")
}

func addBondFlags(cmd *cobra.Command, in *bond.Inputs) {
	cmd.Flags().Float64Var(&in.FaceValue, "face", 10000, "액면가")
	cmd.Flags().Float64Var(&in.CouponRate, "coupon", 0, "표면금리 (%)")
	cmd.Flags().Float64Var(&in.MarketRate, "market", 0, "시장금리/YTM (%)")
	cmd.Flags().Float64Var(&in.Maturity, "maturity", 0, "잔존만기 (년)")
	cmd.Flags().IntVar(&in.Frequency, "freq", 2, "연 이자지급 횟수 (1, 2, 4)")
}

func runBond(cmd *cobra.Command, args []string) error {
	res, err := bond.Analyze(bondIn)
	if err != nil {
		return reportCondition(err)
	}

	output := bondOutput{Result: res}

	shocks, err := parseFloats("shocks", bondShocks)
	if err != nil {
		return err
	}
	if len(shocks) == 0 && bondSens {
		shocks = bond.DefaultShocks()
	}
	if len(shocks) > 0 {
		rows, err := bond.Simulate(bondIn, shocks)
		if err != nil {
			return reportCondition(err)
		}
		output.Sensitivity = rows
	}

	return render(output, func() {
		PrintHeader(fmt.Sprintf("Bond (%s)", res.Classification))
		PrintKeyValue("Price", formatNumber(res.Price, 2), 18)
		PrintKeyValue("Macaulay Duration", fmt.Sprintf("%.4f", res.MacaulayDuration), 18)
		PrintKeyValue("Modified Duration", fmt.Sprintf("%.4f", res.ModifiedDuration), 18)
		PrintKeyValue("Convexity", fmt.Sprintf("%.4f", res.Convexity), 18)

		if bondSchedule {
			PrintSeparator()
			widths := []int{6, 6, 12, 12, 12}
			PrintTableHeader([]string{"t", "Year", "CF", "PV", "t×PV"}, widths)
			for _, row := range res.Schedule {
				PrintTableRow([]string{
					fmt.Sprintf("%d", row.Period),
					fmt.Sprintf("%.2f", row.Time),
					formatNumber(row.CashFlow, 2),
					formatNumber(row.PresentValue, 2),
					formatNumber(row.TimeWeightedPV, 2),
				}, widths)
			}
		}

		if len(output.Sensitivity) > 0 {
			PrintSeparator()
			printSensitivity(output.Sensitivity)
		}
	})
}

func printSensitivity(rows []bond.SensitivityRow) {
	widths := []int{8, 10, 12, 12, 10}
	PrintTableHeader([]string{"Δr(bp)", "ΔP/P", "Approx", "Exact", "Error"}, widths)
	for _, row := range rows {
		PrintTableRow([]string{
			fmt.Sprintf("%+.0f", row.Shock*10000),
			formatPct(row.ApproxChangePct),
			formatNumber(row.ApproxPrice, 2),
			formatNumber(row.ExactPrice, 2),
			fmt.Sprintf("%.4f", row.Error),
		}, widths)
	}
}
