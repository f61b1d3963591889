package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/valuecalc/internal/ddm"
)

// ddmCmd represents the ddm command group
var ddmCmd = &cobra.Command{
	Use:   "ddm",
	Short: "배당할인모형 (Gordon / 2단계)",
	Long: `배당할인모형으로 주당 내재가치를 계산합니다.

Subcommands:
  gordon      - 항상성장 모형
  two-stage   - 고성장 N년 후 영구성장

Example:
  go run ./cmd/valuecalc ddm gordon --d0 1000 --ke 8 --g 3
  go run ./cmd/valuecalc ddm two-stage --d0 1000 --ke 8 --g1 12 --years 5 --g2 3`,
}

var gordonCmd = &cobra.Command{
	Use:   "gordon",
	Short: "Gordon 항상성장 DDM",
	RunE:  runGordon,
}

var twoStageCmd = &cobra.Command{
	Use:   "two-stage",
	Short: "2단계 DDM",
	RunE:  runTwoStage,
}

var (
	gordonIn   ddm.GordonInputs
	twoStageIn ddm.TwoStageInputs
)

func init() {
	rootCmd.AddCommand(ddmCmd)
	ddmCmd.AddCommand(gordonCmd)
	ddmCmd.AddCommand(twoStageCmd)

	addGordonFlags(gordonCmd, &gordonIn)

	twoStageCmd.Flags().Float64Var(&twoStageIn.CurrentDividend, "d0", 0, "최근 주당배당금 D0 (원)")
	twoStageCmd.Flags().Float64Var(&twoStageIn.CostOfEquity, "ke", 0, "자기자본비용 (%)")
	twoStageCmd.Flags().Float64Var(&twoStageIn.HighGrowthRate, "g1", 0, "고성장률 (%)")
	twoStageCmd.Flags().IntVar(&twoStageIn.HighGrowthYears, "years", 5, "고성장 기간 (년)")
	twoStageCmd.Flags().Float64Var(&twoStageIn.TerminalGrowthRate, "g2", 0, "영구성장률 (%)")
}

func addGordonFlags(cmd *cobra.Command, in *ddm.GordonInputs) {
	cmd.Flags().Float64Var(&in.CurrentDividend, "d0", 0, "최근 주당배당금 D0 (원)")
	cmd.Flags().Float64Var(&in.CostOfEquity, "ke", 0, "자기자본비용 (%)")
	cmd.Flags().Float64Var(&in.GrowthRate, "g", 0, "배당성장률 (%)")
}

func runGordon(cmd *cobra.Command, args []string) error {
	res, err := ddm.Gordon(gordonIn)
	if err != nil {
		return reportCondition(err)
	}

	return render(res, func() {
		PrintHeader("Gordon Growth DDM")
		PrintKeyValue("D1", formatNumber(res.NextDividend, 2), 16)
		PrintKeyValue("Intrinsic Value", formatNumber(res.IntrinsicValue, 0)+" 원", 16)
	})
}

func runTwoStage(cmd *cobra.Command, args []string) error {
	res, err := ddm.TwoStage(twoStageIn)
	if err != nil {
		return reportCondition(err)
	}

	return render(res, func() {
		PrintHeader("Two-Stage DDM")

		widths := []int{6, 12, 12}
		PrintTableHeader([]string{"Year", "Dividend", "PV"}, widths)
		for _, row := range res.Dividends {
			PrintTableRow([]string{
				fmt.Sprintf("%d", row.Year),
				formatNumber(row.Dividend, 2),
				formatNumber(row.PV, 2),
			}, widths)
		}
		PrintSeparator()

		PrintKeyValue("Σ PV(Dividends)", formatNumber(res.PVDividends, 2), 16)
		PrintKeyValue("Terminal Value", formatNumber(res.TerminalValue, 2), 16)
		PrintKeyValue("PV(TV)", formatNumber(res.PVTerminalValue, 2), 16)
		PrintKeyValue("Intrinsic Value", formatNumber(res.IntrinsicValue, 0)+" 원", 16)
	})
}
