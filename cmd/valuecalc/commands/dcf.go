package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/valuecalc/internal/dcf"
)

// dcfCmd represents the dcf command
var dcfCmd = &cobra.Command{
	Use:   "dcf",
	Short: "DCF 주당 내재가치 계산",
	Long: `연도별 FCF를 WACC로 할인하고 Gordon 잔존가치를 더해
기업가치 → 자기자본가치 → 주당가치를 계산합니다.

단위: FCF/순부채 억원, 주식 수 백만주, 비율 %

Example:
  go run ./cmd/valuecalc dcf --fcf 100,100,100,100,100 --wacc 10 --growth 2 --shares 10
  go run ./cmd/valuecalc dcf --fcf 120,130,140 --wacc 9 --growth 2.5 --shares 50 --net-debt 300 --json`,
	RunE: runDCF,
}

var (
	dcfIn  dcf.Inputs
	dcfFCF string
)

func init() {
	rootCmd.AddCommand(dcfCmd)

	addDCFFlags(dcfCmd, &dcfIn, &dcfFCF)
}

func addDCFFlags(cmd *cobra.Command, in *dcf.Inputs, fcf *string) {
	cmd.Flags().StringVar(fcf, "fcf", "", "연도별 FCF (억원, 쉼표 구분)")
	cmd.Flags().Float64Var(&in.WACC, "wacc", 0, "할인율 WACC (%)")
	cmd.Flags().Float64Var(&in.TerminalGrowth, "growth", 0, "영구성장률 (%)")
	cmd.Flags().Float64Var(&in.SharesOutstanding, "shares", 0, "발행주식수 (백만주)")
	cmd.Flags().Float64Var(&in.NetDebt, "net-debt", 0, "순부채 (억원)")
}

func runDCF(cmd *cobra.Command, args []string) error {
	fcf, err := parseFloats("fcf", dcfFCF)
	if err != nil {
		return err
	}
	in := dcfIn.Clone()
	in.FCF = fcf

	res, err := dcf.Calculate(in)
	if err != nil {
		return reportCondition(err)
	}

	return render(res, func() {
		PrintHeader("DCF Valuation")

		widths := []int{6, 14, 14}
		PrintTableHeader([]string{"Year", "FCF", "PV"}, widths)
		for i, pv := range res.PVFCF {
			PrintTableRow([]string{
				fmt.Sprintf("%d", i+1),
				formatNumber(fcf[i], 2),
				formatNumber(pv, 2),
			}, widths)
		}
		PrintSeparator()

		PrintKeyValue("Σ PV(FCF)", formatNumber(res.SumPVFCF(), 2)+" 억원", 18)
		PrintKeyValue("Terminal Value", formatNumber(res.TerminalValue, 2)+" 억원", 18)
		PrintKeyValue("PV(TV)", formatNumber(res.PVTerminalValue, 2)+" 억원", 18)
		PrintKeyValue("Enterprise Value", formatNumber(res.EnterpriseValue, 2)+" 억원", 18)
		PrintKeyValue("Equity Value", formatNumber(res.EquityValue, 2)+" 억원", 18)
		PrintKeyValue("Intrinsic Price", formatNumber(res.IntrinsicPrice, 0)+" 원", 18)
		PrintKeyValue("TV share of EV", formatOptionalPct(res.TVPercentage), 18)
	})
}
