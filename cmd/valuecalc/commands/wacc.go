package commands

import (
	"github.com/spf13/cobra"

	"github.com/wonny/valuecalc/internal/wacc"
)

// waccCmd represents the wacc command
var waccCmd = &cobra.Command{
	Use:   "wacc",
	Short: "CAPM 자기자본비용 + WACC 계산",
	Long: `CAPM으로 Ke를 구하고 세후 Kd와 시가 가중치로 WACC를 계산합니다.

Example:
  go run ./cmd/valuecalc wacc --rf 3.5 --beta 1.2 --mrp 6 --kd 5 --tax 22 --equity 7000 --debt 3000`,
	RunE: runWACC,
}

var waccIn wacc.Inputs

func init() {
	rootCmd.AddCommand(waccCmd)

	waccCmd.Flags().Float64Var(&waccIn.RiskFreeRate, "rf", 0, "무위험이자율 (%)")
	waccCmd.Flags().Float64Var(&waccIn.Beta, "beta", 0, "베타")
	waccCmd.Flags().Float64Var(&waccIn.MarketRiskPremium, "mrp", 0, "시장위험프리미엄 (%)")
	waccCmd.Flags().Float64Var(&waccIn.CostOfDebt, "kd", 0, "세전 타인자본비용 (%)")
	waccCmd.Flags().Float64Var(&waccIn.TaxRate, "tax", 0, "법인세율 (%)")
	waccCmd.Flags().Float64Var(&waccIn.EquityValue, "equity", 0, "자기자본 시장가치")
	waccCmd.Flags().Float64Var(&waccIn.DebtValue, "debt", 0, "타인자본 시장가치")
}

func runWACC(cmd *cobra.Command, args []string) error {
	res, err := wacc.Compose(waccIn)
	if err != nil {
		return reportCondition(err)
	}

	return render(res, func() {
		PrintHeader("WACC")
		PrintKeyValue("Cost of Equity", formatPct(res.CostOfEquity), 22)
		PrintKeyValue("After-tax Cost of Debt", formatPct(res.AfterTaxCostOfDebt), 22)
		PrintKeyValue("Equity Weight", formatPct(res.EquityWeight*100), 22)
		PrintKeyValue("Debt Weight", formatPct(res.DebtWeight*100), 22)
		PrintSeparator()
		PrintKeyValue("WACC", formatPct(res.WACC), 22)
	})
}
