package commands

import (
	"github.com/spf13/cobra"

	"github.com/wonny/valuecalc/internal/kelly"
)

// kellyCmd represents the kelly command
var kellyCmd = &cobra.Command{
	Use:   "kelly",
	Short: "Kelly 공식 포지션 비중",
	Long: `승률과 손익비로 Kelly 비중을 계산합니다. 기본은 Half-Kelly.

Example:
  go run ./cmd/valuecalc kelly --win 60 --payoff 1.5
  go run ./cmd/valuecalc kelly --win 55 --payoff 1 --fraction 0.25`,
	RunE: runKelly,
}

var kellyIn kelly.Inputs

func init() {
	rootCmd.AddCommand(kellyCmd)

	kellyCmd.Flags().Float64Var(&kellyIn.WinProbability, "win", 0, "승률 (%)")
	kellyCmd.Flags().Float64Var(&kellyIn.PayoffRatio, "payoff", 0, "손익비 (평균 이익 / 평균 손실)")
	kellyCmd.Flags().Float64Var(&kellyIn.Fraction, "fraction", kelly.DefaultFraction, "Kelly 배수 (0, 1]")
}

func runKelly(cmd *cobra.Command, args []string) error {
	res, err := kelly.Size(kellyIn)
	if err != nil {
		return reportCondition(err)
	}

	return render(res, func() {
		PrintHeader("Kelly Position Sizing")
		PrintKeyValue("Full Kelly", formatPct(res.FullKelly), 16)
		PrintKeyValue("Recommended", formatPct(res.FractionalKelly), 16)
		if !res.HasEdge {
			PrintWarning("No edge: expected value is not positive")
		}
	})
}
