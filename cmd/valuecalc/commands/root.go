package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	jsonOutput bool
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "valuecalc",
	Short: "valuecalc - 결정론적 밸류에이션 / 채권 계산기",
	Long: `valuecalc Unified CLI

DCF, WACC(CAPM), 채권 가격/듀레이션/볼록성, 금리 민감도, 배당할인모형,
Kelly 비중, 2차원 민감도 그리드를 계산합니다.
같은 입력이면 항상 같은 결과를 냅니다.

Usage:
  go run ./cmd/valuecalc [command]

Examples:
  go run ./cmd/valuecalc dcf --fcf 100,100,100,100,100 --wacc 10 --growth 2 --shares 10
  go run ./cmd/valuecalc bond --face 10000 --coupon 3 --market 4 --maturity 5 --freq 2
  go run ./cmd/valuecalc scenario run flat_five_year
  go run ./cmd/valuecalc api`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print the JSON wire record instead of a table")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
