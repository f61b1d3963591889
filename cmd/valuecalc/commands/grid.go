package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/valuecalc/internal/bond"
	"github.com/wonny/valuecalc/internal/dcf"
	"github.com/wonny/valuecalc/internal/ddm"
	"github.com/wonny/valuecalc/internal/grid"
)

// gridCmd represents the grid command group
var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "2차원 민감도 그리드",
	Long: `기준 입력에서 두 변수만 바꿔 각 셀을 독립적으로 재계산합니다.
계산 조건을 만족하지 않는 셀(rate <= growth 등)은 N/A로 표시됩니다.

Subcommands:
  dcf    - WACC(행) × 영구성장률(열) → 주당가치
  ddm    - Ke(행) × g(열) → Gordon 내재가치
  bond   - YTM(행) × 만기(열) → 채권 가격

Example:
  go run ./cmd/valuecalc grid dcf --fcf 100,100,100,100,100 --shares 10 --rows 8,9,10,11,12 --cols 1,2,3
  go run ./cmd/valuecalc grid ddm --d0 1000 --rows 6,8,10 --cols 2,3,4
  go run ./cmd/valuecalc grid bond --coupon 3 --rows 3,4,5 --cols 1,5,10`,
}

var gridDCFCmd = &cobra.Command{
	Use:   "dcf",
	Short: "WACC × 영구성장률 DCF 그리드",
	RunE:  runGridDCF,
}

var gridDDMCmd = &cobra.Command{
	Use:   "ddm",
	Short: "Ke × g Gordon DDM 그리드",
	RunE:  runGridDDM,
}

var gridBondCmd = &cobra.Command{
	Use:   "bond",
	Short: "YTM × 만기 채권 가격 그리드",
	RunE:  runGridBond,
}

var (
	gridDCFIn  dcf.Inputs
	gridDCFFCF string
	gridDDMIn  ddm.GordonInputs
	gridBondIn bond.Inputs
	gridRows   string
	gridCols   string
)

func init() {
	rootCmd.AddCommand(gridCmd)
	gridCmd.AddCommand(gridDCFCmd, gridDDMCmd, gridBondCmd)

	addDCFFlags(gridDCFCmd, &gridDCFIn, &gridDCFFCF)
	addGordonFlags(gridDDMCmd, &gridDDMIn)
	addBondFlags(gridBondCmd, &gridBondIn)

	gridCmd.PersistentFlags().StringVar(&gridRows, "rows", "", "행 축 값 (쉼표 구분)")
	gridCmd.PersistentFlags().StringVar(&gridCols, "cols", "", "열 축 값 (쉼표 구분)")
}

// gridAxes parses --rows/--cols into named axes.
func gridAxes(rowName, colName string) (grid.Axis, grid.Axis, error) {
	rows, err := parseFloats("rows", gridRows)
	if err != nil {
		return grid.Axis{}, grid.Axis{}, err
	}
	cols, err := parseFloats("cols", gridCols)
	if err != nil {
		return grid.Axis{}, grid.Axis{}, err
	}
	return grid.Axis{Name: rowName, Values: rows}, grid.Axis{Name: colName, Values: cols}, nil
}

func runGridDCF(cmd *cobra.Command, args []string) error {
	fcf, err := parseFloats("fcf", gridDCFFCF)
	if err != nil {
		return err
	}
	base := gridDCFIn.Clone()
	base.FCF = fcf

	rows, cols, err := gridAxes(grid.AxisWACC, grid.AxisGrowth)
	if err != nil {
		return err
	}

	g, err := grid.DCFPrice(base, rows, cols)
	if err != nil {
		return reportCondition(err)
	}
	return render(g, func() { printGrid("DCF Price (WACC × g)", g, 0) })
}

func runGridDDM(cmd *cobra.Command, args []string) error {
	rows, cols, err := gridAxes(grid.AxisCostOfEquity, grid.AxisDDMGrowth)
	if err != nil {
		return err
	}

	g, err := grid.DDMValue(gridDDMIn, rows, cols)
	if err != nil {
		return reportCondition(err)
	}
	return render(g, func() { printGrid("Gordon Value (Ke × g)", g, 0) })
}

func runGridBond(cmd *cobra.Command, args []string) error {
	rows, cols, err := gridAxes(grid.AxisYTM, grid.AxisMaturity)
	if err != nil {
		return err
	}

	g, err := grid.BondPrice(gridBondIn, rows, cols)
	if err != nil {
		return reportCondition(err)
	}
	return render(g, func() { printGrid("Bond Price (YTM × maturity)", g, 2) })
}

func printGrid(title string, g *grid.Grid, prec int) {
	PrintHeader(title)

	widths := make([]int, len(g.Cols.Values)+1)
	header := make([]string, len(widths))
	widths[0] = 10
	header[0] = g.Rows.Name + `\` + g.Cols.Name
	if len(header[0]) > widths[0] {
		widths[0] = len(header[0])
	}
	for j, v := range g.Cols.Values {
		widths[j+1] = 14
		header[j+1] = fmt.Sprintf("%g", v)
	}
	PrintTableHeader(header, widths)

	for i, row := range g.Cells {
		values := make([]string, len(widths))
		values[0] = fmt.Sprintf("%g", g.Rows.Values[i])
		for j, c := range row {
			if c.Applicable {
				values[j+1] = formatNumber(*c.Value, prec)
			} else {
				values[j+1] = "N/A"
			}
		}
		PrintTableRow(values, widths)
	}

	if n := g.NotApplicable(); n > 0 {
		PrintSeparator()
		PrintWarning(fmt.Sprintf("%d cell(s) N/A", n))
	}
}
