package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/valuecalc/internal/scenario"
	"github.com/wonny/valuecalc/pkg/config"
	"github.com/wonny/valuecalc/pkg/logger"
)

// scenarioCmd represents the scenario command group
var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "YAML 시나리오 평가",
	Long: `YAML 시나리오 파일 하나로 WACC, DCF, 채권, DDM, Kelly와
민감도 그리드를 한 번에 계산합니다.

파일 경로 대신 이름만 주면 SCENARIO_DIR(기본 config/scenarios)에서 찾습니다.

Subcommands:
  run       - 평가 후 결과 출력
  hash      - 입력 해시 (재현성 확인)
  validate  - 구조 검증 + 경고

Example:
  go run ./cmd/valuecalc scenario run flat_five_year
  go run ./cmd/valuecalc scenario run ./my.yaml --json --out report.json
  go run ./cmd/valuecalc scenario hash flat_five_year`,
}

var scenarioRunCmd = &cobra.Command{
	Use:   "run <file|name>",
	Short: "시나리오 평가",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenario,
}

var scenarioHashCmd = &cobra.Command{
	Use:   "hash <file|name>",
	Short: "시나리오 입력 해시",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioHash,
}

var scenarioValidateCmd = &cobra.Command{
	Use:   "validate <file|name>",
	Short: "시나리오 검증",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioValidate,
}

var scenarioOut string

func init() {
	rootCmd.AddCommand(scenarioCmd)
	scenarioCmd.AddCommand(scenarioRunCmd, scenarioHashCmd, scenarioValidateCmd)

	scenarioRunCmd.Flags().StringVar(&scenarioOut, "out", "", "평가 결과 JSON 저장 경로")
}

// resolveScenario maps a bare name to SCENARIO_DIR/<name>.yaml.
func resolveScenario(arg string) (string, error) {
	if _, err := os.Stat(arg); err == nil {
		return arg, nil
	}
	if strings.ContainsRune(arg, os.PathSeparator) || filepath.Ext(arg) != "" {
		return "", fmt.Errorf("scenario file not found: %s", arg)
	}

	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("load config: %w", err)
	}

	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(cfg.ScenarioDir, arg+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("scenario %q not found in %s", arg, cfg.ScenarioDir)
}

func loadScenario(arg string) (*scenario.Scenario, string, error) {
	path, err := resolveScenario(arg)
	if err != nil {
		return nil, "", err
	}

	s, _, err := scenario.Load(path)
	if err != nil {
		return nil, path, fmt.Errorf("load %s: %w", path, err)
	}
	return s, path, nil
}

// cliLogger 로그는 stderr로 (stdout은 결과 전용)
func cliLogger() *logger.Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}
	return logger.NewWithWriter(os.Stderr, level)
}

func runScenario(cmd *cobra.Command, args []string) error {
	log := cliLogger()

	s, path, err := loadScenario(args[0])
	if err != nil {
		return err
	}

	report, err := scenario.Evaluate(s)
	if err != nil {
		log.WithError(err).WithField("scenario_id", s.Meta.ScenarioID).Error("Scenario evaluation failed")
		return err
	}

	log.WithFields(map[string]interface{}{
		"path":        path,
		"scenario_id": report.ScenarioID,
		"run_id":      report.RunID,
		"input_hash":  report.InputHash,
	}).Debug("Scenario evaluated")

	if scenarioOut != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		if err := os.WriteFile(scenarioOut, data, 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	return render(report, func() { printReport(report) })
}

func printReport(r *scenario.Report) {
	PrintHeader(fmt.Sprintf("Scenario %s", r.ScenarioID))
	PrintKeyValue("Run ID", r.RunID, 12)
	PrintKeyValue("Input Hash", r.InputHash, 12)
	PrintSeparator()

	if r.WACC != nil {
		PrintKeyValue("WACC", formatPct(r.WACC.WACC), 18)
	}
	if r.DCF != nil {
		PrintKeyValue("DCF discount rate", formatPct(r.DCFDiscountRate), 18)
		PrintKeyValue("Enterprise Value", formatNumber(r.DCF.EnterpriseValue, 2)+" 억원", 18)
		PrintKeyValue("Intrinsic Price", formatNumber(r.DCF.IntrinsicPrice, 0)+" 원", 18)
		PrintKeyValue("TV share of EV", formatOptionalPct(r.DCF.TVPercentage), 18)
	}
	if r.Bond != nil {
		PrintKeyValue("Bond Price", formatNumber(r.Bond.Price, 2), 18)
		PrintKeyValue("Modified Duration", fmt.Sprintf("%.4f", r.Bond.ModifiedDuration), 18)
		PrintKeyValue("Convexity", fmt.Sprintf("%.4f", r.Bond.Convexity), 18)
	}
	if r.Gordon != nil {
		PrintKeyValue("Gordon Value", formatNumber(r.Gordon.IntrinsicValue, 0)+" 원", 18)
	}
	if r.TwoStage != nil {
		PrintKeyValue("Two-Stage Value", formatNumber(r.TwoStage.IntrinsicValue, 0)+" 원", 18)
	}
	if r.Kelly != nil {
		PrintKeyValue("Kelly", formatPct(r.Kelly.FractionalKelly), 18)
	}

	if len(r.BondSensitivity) > 0 {
		PrintSeparator()
		printSensitivity(r.BondSensitivity)
	}

	if r.Grids.DCF != nil {
		printGrid("DCF Price (WACC × g)", r.Grids.DCF, 0)
	}
	if r.Grids.DDM != nil {
		printGrid("Gordon Value (Ke × g)", r.Grids.DDM, 0)
	}
	if r.Grids.Bond != nil {
		printGrid("Bond Price (YTM × maturity)", r.Grids.Bond, 2)
	}

	if len(r.Conditions) > 0 || len(r.Warnings) > 0 {
		PrintSeparator()
	}
	for _, c := range r.Conditions {
		PrintError(fmt.Sprintf("[%s] %s: %s", c.Section, c.Condition, c.Message))
	}
	for _, w := range r.Warnings {
		PrintWarning(fmt.Sprintf("%s: %s", w.Code, w.Message))
	}
}

func runScenarioHash(cmd *cobra.Command, args []string) error {
	s, _, err := loadScenario(args[0])
	if err != nil {
		return err
	}

	hash, err := scenario.Hash(s)
	if err != nil {
		return err
	}

	return render(map[string]string{
		"scenario_id": s.Meta.ScenarioID,
		"input_hash":  hash,
	}, func() {
		fmt.Fprintln(out, hash)
	})
}

func runScenarioValidate(cmd *cobra.Command, args []string) error {
	s, path, err := loadScenario(args[0])
	if err != nil {
		if scenario.IsValidationError(err) {
			PrintError(err.Error())
		}
		return err
	}

	warnings := scenario.Warn(s)
	return render(map[string]interface{}{
		"scenario_id": s.Meta.ScenarioID,
		"valid":       true,
		"warnings":    warnings,
	}, func() {
		PrintSuccess(fmt.Sprintf("%s is valid (%s)", path, s.Meta.ScenarioID))
		for _, w := range warnings {
			PrintWarning(fmt.Sprintf("%s: %s", w.Code, w.Message))
		}
	})
}
