package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/valuecalc/internal/api"
	"github.com/wonny/valuecalc/internal/api/cache"
	"github.com/wonny/valuecalc/internal/api/handlers"
	"github.com/wonny/valuecalc/pkg/config"
	"github.com/wonny/valuecalc/pkg/logger"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST + WebSocket 계산 API 서버를 시작합니다.

Endpoints:
  GET  /health                    - Health check
  POST /api/calc/{dcf|wacc|bond|duration|kelly}
  POST /api/calc/bond/sensitivity
  POST /api/calc/ddm/{gordon|two-stage}
  POST /api/grid/{dcf|ddm|bond}   - 민감도 그리드
  POST /api/scenario              - YAML/JSON 시나리오 평가
  GET  /api/cache/stats           - 결과 캐시 통계
  GET  /ws/calc                   - 실시간 재계산 (WebSocket)

Example:
  go run ./cmd/valuecalc api
  go run ./cmd/valuecalc api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본: PORT 환경변수)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== valuecalc API Server ===")

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Override port if flag is set
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)
	defer log.Close()

	log.WithFields(map[string]interface{}{
		"port":       cfg.Port,
		"env":        cfg.Env,
		"cache":      cfg.Cache.Enabled,
		"rate_limit": cfg.RateLimit.RPS,
	}).Info("Initializing API server")

	// 3. Result cache
	var resultCache *cache.ResultCache
	if cfg.Cache.Enabled {
		resultCache = cache.NewResultCache(cfg.Cache.TTL, cfg.Cache.MaxEntries, log)
	}

	// 4. Create handlers
	calcHandler := handlers.NewCalcHandler(resultCache, log)
	h := api.Handlers{
		Calc:     calcHandler,
		Scenario: handlers.NewScenarioHandler(log),
		Live:     handlers.NewLiveHandler(calcHandler, log),
	}

	// 5. Create router
	router := api.NewRouter(h, api.NewLimiter(cfg.RateLimit), log)

	// 6. Create server
	server := api.New(cfg, log, router)

	// 7. Run until SIGINT/SIGTERM, then drain
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	if err := server.Run(ctx); err != nil {
		return err
	}

	log.Info("Server stopped")
	return nil
}
