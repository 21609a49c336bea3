package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"intervu/internal/ai"
	"intervu/internal/config"
	"intervu/internal/observability"
	"intervu/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start an HTTP server exposing interview evaluation, sessions, profiles and
résumé coaching as a JSON API.

Available endpoints:
- POST /evaluate, POST /profile
- GET /questions/fields, POST /questions/sample
- POST /sessions, GET|DELETE /sessions/{id}
- POST /sessions/{id}/answers, POST /sessions/{id}/complete
- POST /coach/summary, /coach/recommendations, /coach/chat
- GET /health, GET /stats, GET /metrics (when Prometheus is enabled)

TLS Configuration:
- Use --tls-mode to set TLS mode: disabled, server, mutual
- Use --cert-file and --key-file for TLS certificates
- Use --ca-file for mutual TLS client certificate verification`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (default from config)")
	serveCmd.Flags().String("host", "", "Host to bind to (default from config)")
	serveCmd.Flags().String("tls-mode", "", "TLS mode: disabled, server, mutual (overrides config)")
	serveCmd.Flags().String("cert-file", "", "Server certificate file (PEM, overrides config)")
	serveCmd.Flags().String("key-file", "", "Server private key file (PEM, overrides config)")
	serveCmd.Flags().String("ca-file", "", "CA certificate file for client cert verification (PEM, overrides config)")
}

// applyServeFlags copies explicitly set flags over the loaded configuration
func applyServeFlags(cmd *cobra.Command, cfg *config.Config) {
	overrides := []struct {
		flag   string
		target *string
	}{
		{"port", &cfg.Server.Port},
		{"host", &cfg.Server.Host},
		{"tls-mode", &cfg.Server.TLS.Mode},
		{"cert-file", &cfg.Server.TLS.CertFile},
		{"key-file", &cfg.Server.TLS.KeyFile},
		{"ca-file", &cfg.Server.TLS.CAFile},
	}
	for _, o := range overrides {
		if cmd.Flags().Changed(o.flag) {
			*o.target, _ = cmd.Flags().GetString(o.flag)
		}
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	applyServeFlags(cmd, cfg)
	if err := cfg.ValidateTLSConfig(); err != nil {
		return fmt.Errorf("invalid TLS configuration: %w", err)
	}

	om, err := observability.NewObservabilityManager(cfg.Observability, Version)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := om.Shutdown(ctx); err != nil {
			logger.LogError(err, "Failed to shutdown observability")
		}
	}()
	metrics := om.GetMetrics()

	rt, err := newInterviewRuntime(cmd.Context(), cfg, logger, metrics)
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.Close(); err != nil {
			logger.Warn("Failed to release resources", "error", err)
		}
	}()

	coachService, err := newAIService(cfg, "coach", logger, metrics)
	if err != nil {
		return err
	}
	defer func() {
		if err := coachService.Close(); err != nil {
			logger.Warn("Failed to close coach AI service", "error", err)
		}
	}()

	deps := server.Dependencies{
		Interview: rt.service,
		Coach:     ai.NewCoach(coachService),
		Questions: rt.questions,
		AIServices: map[string]server.ModelService{
			"evaluate": rt.evaluator,
			"coach":    coachService,
		},
		Observability: om,
	}

	srv := server.NewServer(cfg, server.ConfigFrom(cfg, Version), deps, logger)
	return srv.Start(cmd.Context())
}
