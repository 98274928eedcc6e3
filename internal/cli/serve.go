package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/forPelevin/reelplan/internal/api"
	"github.com/forPelevin/reelplan/internal/config"
	"github.com/forPelevin/reelplan/internal/logging"
	"github.com/forPelevin/reelplan/internal/pipeline"
	"github.com/forPelevin/reelplan/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planner over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	cmd.Flags().Int("port", 0, "Listen port (default from REELPLAN_PORT or 8788)")
	cmd.Flags().String("host", "127.0.0.1", "Listen address")
	cmd.Flags().String("writer", "", "Script writer: template or openrouter")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	port, _ := cmd.Flags().GetInt("port")
	host, _ := cmd.Flags().GetString("host")
	writerName, _ := cmd.Flags().GetString("writer")

	settings, policy, err := loadConfig(writerName)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cmd.Flags().Changed("port") {
		if err := config.ValidatePort(port); err != nil {
			return fmt.Errorf("config: invalid --port: %w", err)
		}
		settings.Port = port
	}

	logger := logging.NewLoggerTo(cmd.ErrOrStderr(), settings.LogLevel)
	writer, err := pipeline.NewWriter(settings, policy)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger.Info("planner configured",
		"script_writer", settings.ScriptWriter,
		"model", settings.OpenRouterModel,
		"api_key", logging.SanitizeToken(settings.OpenRouterAPIKey),
		"generation_timeout", policy.GenerationTimeout.String(),
	)

	srv := api.NewServer(api.ServerConfig{
		Host:      host,
		Port:      settings.Port,
		Planner:   usecase.New(usecase.Deps{Writer: writer, Policy: policy}),
		Policy:    policy,
		Logger:    logging.WithComponent(logger, "api"),
		StartTime: time.Now(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
