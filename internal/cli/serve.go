package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/axiome/firstprinciples/internal/api"
	"github.com/axiome/firstprinciples/internal/config"
)

// shutdownTimeout bounds how long in-flight requests may run after a signal.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		envFile    string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the editor's backend API",
		Long: `Run the HTTP API used by the browser editor.

Configuration is read from an optional TOML file (--config), a .env file and
the environment (FIRSTPRINCIPLES_ADDR, REDIS_URL, MONGO_URI, GEMINI_API_KEY,
GEMINI_MODEL, CORS_ORIGINS). Redis, MongoDB and Gemini are optional.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var envFiles []string
			if envFile != "" {
				envFiles = append(envFiles, envFile)
			}
			cfg, err := config.Load(configPath, envFiles...)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")
	cmd.Flags().StringVar(&envFile, "env-file", "", "load environment from this file instead of ./.env")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

// runServe starts the server and shuts it down when ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, cfg *config.Config) error {
	logger := loggerFromContext(ctx)
	logger.Debug("configuration", "config", fmt.Sprintf("%+v", cfg.Redacted()))

	app, err := api.NewApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	srv := api.NewServer(cfg.Server.Addr, app.Handler, logger)
	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errc
}
