package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"supervault_dashboard/internal/app/port"
	"supervault_dashboard/internal/bootstrap"
	"supervault_dashboard/internal/infrastructure/configloader"
	"supervault_dashboard/internal/pkg/logger"
)

var (
	cfgPath string
	isDebug bool
)

var rootCmd = &cobra.Command{
	Use:           "vaultctl",
	Short:         "Inspect SuperVaults from the terminal",
	Long:          `vaultctl queries the SuperVault pricing API and prints the same cards the dashboard shows.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config/config.yml", "config file")
	rootCmd.PersistentFlags().BoolVar(&isDebug, "debug", false, "enable debug logging")
}

// session holds what a command needs to talk to the pricing API.
type session struct {
	cfg        *configloader.Config
	components *bootstrap.Components
	dashboard  port.DashboardService
	zapLogger  *zap.Logger
}

func (s *session) close() {
	s.components.Close()
	_ = s.zapLogger.Sync()
}

// newSession loads the configuration and wires the dashboard service. Logs
// stay at warn level unless --debug is set so they do not drown the output.
func newSession(ctx context.Context) (*session, error) {
	_ = godotenv.Load()

	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := "warn"
	if isDebug {
		level = "debug"
	}
	zapLogger, err := logger.Init(level, true)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger := logger.NewSlogAdapter("component", "vaultctl")
	components, err := bootstrap.Build(ctx, cfg, zapLogger, appLogger)
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:        cfg,
		components: components,
		dashboard:  components.DashboardService(cfg, appLogger),
		zapLogger:  zapLogger,
	}, nil
}
