// Package main is the CLI entry point for brewsvc.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/eliteGoblin/focusd/brewsvc/internal/domain"
	"github.com/eliteGoblin/focusd/brewsvc/internal/infra"
	"github.com/eliteGoblin/focusd/brewsvc/internal/service"
)

var (
	// Version info (set via ldflags)
	Version   = "0.1.0"
	Commit    = "dev"
	BuildTime = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "brewsvc",
	Short: "Homebrew taps, dependents and service paths",
	Long: `brewsvc manages Homebrew taps, reports which formulae depend on
others, and tells you where background service definitions belong
on this host (launchd on macOS, systemd on Linux).`,
	Version:      Version,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Prints version, commit, and build time. Use --json for machine-readable output.`,
	Run:   runVersion,
}

var (
	verbose    bool
	jsonOutput bool
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log to stderr at debug level")
	versionCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	rootCmd.AddCommand(servicesCmd)
	rootCmd.AddCommand(tapCmd)
	rootCmd.AddCommand(untapCmd)
	rootCmd.AddCommand(usesCmd)
	rootCmd.AddCommand(versionCmd)
}

// app bundles what every command needs. Built per invocation.
type app struct {
	env    domain.Environment
	layout *infra.Layout
	config *infra.Config
	probe  domain.PlatformProbe
	logger *zap.Logger
}

func newApp() (*app, error) {
	env := infra.OSEnvironment{}
	layout := infra.DetectLayout(env, os.Geteuid() == 0)

	config, err := infra.LoadConfig(layout.ConfigPath, env, runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return nil, err
	}

	logger := createLogger(layout, config.LogLevel)
	probe := infra.NewPlatformProbe(runtime.GOOS, infra.ProbeOptions{
		Env:          env,
		Logger:       logger,
		QueryTimeout: config.ProcessQueryTimeout.Duration,
	})

	logger.Debug("starting",
		zap.String("version", Version),
		zap.String("layout", string(layout.Privilege)),
		zap.String("prefix", config.Prefix))

	return &app{
		env:    env,
		layout: layout,
		config: config,
		probe:  probe,
		logger: logger,
	}, nil
}

func (a *app) resolver() *service.Resolver {
	return service.NewResolver(a.probe, a.env)
}

func (a *app) close() {
	_ = a.logger.Sync()
}

// createLogger writes JSON logs to the data dir, or debug logs to stderr
// with --verbose.
func createLogger(layout *infra.Layout, level string) *zap.Logger {
	if verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			return logger
		}
	}

	config := zap.NewProductionConfig()
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		config.Level = zap.NewAtomicLevelAt(lvl)
	}
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if err := os.MkdirAll(layout.DataDir, 0700); err == nil {
		config.OutputPaths = []string{layout.LogPath}
		config.ErrorOutputPaths = []string{layout.LogPath}
	}

	logger, err := config.Build()
	if err != nil {
		// Fallback to stderr if file logging fails
		logger, _ = zap.NewProduction()
	}
	return logger
}

func runVersion(cmd *cobra.Command, args []string) {
	if jsonOutput {
		fmt.Printf(`{"version":"%s","commit":"%s","build_time":"%s"}`+"\n",
			Version, Commit, BuildTime)
	} else {
		fmt.Printf("brewsvc %s (commit: %s, built: %s)\n",
			Version, Commit, BuildTime)
	}
}
