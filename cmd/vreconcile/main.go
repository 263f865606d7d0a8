package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vreconcile/internal/config"
	"github.com/vango-dev/vreconcile/internal/errors"
	"github.com/vango-dev/vreconcile/pkg/scenario"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "vreconcile",
		Short: "Run and inspect virtual tree reconciliation scenarios",
		Long: `vreconcile plays scripted sequences of UI trees through the
reconciler and reports the host operations each step performed.

Scenarios are YAML files read from a directory or an S3 bucket:

  • run     play one scenario and print its report
  • list    list the available scenarios
  • serve   serve reports over HTTP and WebSocket
  • init    write a starter config and scenario`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Path to vreconcile.json (default: nearest in working directory)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format: text or json")

	rootCmd.AddCommand(
		runCmd(flags),
		listCmd(flags),
		serveCmd(flags),
		initCmd(),
		versionCmd(),
	)
	return rootCmd
}

// loadConfig reads the config named by --config, or the nearest one above
// the working directory, falling back to defaults when there is none.
// Command-line log settings override the file.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.configPath != "" {
		cfg, err = config.LoadFile(flags.configPath)
	} else {
		cfg, err = config.LoadFromWorkingDir()
		if stderrors.Is(err, errors.New("E401")) {
			cfg, err = config.New(), nil
		}
	}
	if err != nil {
		return nil, err
	}

	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.LogFormat = flags.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger. Logs go to w so they never mix with
// report output on stdout.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// newSource returns the scenario source the config selects.
func newSource(ctx context.Context, cfg *config.Config) (scenario.Source, error) {
	if !cfg.UseS3() {
		return scenario.NewDirSource(cfg.ScenariosPath()), nil
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Scenarios.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Scenarios.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return scenario.NewS3Source(s3.NewFromConfig(awsCfg), cfg.Scenarios.Bucket, cfg.Scenarios.Prefix), nil
}
