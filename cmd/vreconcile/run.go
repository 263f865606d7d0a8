package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vreconcile/internal/config"
	"github.com/vango-dev/vreconcile/internal/errors"
	"github.com/vango-dev/vreconcile/pkg/reconcile"
	"github.com/vango-dev/vreconcile/pkg/scenario"
)

func runCmd(flags *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "run <scenario|file.yaml>",
		Short: "Play a scenario and print its report",
		Long: `Play a scenario and print, for each step, the host operations the
reconciler performed, the lifecycle hooks that fired and the resulting HTML.

The argument is a scenario name from the configured source, or a path to a
YAML file.

Examples:
  vreconcile run todo-reorder
  vreconcile run ./scenarios/todo-reorder.yaml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			logger := newLogger(cfg, cmd.ErrOrStderr())
			ctx := cmd.Context()

			sc, err := loadScenarioArg(ctx, cfg, args[0])
			if err != nil {
				return err
			}

			runner := scenario.NewRunner(
				scenario.WithLogger(logger),
				scenario.WithEngineOptions(reconcile.WithMaxDeferred(cfg.Engine.MaxDeferred)),
			)
			report, err := runner.Run(ctx, sc, nil)
			if err != nil {
				return err
			}

			if asJSON {
				return report.WriteJSON(cmd.OutOrStdout())
			}
			return report.WriteText(cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")

	return cmd
}

// loadScenarioArg reads arg as a file when it names a YAML file, and from
// the configured source otherwise.
func loadScenarioArg(ctx context.Context, cfg *config.Config, arg string) (*scenario.Scenario, error) {
	ext := strings.ToLower(filepath.Ext(arg))
	if ext == ".yaml" || ext == ".yml" {
		data, err := os.ReadFile(arg)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.New("E504").WithDetail(arg)
			}
			return nil, errors.New("E503").WithDetail(arg).Wrap(err)
		}
		sc, err := scenario.Parse(data)
		if err != nil {
			return nil, err
		}
		if sc.Name == "" {
			sc.Name = strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
		}
		return sc, nil
	}

	source, err := newSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return source.Load(ctx, arg)
}
