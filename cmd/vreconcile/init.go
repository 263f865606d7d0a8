package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vreconcile/internal/config"
	"github.com/vango-dev/vreconcile/internal/errors"
	"github.com/vango-dev/vreconcile/internal/templates"
)

func initCmd() *cobra.Command {
	var (
		force    bool
		template string
		name     string
		list     bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a starter config and example scenario",
		Long: `Write vreconcile.json and a starter scenario into dir (default: the
working directory). The scenario comes from one of the built-in templates.

Examples:
  vreconcile init
  vreconcile init ./playground --template fragments --name groups
  vreconcile init --list`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				out := cmd.OutOrStdout()
				for _, n := range templates.List() {
					tmpl, _ := templates.Get(n)
					fmt.Fprintf(out, "%-12s %s\n", tmpl.Name, tmpl.Description)
				}
				return nil
			}
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(cmd, dir, template, name, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing files")
	cmd.Flags().StringVarP(&template, "template", "t", "keyed", "Scenario template")
	cmd.Flags().StringVar(&name, "name", "example", "Scenario name")
	cmd.Flags().BoolVar(&list, "list", false, "List the available templates")

	return cmd
}

func runInit(cmd *cobra.Command, dir, templateName, name string, force bool) error {
	tmpl, err := templates.Get(templateName)
	if err != nil {
		return err
	}
	if config.Exists(dir) && !force {
		return errors.New("E404").WithDetail(filepath.Join(dir, config.ConfigFileName))
	}

	cfg := config.New()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := cfg.SaveTo(filepath.Join(dir, config.ConfigFileName)); err != nil {
		return err
	}

	written, err := tmpl.Create(filepath.Join(dir, cfg.Scenarios.Dir), templates.Config{Name: name})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote %s\n", cfg.Path())
	for _, path := range written {
		fmt.Fprintf(out, "Wrote %s\n", path)
	}
	fmt.Fprintf(out, "Try: vreconcile run %s\n", name)
	return nil
}
