package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"recipe-resolver/internal/binding"
	"recipe-resolver/internal/ctxlog"
	"recipe-resolver/internal/diagnostic"
	"recipe-resolver/internal/logging"
	"recipe-resolver/internal/notify"
	"recipe-resolver/internal/recipe"
)

type rootOptions struct {
	logLevel string
	noColor  bool
	workers  int
	format   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "recipe-resolver",
		Short:         "Resolve property bindings of UI component recipes",
		Long:          "Resolve, for every property of every embedded instance, the declared variables it ultimately reads.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := logging.ParseLevel(opts.logLevel)
			if err != nil {
				return err
			}

			logger := logging.Setup(cmd.ErrOrStderr(), level, opts.noColor)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cmd.SetContext(ctxlog.WithLogger(ctx, logger))

			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored log output")
	cmd.PersistentFlags().IntVar(&opts.workers, "workers", binding.DefaultConfig().Workers,
		"redirection rows resolved in parallel (1 = sequential)")
	cmd.PersistentFlags().StringVarP(&opts.format, "format", "f", "yaml", "output format: yaml or json")

	cmd.AddCommand(newResolveCmd(opts))
	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newListenersCmd(opts))

	return cmd
}

func newResolveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve RECIPE",
		Short: "Print the resolved property and redirection tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, resolved, err := loadAndResolve(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), opts.format, resolved.Export())
		},
	}
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check RECIPE",
		Short: "Validate a recipe and make sure every binding resolves",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, resolved, err := loadAndResolve(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}

			bindings := 0
			for _, id := range resolved.Instances() {
				bindings += len(resolved.PropertiesOf(id))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d instances, %d bindings\n", len(resolved.Instances()), bindings)

			return nil
		},
	}
}

func newListenersCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "listeners RECIPE",
		Short: "Print the change-notification plan of every component",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, resolved, err := loadAndResolve(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}

			order, err := m.EmbeddingOrder()
			if err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), opts.format, notify.Build(m, resolved, order))
		},
	}
}

// loadAndResolve loads the recipe, reports structural diagnostics and
// resolves its bindings. Structural errors abort before resolution.
func loadAndResolve(ctx context.Context, path string, opts *rootOptions) (*recipe.Model, *binding.Resolved, error) {
	logger := ctxlog.FromContext(ctx)

	m, err := recipe.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}

	diags := recipe.Validate(m)
	for _, d := range diags.All() {
		level := slog.LevelInfo

		switch d.Severity {
		case diagnostic.SeverityError:
			level = slog.LevelError
		case diagnostic.SeverityWarning:
			level = slog.LevelWarn
		}

		logger.Log(ctx, level, d.Message, "code", d.Code, "component", d.Component, "path", d.Path)
	}

	if diags.HasErrors() {
		return nil, nil, fmt.Errorf("invalid recipe %s: %w", path, diags.Error())
	}

	resolver := binding.NewResolver(binding.Config{Workers: opts.workers})

	resolved, err := resolver.Resolve(ctx, m)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	logger.Info("resolved recipe", "path", path, "instances", len(resolved.Instances()))

	return m, resolved, nil
}

func writeOutput(w io.Writer, format string, v any) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case "yaml":
		data, err = yaml.Marshal(v)
	case "json":
		data, err = json.MarshalIndent(v, "", "  ")
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	if format == "json" {
		data = append(data, '\n')
	}

	_, err = w.Write(data)

	return err
}
