// Command donut renders and previews animated donut charts.
//
// Usage:
//
//	donut defaultconfig -o chart.toml
//	donut render -c chart.toml -o chart.png
//	donut render -c chart.toml -o reveal.png --at 400ms
//	donut frames -c chart.toml -o frames/ --fps 30
//	donut preview -c chart.toml
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/gogpu/donut"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:          "donut",
		Short:        "Animated donut chart renderer",
		Long:         "donut renders animated donut charts to PNG files and previews them in the terminal.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				donut.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log chart lifecycle and animation phases to stderr")

	cmd.AddCommand(
		renderCommand(),
		framesCommand(),
		previewCommand(),
		easingsCommand(),
		defaultConfigCommand(),
	)
	return cmd
}

func easingsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "easings",
		Short: "List the easing names accepted in chart files",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range donut.EasingNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

func defaultConfigCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "defaultconfig",
		Short: "Write a chart file with demo data and the default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(output); err == nil {
				return fmt.Errorf("target file %s already exists", output)
			}
			b, err := marshalChartFile(output, defaultChartFile())
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, b, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "chart file written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "chart.toml", "path of the chart file to write (.toml, .yaml, .yml or .json)")
	return cmd
}
