// Package commands implements the astdiff CLI subcommands.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/astdiff/internal/config"
	"github.com/Sumatoshi-tech/astdiff/internal/render"
	"github.com/Sumatoshi-tech/astdiff/pkg/analyzer"
)

// analyzeArgCount is the number of arguments expected by the analyze command.
const analyzeArgCount = 2

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	var (
		output     string
		format     string
		configPath string
		scorer     bool
	)

	cmd := &cobra.Command{
		Use:   "analyze old.py new.py",
		Short: "Compare two files and report classified changes",
		Long: `Compare two versions of a Python module and classify the changes
per function and method.

Examples:
  astdiff analyze old.py new.py                # JSON report
  astdiff analyze -f summary old.py new.py     # Human-readable summary
  astdiff analyze -f table --scorer old.py new.py  # Table with line severities`,
		Args: cobra.ExactArgs(analyzeArgCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args[0], args[1], analyzeOptions{
				output:     output,
				format:     format,
				configPath: configPath,
				scorer:     scorer,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (json, summary, table)")
	cmd.Flags().StringVar(&configPath, "config", "", "config file path")
	cmd.Flags().BoolVar(&scorer, "scorer", false, "attach per-line severity records")

	return cmd
}

// analyzeOptions carries the analyze command flags.
type analyzeOptions struct {
	output     string
	format     string
	configPath string
	scorer     bool
}

func runAnalyze(cmd *cobra.Command, oldPath, newPath string, opts analyzeOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	// Flags override the config file.
	if opts.format != "" {
		cfg.Format = opts.format
	}

	if opts.scorer {
		cfg.Scorer = true
	}

	oldSource, err := os.ReadFile(oldPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", oldPath, err)
	}

	newSource, err := os.ReadFile(newPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", newPath, err)
	}

	var analyzerOpts []analyzer.Option
	if cfg.Scorer {
		analyzerOpts = append(analyzerOpts, analyzer.WithLineScorer())
	}

	started := time.Now()

	report, err := analyzer.New(analyzerOpts...).Analyze(cmd.Context(), oldSource, newSource)
	if err != nil {
		return err
	}

	slog.Debug("analysis complete",
		"old", oldPath,
		"new", newPath,
		"added", len(report.Added),
		"removed", len(report.Removed),
		"changed_functions", len(report.Functions),
		"changed_methods", len(report.Methods),
		"elapsed", time.Since(started),
	)

	renderer, err := render.New(cfg.Format, cfg.Color)
	if err != nil {
		return err
	}

	return writeReport(renderer, report, opts.output, cmd.OutOrStdout())
}

func writeReport(renderer *render.Renderer, report *analyzer.Report, output string, stdout io.Writer) error {
	writer := stdout

	if output != "" {
		outputFile, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer outputFile.Close()

		writer = outputFile
	}

	return renderer.Render(writer, report)
}
