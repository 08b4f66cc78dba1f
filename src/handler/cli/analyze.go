package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"quality-analyzer/src/controller"
	"quality-analyzer/src/model"
	"quality-analyzer/src/service/parser"
	"quality-analyzer/src/util"
)

func (h *Handler) analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <path>",
		Short: "Analyze a file or directory",
		Long:  "Runs all enabled detectors against the JavaScript and TypeScript files under a path and reports issues and scores",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := h.applyOverrides(); err != nil {
				return &ExitError{Code: ExitFatal, Err: err}
			}

			p, err := parser.New(h.cfg.Parser)
			if err != nil {
				return &ExitError{Code: ExitFatal, Err: err}
			}

			util.Info("Analyzing path: %s (file timeout: %v)", args[0], h.cfg.Analysis.FileTimeout)

			// Run analysis
			analysisCtrl := controller.NewAnalysisController(h.cfg, p)
			report, err := analysisCtrl.Analyze(context.Background(), controller.AnalyzeRequest{
				Path:      args[0],
				Detectors: h.v.GetStringSlice("detectors"),
			})
			if err != nil {
				util.Error("Analysis failed: %v", err)
				return &ExitError{Code: ExitFatal, Err: fmt.Errorf("analysis failed: %w", err)}
			}

			if err := h.writeOutput(cmd, report); err != nil {
				return &ExitError{Code: ExitFatal, Err: err}
			}

			if failUnder := h.v.GetFloat64("fail-under"); failUnder > 0 && report.Summary.Score < failUnder {
				return &ExitError{
					Code: ExitThreshold,
					Err:  fmt.Errorf("score %.2f is below --fail-under %.2f", report.Summary.Score, failUnder),
				}
			}
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output directory for report files")
	cmd.Flags().StringP("format", "f", "", "Output format (json, markdown, sarif)")
	cmd.Flags().IntP("concurrency", "j", 0, "Files read and parsed per batch")
	cmd.Flags().DurationP("timeout", "t", 0, "Per-file parse timeout")
	cmd.Flags().StringSliceP("detectors", "d", nil, "Detectors to run (default: all enabled)")
	cmd.Flags().String("min-severity", "", "Drop issues below this severity (low, medium, high, critical)")
	cmd.Flags().Float64("fail-under", 0, "Exit with code 2 when the overall score is below this value")

	bindFlags(h.v, cmd.Flags(), "output", "format", "concurrency", "timeout", "detectors", "min-severity", "fail-under")

	return cmd
}

// applyOverrides layers flags and QUALITY_* variables over the config file
func (h *Handler) applyOverrides() error {
	if h.v.IsSet("concurrency") {
		n := h.v.GetInt("concurrency")
		if n < 1 {
			return fmt.Errorf("concurrency must be at least 1, got %d", n)
		}
		h.cfg.Analysis.Concurrency = n
	}
	if h.v.IsSet("timeout") {
		h.cfg.Analysis.FileTimeout = h.v.GetDuration("timeout")
	}
	if h.v.IsSet("min-severity") {
		sev, err := model.ParseSeverity(h.v.GetString("min-severity"))
		if err != nil {
			return err
		}
		h.cfg.Severity.MinSeverity = string(sev)
	}
	if h.v.IsSet("format") {
		h.cfg.Output.Formats = []string{h.v.GetString("format")}
	}
	if h.v.IsSet("output") {
		h.cfg.Output.OutputDir = h.v.GetString("output")
	}
	return nil
}

func (h *Handler) writeOutput(cmd *cobra.Command, report *model.Report) error {
	stdout := cmd.OutOrStdout()
	reportCtrl := controller.NewReportController(h.cfg)

	switch {
	case h.v.GetString("output") != "":
		// Generate report files
		paths, err := reportCtrl.GenerateReports(report)
		if err != nil {
			return fmt.Errorf("generating reports: %w", err)
		}
		for _, path := range paths {
			fmt.Fprintf(stdout, "Report written to %s\n", path)
		}
		return writeSummary(stdout, report, useColor(stdout))

	case h.v.GetString("format") != "":
		output, err := reportCtrl.GenerateToString(report, h.v.GetString("format"))
		if err != nil {
			return fmt.Errorf("generating report: %w", err)
		}
		fmt.Fprintln(stdout, output)
		return nil

	default:
		return writeSummary(stdout, report, useColor(stdout))
	}
}

// useColor reports whether w is an interactive terminal
func useColor(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
