package controller

import (
	"os"
	"path/filepath"

	"quality-analyzer/src/config"
	"quality-analyzer/src/model"
	"quality-analyzer/src/service/report"
	"quality-analyzer/src/util"
)

// reportBaseName is the file name, without extension, of written reports
const reportBaseName = "quality-report"

// ReportController handles report generation
type ReportController struct {
	cfg *config.Config
}

// NewReportController creates a new report controller
func NewReportController(cfg *config.Config) *ReportController {
	return &ReportController{cfg: cfg}
}

// GenerateReports writes the report in every configured format and returns
// the written paths
func (c *ReportController) GenerateReports(analysisReport *model.Report) ([]string, error) {
	util.Debug("Generating reports for %d formats: %v", len(c.cfg.Output.Formats), c.cfg.Output.Formats)
	reportGenerator := report.NewGenerator(c.cfg.Output)
	var outputPaths []string

	for _, format := range c.cfg.Output.Formats {
		util.Debug("Generating %s report", format)
		output, err := reportGenerator.Generate(analysisReport, format)
		if err != nil {
			util.Error("Failed to generate %s report: %v", format, err)
			return nil, err
		}

		outputPath := c.getOutputPath(format)

		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
			util.Error("Failed to create output directory: %v", err)
			return nil, err
		}

		if err := os.WriteFile(outputPath, []byte(output), 0644); err != nil {
			util.Error("Failed to write report to %s: %v", outputPath, err)
			return nil, err
		}

		util.Info("Report written: %s", outputPath)
		outputPaths = append(outputPaths, outputPath)
	}

	return outputPaths, nil
}

// GenerateToString generates a report to a string
func (c *ReportController) GenerateToString(analysisReport *model.Report, format string) (string, error) {
	reportGenerator := report.NewGenerator(c.cfg.Output)
	return reportGenerator.Generate(analysisReport, format)
}

func (c *ReportController) getOutputPath(format string) string {
	return filepath.Join(c.cfg.Output.OutputDir, reportBaseName+"."+report.Extension(format))
}
