package cli

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"quality-analyzer/src/service/detector"
)

var detectorDescriptions = map[string]string{
	"complexity":  "Cyclomatic complexity per function and per file",
	"naming":      "Identifier length, casing and vocabulary",
	"size":        "Long files, functions, methods, classes and parameter lists",
	"duplication": "Similar code blocks within and across files",
}

func (h *Handler) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", h.cfg.Agent.Name, h.cfg.Agent.Version)
		},
	}
}

func (h *Handler) detectorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detectors",
		Short: "List available detectors",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := detector.NewDefaultRegistry(h.cfg)

			data := make([][]string, 0, len(registry.Names()))
			for _, d := range registry.All() {
				enabled := "no"
				if d.IsEnabled() {
					enabled = "yes"
				}
				data = append(data, []string{d.Name(), enabled, detectorDescriptions[d.Name()]})
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header([]string{"Detector", "Enabled", "Description"})
			if err := table.Bulk(data); err != nil {
				return err
			}
			return table.Render()
		},
	}
}
