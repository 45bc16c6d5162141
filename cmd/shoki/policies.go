package main

import (
	"fmt"
	"strings"

	"github.com/harunnryd/shoki/internal/retriever"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"
)

var policiesCmd = &cobra.Command{
	Use:   "policies <question>",
	Short: "Look up company policies directly",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		comps, err := buildComponents(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		defer comps.close()

		question := strings.Join(args, " ")
		results := comps.retriever.Query(cmd.Context(), question, cfg.Retriever.TopK)

		out := cmd.OutOrStdout()
		if tbl := policiesTable(results); tbl != "" {
			fmt.Fprintln(out, tbl)
		}
		fmt.Fprintln(out, retriever.FormatResults(results))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(policiesCmd)
}

func policiesTable(results []retriever.Result) string {
	rows := make([][]string, 0, len(results))
	for i, res := range results {
		if res.Unavailable {
			return ""
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			res.Metadata["category"],
			fmt.Sprintf("%.2f", res.Score),
			res.Metadata["effective_date"],
		})
	}
	if len(rows) == 0 {
		return ""
	}

	purple := lipgloss.Color("99")
	gray := lipgloss.Color("245")

	headerStyle := lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Foreground(gray).Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(purple)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("Rank", "Category", "Score", "Effective").
		Rows(rows...)

	return t.String()
}
