package reporter

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Nomadcxx/yearstamp/internal/scanner"
)

// Render returns a table of every file decision followed by a totals line
func Render(summary *scanner.Summary) string {
	if summary == nil {
		return ""
	}

	var sb strings.Builder

	if len(summary.Results) > 0 {
		sb.WriteString(renderTable(summary.Results))
		sb.WriteString("\n")
	}
	sb.WriteString(Totals(summary))
	sb.WriteString("\n")

	if summary.Aborted {
		sb.WriteString("Run stopped by user; remaining files were not processed.\n")
	}

	return sb.String()
}

func renderTable(results []scanner.RenameResult) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"File", "New name", "Status", "Detail"})

	for _, r := range results {
		newName := r.NewName
		if newName == "" {
			newName = "-"
		}
		tw.AppendRow(table.Row{r.OldName, newName, string(r.Status), r.Detail})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignLeft, AlignHeader: text.AlignLeft, WidthMax: 60},
	})

	return tw.Render()
}

// Totals summarises the run in one line
func Totals(summary *scanner.Summary) string {
	parts := []string{
		fmt.Sprintf("renamed %d", summary.Count(scanner.StatusRenamed)),
	}

	optional := []struct {
		status scanner.Status
		label  string
	}{
		{scanner.StatusDryRun, "would rename"},
		{scanner.StatusDeclined, "declined"},
		{scanner.StatusCollision, "collisions"},
		{scanner.StatusNoYear, "without year"},
		{scanner.StatusFailed, "failed"},
		{scanner.StatusSkipped, "skipped"},
	}
	for _, o := range optional {
		if n := summary.Count(o.status); n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", o.label, n))
		}
	}

	return "Summary: " + strings.Join(parts, ", ")
}
