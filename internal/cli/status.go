package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/apiscope/pkg/monitor"
	"github.com/matzehuels/apiscope/pkg/routes"
)

// statusCommand creates the status command for snapshot overviews.
func (c *CLI) statusCommand() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "status [snapshot|-]",
		Short: "Show the APIs and projects of a monitoring snapshot",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := inputArg(args)
			snap, err := loadSnapshot(cmd.Context(), cmd, input)
			if err != nil {
				return err
			}
			t := theme{color: c.Config.Color && !noColor}
			writeStatus(cmd.OutOrStdout(), t, snap, time.Now())
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	return cmd
}

func writeStatus(w io.Writer, t theme, snap *monitor.Snapshot, now time.Time) {
	fmt.Fprintln(w, t.render(StyleTitle, "APIs"))
	if len(snap.APIs) == 0 {
		t.printInfo(w, "No APIs registered")
	} else {
		rows := make([][]string, 0, len(snap.APIs))
		for _, a := range snap.APIs {
			rows = append(rows, []string{
				statusIcon(a.LastStatus),
				a.ID,
				t.render(StyleLink, a.URL),
				formatMillis(a.ResponseTimeMs),
				formatChecked(a.LastCheckedAt, now),
			})
		}
		fmt.Fprintln(w, statusTable(t, []string{"", "ID", "URL", "Time", "Last checked"}, rows).Render())
		for _, a := range snap.APIs {
			if a.ErrorMessage != "" {
				t.printWarning(w, "%s: %s", a.ID, a.ErrorMessage)
			}
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, t.render(StyleTitle, "Projects"))
	if len(snap.Projects) == 0 {
		t.printInfo(w, "No projects registered")
		return
	}
	rows := make([][]string, 0, len(snap.Projects))
	for _, p := range snap.Projects {
		groups := routes.GroupByPrefix(p.Routes)
		requests := "-"
		avg := "-"
		if m := p.Metrics; m != nil {
			requests = fmt.Sprintf("%d/%d ok", m.SuccessfulRequests, m.TotalRequests)
			avg = fmt.Sprintf("%.0fms", m.AverageResponseTime)
		}
		rows = append(rows, []string{
			statusIcon(p.APIStatus),
			p.Name,
			t.render(StyleLink, p.APIURL),
			fmt.Sprintf("%d in %d groups", routes.Total(groups), len(groups)),
			requests,
			avg,
			formatChecked(p.LastCheckedAt, now),
		})
	}
	fmt.Fprintln(w, statusTable(t, []string{"", "Project", "API", "Routes", "Requests", "Avg", "Last checked"}, rows).Render())
}

func statusTable(t theme, headers []string, rows [][]string) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 && t.color {
				return headerStyle
			}
			return cell
		})
	if t.color {
		tbl = tbl.BorderStyle(lipgloss.NewStyle().Foreground(colorDim))
	}
	return tbl
}
