package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/apiscope/pkg/errors"
	"github.com/matzehuels/apiscope/pkg/monitor"
	"github.com/matzehuels/apiscope/pkg/observability"
	"github.com/matzehuels/apiscope/pkg/routes"
)

const formatTable = "table"

var routeFormats = []string{formatTable, formatText, formatJSON}

type routesOpts struct {
	project string
	format  string
	noColor bool
}

// routesCommand creates the routes command for grouped route listings.
func (c *CLI) routesCommand() *cobra.Command {
	var opts routesOpts

	cmd := &cobra.Command{
		Use:   "routes [file|-]",
		Short: "Group discovered routes by first path segment",
		Long: `Group a project's discovered routes by their first path segment.

The input is a route list (JSON array, {"routes": [...]} object, or TOML
[[routes]] tables) or a monitoring snapshot, in which case --project picks
the project.`,
		Example: `  apiscope routes routes.toml
  apiscope routes snapshot.json --project shop -f json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRoutes(cmd.Context(), cmd, inputArg(args), opts)
		},
	}

	cmd.Flags().StringVar(&opts.project, "project", "", "project id when the input is a snapshot")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatTable, "output format: "+strings.Join(routeFormats, ", "))
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	return cmd
}

func (c *CLI) runRoutes(ctx context.Context, cmd *cobra.Command, input string, opts routesOpts) error {
	format := strings.ToLower(strings.TrimSpace(opts.format))
	if err := errs.ValidateFormat(format, routeFormats...); err != nil {
		return err
	}

	rs, title, err := loadRoutes(ctx, cmd, input, opts.project)
	if err != nil {
		return err
	}

	start := time.Now()
	groups := routes.GroupByPrefix(rs)
	observability.View().OnGroup(ctx, len(rs), len(groups), time.Since(start))
	metrics := routes.Summarize(rs)

	out := cmd.OutOrStdout()
	t := theme{color: c.Config.Color && !opts.noColor}
	switch format {
	case formatJSON:
		return writeRoutesJSON(out, groups, metrics)
	case formatText:
		writeRoutesText(out, t, groups)
		return nil
	}
	writeRoutesTable(out, t, title, groups, metrics, time.Now())
	return nil
}

// loadRoutes reads a route list, or a project's routes from a snapshot when
// the input is one.
func loadRoutes(ctx context.Context, cmd *cobra.Command, input, project string) ([]routes.Route, string, error) {
	data, err := readInput(cmd, input)
	if err != nil {
		return nil, "", err
	}

	if project != "" || monitor.IsSnapshot(data) {
		start := time.Now()
		snap, err := monitor.Decode(input, data)
		observability.View().OnParse(ctx, input, len(data), snapshotNodes(snap), time.Since(start), err)
		if err != nil {
			return nil, "", err
		}
		p, err := pickProject(snap, project, input)
		if err != nil {
			return nil, "", err
		}
		title := p.Name
		if title == "" {
			title = p.ID
		}
		return p.Routes, title, nil
	}

	title := input
	if input == stdinArg {
		title = "stdin"
	}
	rs, err := routes.Decode(input, data)
	return rs, title, err
}

// =============================================================================
// Output
// =============================================================================

type jsonRoute struct {
	Method         string     `json:"method"`
	Path           string     `json:"path"`
	Status         string     `json:"status"`
	ResponseTimeMs *int64     `json:"responseTimeMs,omitempty"`
	LastChecked    *time.Time `json:"lastChecked,omitempty"`
}

type jsonGroup struct {
	Key    string      `json:"key"`
	Label  string      `json:"label"`
	Routes []jsonRoute `json:"routes"`
}

type jsonRoutes struct {
	Metrics struct {
		Total             int      `json:"total"`
		Successful        int      `json:"successful"`
		Failed            int      `json:"failed"`
		Pending           int      `json:"pending"`
		AverageResponseMs *float64 `json:"averageResponseMs"`
	} `json:"metrics"`
	Groups []jsonGroup `json:"groups"`
}

func writeRoutesJSON(w io.Writer, groups []routes.Group, m routes.Metrics) error {
	var doc jsonRoutes
	doc.Metrics.Total = m.Total
	doc.Metrics.Successful = m.Successful
	doc.Metrics.Failed = m.Failed
	doc.Metrics.Pending = m.Pending
	doc.Metrics.AverageResponseMs = m.AverageResponseMs

	doc.Groups = make([]jsonGroup, 0, len(groups))
	for _, g := range groups {
		jg := jsonGroup{Key: g.Key, Label: g.Label(), Routes: make([]jsonRoute, 0, len(g.Routes))}
		for _, r := range g.Routes {
			jg.Routes = append(jg.Routes, jsonRoute{
				Method:         string(r.Method),
				Path:           r.Path,
				Status:         string(r.Status),
				ResponseTimeMs: r.ResponseTimeMs,
				LastChecked:    r.LastCheckedAt,
			})
		}
		doc.Groups = append(doc.Groups, jg)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// writeRoutesText prints one line per group followed by its routes.
func writeRoutesText(w io.Writer, t theme, groups []routes.Group) {
	for _, g := range groups {
		fmt.Fprintf(w, "%s %s\n", t.render(StyleTitle, g.Key), t.render(StyleDim, g.Label()))
		for _, r := range g.Routes {
			fmt.Fprintf(w, "  %s %s %s\n", t.method(r.Method), r.Path, t.status(r.Status))
		}
	}
}

func writeRoutesTable(w io.Writer, t theme, title string, groups []routes.Group, m routes.Metrics, now time.Time) {
	fmt.Fprintln(w, t.render(StyleTitle, title))
	t.printStats(w,
		fmt.Sprintf("%d routes", m.Total),
		fmt.Sprintf("%d successful", m.Successful),
		fmt.Sprintf("%d failed", m.Failed),
		fmt.Sprintf("%d pending", m.Pending),
		"avg "+formatAverage(m.AverageResponseMs),
	)
	if len(groups) == 0 {
		t.printInfo(w, "No routes discovered")
		return
	}

	for _, g := range groups {
		fmt.Fprintln(w)
		fmt.Fprintln(w, t.render(styleHeader, g.Key)+" "+t.render(StyleDim, g.Label()))

		rows := make([][]string, 0, len(g.Routes))
		for _, r := range g.Routes {
			rows = append(rows, []string{
				t.method(r.Method),
				r.Path,
				statusIcon(string(r.Status)) + " " + t.status(r.Status),
				formatMillis(r.ResponseTimeMs),
				formatChecked(r.LastCheckedAt, now),
			})
		}
		fmt.Fprintln(w, routeTable(t, rows).Render())
	}
}

func routeTable(t theme, rows [][]string) *table.Table {
	return statusTable(t, []string{"Method", "Path", "Status", "Time", "Last checked"}, rows)
}
