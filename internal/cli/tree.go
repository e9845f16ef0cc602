package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/apiscope/pkg/config"
	errs "github.com/matzehuels/apiscope/pkg/errors"
	"github.com/matzehuels/apiscope/pkg/expansion"
	"github.com/matzehuels/apiscope/pkg/observability"
	"github.com/matzehuels/apiscope/pkg/render"
	"github.com/matzehuels/apiscope/pkg/render/nodelink"
	"github.com/matzehuels/apiscope/pkg/render/tree"
	"github.com/matzehuels/apiscope/pkg/value"
)

// Output formats of the tree command.
const (
	formatText = "text"
	formatJSON = "json"
	formatRaw  = "raw"
	formatDOT  = "dot"
	formatSVG  = "svg"
	formatPDF  = "pdf"
	formatPNG  = "png"
)

var treeFormats = []string{formatText, formatJSON, formatRaw, formatDOT, formatSVG, formatPDF, formatPNG}

// treeOpts holds flags for the tree command.
type treeOpts struct {
	api       string
	at        string
	open      []string
	expandAll bool
	depth     int
	format    string
	output    string
	indent    int
	noColor   bool
	detailed  bool
	scale     float64
}

// treeCommand creates the tree command for rendering payloads.
func (c *CLI) treeCommand() *cobra.Command {
	var opts treeOpts

	cmd := &cobra.Command{
		Use:   "tree [file|-]",
		Short: "Render a JSON payload as a collapsible tree",
		Long: `Render a JSON payload as a tree of display lines.

The input is a bare JSON document or a monitoring snapshot; with a snapshot,
--api picks the API whose last response is shown. Containers start collapsed.
Open them with --open (encoded paths such as root.data[0]), --depth or --expand-all.`,
		Example: `  # Show the top two levels of a payload
  apiscope tree response.json --depth 2

  # Open specific branches of an API's last response
  apiscope tree snapshot.json --api users --open root --open root.data

  # Export the visible tree as SVG
  apiscope tree response.json --expand-all -f svg -o tree.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("indent") {
				opts.indent = c.Config.Indent
			}
			if !cmd.Flags().Changed("depth") {
				opts.depth = c.Config.ExpandDepth
			}
			return c.runTree(cmd.Context(), cmd, inputArg(args), opts)
		},
	}

	cmd.Flags().StringVar(&opts.api, "api", "", "API id to show when the input is a snapshot")
	cmd.Flags().StringVar(&opts.at, "at", value.RootName, "encoded path of the node to render")
	cmd.Flags().StringArrayVar(&opts.open, "open", nil, "encoded path to open (repeatable)")
	cmd.Flags().BoolVar(&opts.expandAll, "expand-all", false, "open every container")
	cmd.Flags().IntVar(&opts.depth, "depth", 0, "open this many levels below the rendered node")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatText, "output format: "+strings.Join(treeFormats, ", "))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().IntVar(&opts.indent, "indent", 2, "spaces per tree level")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show node paths in diagrams")
	cmd.Flags().Float64Var(&opts.scale, "scale", 2, "PNG scale factor")

	return cmd
}

func (c *CLI) runTree(ctx context.Context, cmd *cobra.Command, input string, opts treeOpts) error {
	logger := loggerFromContext(ctx)

	format := strings.ToLower(strings.TrimSpace(opts.format))
	if err := errs.ValidateFormat(format, treeFormats...); err != nil {
		return err
	}
	if opts.indent < config.MinIndent || opts.indent > config.MaxIndent {
		return errs.New(errs.ErrCodeInvalidInput, "indent %d out of range [%d, %d]", opts.indent, config.MinIndent, config.MaxIndent)
	}
	at, err := value.ParsePath(opts.at)
	if err != nil {
		return fmt.Errorf("--at: %w", err)
	}

	snap, err := loadSnapshot(ctx, cmd, input)
	if err != nil {
		return err
	}
	api, err := pickAPI(snap, opts.api, input)
	if err != nil {
		return err
	}
	sub, err := value.Lookup(api.Response, at)
	if err != nil {
		return err
	}

	state, err := initialState(sub, at, opts)
	if err != nil {
		return err
	}
	logger.Debug("rendering", "api", api.ID, "at", at, "open", state.Len(), "format", format)

	start := time.Now()
	lines := tree.Render(sub, at, state)
	observability.View().OnRender(ctx, format, len(lines), state.Len(), time.Since(start))

	t := theme{color: c.Config.Color && !opts.noColor && opts.output == ""}
	data, err := encodeTree(ctx, t, format, sub, at, state, lines, opts)
	if err != nil {
		return err
	}
	return writeOutput(cmd, t, opts.output, data)
}

// initialState builds the expansion state from --expand-all, --depth and --open.
func initialState(v value.Value, at value.Path, opts treeOpts) (expansion.State, error) {
	state := expansion.Empty()
	switch {
	case opts.expandAll:
		state = expansion.ExpandAll(v, at)
	case opts.depth > 0:
		state = expansion.ExpandDepth(v, at, opts.depth)
	}
	paths := make([]value.Path, 0, len(opts.open))
	for _, raw := range opts.open {
		p, err := value.ParsePath(raw)
		if err != nil {
			return expansion.State{}, fmt.Errorf("--open: %w", err)
		}
		paths = append(paths, p)
	}
	return state.Merge(expansion.Of(paths...)), nil
}

// jsonLine is the JSON form of a display line.
type jsonLine struct {
	Depth      int    `json:"depth"`
	Text       string `json:"text"`
	Path       string `json:"path"`
	Kind       string `json:"kind"`
	Expandable bool   `json:"expandable,omitempty"`
	Open       bool   `json:"open,omitempty"`
}

func encodeTree(ctx context.Context, t theme, format string, v value.Value, at value.Path, s expansion.State, lines []tree.Line, opts treeOpts) ([]byte, error) {
	switch format {
	case formatText:
		return []byte(t.treeText(lines, opts.indent)), nil
	case formatJSON:
		out := make([]jsonLine, len(lines))
		for i, l := range lines {
			out[i] = jsonLine{
				Depth:      l.Depth,
				Text:       l.Text,
				Path:       l.Path.Encode(),
				Kind:       l.Kind.String(),
				Expandable: l.Expandable,
				Open:       l.Open,
			}
		}
		data, err := json.MarshalIndent(out, "", strings.Repeat(" ", opts.indent))
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInternal, err, "encode lines")
		}
		return append(data, '\n'), nil
	case formatRaw:
		return value.Indent(v, opts.indent), nil
	}

	dot := nodelink.ToDOT(v, at, s, nodelink.Options{Detailed: opts.detailed})
	if format == formatDOT {
		return []byte(dot), nil
	}

	spinner := newSpinner(ctx, t, fmt.Sprintf("Rendering %s...", format))
	spinner.Start()
	defer spinner.Stop()

	svg, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	switch format {
	case formatPDF:
		return render.ToPDF(ctx, svg)
	case formatPNG:
		return render.ToPNG(ctx, svg, opts.scale)
	}
	return svg, nil
}
