package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/apiscope/pkg/errors"
	"github.com/matzehuels/apiscope/pkg/expansion"
	"github.com/matzehuels/apiscope/pkg/monitor"
	"github.com/matzehuels/apiscope/pkg/observability"
	"github.com/matzehuels/apiscope/pkg/render/tree"
	"github.com/matzehuels/apiscope/pkg/session"
	"github.com/matzehuels/apiscope/pkg/value"
)

// browseCommand creates the interactive browser command.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		watch   bool
		noColor bool
		depth   int
	)

	cmd := &cobra.Command{
		Use:   "browse <file>",
		Short: "Explore a snapshot or payload interactively",
		Long: `Explore the APIs and projects of a monitoring snapshot, or a bare JSON payload,
as collapsible trees.

Keys:
  j/k, ↑/↓     move
  enter/space  toggle the branch under the cursor
  o / c        open / close
  h / l        close or go to parent / open
  zR / zM      expand all / collapse all
  tab          next entity (shift+tab: previous)
  r            reload the file
  q            quit

With --watch the file is reloaded whenever it changes. Open branches are kept
as long as the same entity stays selected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("watch") {
				watch = c.Config.Watch
			}
			if !cmd.Flags().Changed("depth") {
				depth = c.Config.ExpandDepth
			}
			return c.runBrowse(cmd.Context(), cmd, args[0], browseOpts{
				watch:  watch,
				depth:  depth,
				indent: c.Config.Indent,
				theme:  theme{color: c.Config.Color && !noColor},
			})
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload when the file changes")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.Flags().IntVar(&depth, "depth", 0, "levels to open when an entity is first shown")

	return cmd
}

type browseOpts struct {
	watch  bool
	depth  int
	indent int
	theme  theme
}

func (c *CLI) runBrowse(ctx context.Context, cmd *cobra.Command, path string, opts browseOpts) error {
	if path == stdinArg {
		return errs.New(errs.ErrCodeUnsupported, "browse needs a file; stdin cannot be reloaded")
	}
	snap, err := loadSnapshot(ctx, cmd, path)
	if err != nil {
		return err
	}

	m := newBrowseModel(ctx, path, snap, opts)
	if opts.watch {
		w, err := watchFile(path)
		if err != nil {
			return err
		}
		defer w.Close()
		m.watcher = w
	}

	// The alt screen owns the terminal; keep log lines out of it.
	c.Logger.SetOutput(io.Discard)
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	c.Logger.SetOutput(c.logOut)
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	if fm, ok := final.(browseModel); ok && fm.err != nil {
		loggerFromContext(ctx).Warn("last reload failed", "err", fm.err)
	}
	return nil
}

// watchFile watches the directory holding path, so that editors which
// replace the file on save are noticed too.
func watchFile(path string) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}
	return w, nil
}

// =============================================================================
// Messages
// =============================================================================

type fileChangedMsg struct{}

type watchErrMsg struct{ err error }

// reloadedMsg carries a re-read snapshot. fromWatch is set when the reload
// consumed the pending watcher event, so a new wait must be started.
type reloadedMsg struct {
	snap      *monitor.Snapshot
	err       error
	fromWatch bool
}

// =============================================================================
// browseModel
// =============================================================================

// browseModel is the bubbletea model of the interactive browser.
type browseModel struct {
	ctx    context.Context
	path   string
	opts   browseOpts
	viewer *session.Viewer

	snap     *monitor.Snapshot
	entities []monitor.Entity
	current  int
	payload  value.Value
	lines    []tree.Line

	cursor   int
	offset   int
	height   int
	width    int
	pendingZ bool

	watcher *fsnotify.Watcher
	message string
	err     error
}

func newBrowseModel(ctx context.Context, path string, snap *monitor.Snapshot, opts browseOpts) browseModel {
	if opts.indent < 1 {
		opts.indent = tree.DefaultIndent
	}
	m := browseModel{
		ctx:    ctx,
		path:   path,
		opts:   opts,
		viewer: session.NewViewer(),
		height: 20,
		width:  80,
	}
	m.apply(snap)
	return m
}

func (m browseModel) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return m.waitForChange()
}

// waitForChange blocks until the watched file changes.
func (m browseModel) waitForChange() tea.Cmd {
	w := m.watcher
	target := filepath.Clean(m.path)
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					return watchErrMsg{err: fmt.Errorf("watcher closed")}
				}
				if filepath.Clean(event.Name) != target || event.Op == fsnotify.Chmod {
					continue
				}
				// Let the writer finish.
				time.Sleep(50 * time.Millisecond)
				return fileChangedMsg{}
			case err, ok := <-w.Errors:
				if !ok {
					return watchErrMsg{err: fmt.Errorf("watcher error channel closed")}
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

func (m browseModel) reload(fromWatch bool) tea.Cmd {
	path := m.path
	return func() tea.Msg {
		snap, err := monitor.ReadFile(path)
		return reloadedMsg{snap: snap, err: err, fromWatch: fromWatch}
	}
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = max(msg.Height-5, 3)
		m.scroll()
		return m, nil

	case fileChangedMsg:
		return m, m.reload(true)

	case watchErrMsg:
		m.err = msg.err
		observability.Watch().OnWatchError(m.ctx, m.path, msg.err)
		if m.watcher == nil {
			return m, nil
		}
		return m, m.waitForChange()

	case reloadedMsg:
		// A manual reload leaves the running wait in place.
		var next tea.Cmd
		if msg.fromWatch && m.watcher != nil {
			next = m.waitForChange()
		}
		if msg.err != nil {
			m.err = msg.err
			observability.Watch().OnReload(m.ctx, m.path, false, msg.err)
			return m, next
		}
		m.err = nil
		kept := m.apply(msg.snap)
		observability.Watch().OnReload(m.ctx, m.path, kept, nil)
		if kept {
			m.message = "reloaded"
		} else {
			m.message = "reloaded, view reset"
		}
		return m, next

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m browseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.pendingZ {
		m.pendingZ = false
		switch key {
		case "R":
			m.viewer.Set(expansion.ExpandAll(m.payload, value.Root()))
			m.refresh()
			return m, nil
		case "M":
			m.viewer.Set(expansion.Empty())
			m.refresh()
			return m, nil
		case "o":
			return m.setOpen(true), nil
		case "c":
			return m.setOpen(false), nil
		}
	}

	switch key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "pgup":
		m.move(-m.height)
	case "pgdown":
		m.move(m.height)
	case "g", "home":
		m.move(-len(m.lines))
	case "G", "end":
		m.move(len(m.lines))
	case "enter", " ":
		if l, ok := m.line(); ok && l.Expandable {
			m.viewer.Toggle(l.Path)
			m.refresh()
		}
	case "o", "l", "right":
		return m.setOpen(true), nil
	case "c":
		return m.setOpen(false), nil
	case "h", "left":
		return m.closeOrParent(), nil
	case "z":
		m.pendingZ = true
	case "tab":
		m.selectEntity(m.current + 1)
	case "shift+tab":
		m.selectEntity(m.current - 1)
	case "r":
		m.message = "reloading..."
		return m, m.reload(false)
	}
	return m, nil
}

// =============================================================================
// State changes
// =============================================================================

// apply installs a new snapshot, keeping the selected entity when it still
// exists. It reports whether the expansion state survived.
func (m *browseModel) apply(snap *monitor.Snapshot) bool {
	m.snap = snap
	m.entities = snap.Entities()
	if len(m.entities) == 0 {
		m.viewer.Clear()
		m.current = 0
		m.payload = value.Null()
		m.refresh()
		return false
	}

	idx := -1
	if cur := m.viewer.Entity(); !cur.IsZero() {
		for i, e := range m.entities {
			if e == cur {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		idx = min(m.current, len(m.entities)-1)
	}
	return m.show(idx)
}

func (m *browseModel) selectEntity(i int) {
	n := len(m.entities)
	if n == 0 {
		return
	}
	m.show(((i % n) + n) % n)
	m.cursor, m.offset = 0, 0
	m.message = ""
}

// show displays entity i and reports whether its expansion state was kept.
func (m *browseModel) show(i int) bool {
	m.current = i
	e := m.entities[i]
	payload, err := m.snap.Payload(e)
	if err != nil {
		payload = value.Null()
	}
	m.payload = payload

	kept := m.viewer.Show(e)
	if !kept && m.opts.depth > 0 {
		m.viewer.Set(expansion.ExpandDepth(payload, value.Root(), m.opts.depth))
	}
	m.refresh()
	return kept
}

func (m *browseModel) refresh() {
	start := time.Now()
	if m.viewer.Showing() {
		m.lines = tree.Render(m.payload, value.Root(), m.viewer.State())
	} else {
		m.lines = nil
	}
	observability.View().OnRender(m.ctx, "tui", len(m.lines), m.viewer.State().Len(), time.Since(start))
	m.cursor = min(m.cursor, max(len(m.lines)-1, 0))
	m.scroll()
}

func (m *browseModel) move(delta int) {
	if len(m.lines) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.lines)-1)
	m.scroll()
}

func (m *browseModel) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m browseModel) line() (tree.Line, bool) {
	if m.cursor < 0 || m.cursor >= len(m.lines) {
		return tree.Line{}, false
	}
	return m.lines[m.cursor], true
}

func (m browseModel) setOpen(open bool) browseModel {
	l, ok := m.line()
	if !ok || !l.Expandable {
		return m
	}
	if open {
		m.viewer.Set(m.viewer.State().Open(l.Path))
	} else {
		m.viewer.Set(m.viewer.State().Close(l.Path))
	}
	m.refresh()
	return m
}

// closeOrParent closes an open branch, or jumps to the parent line.
func (m browseModel) closeOrParent() browseModel {
	l, ok := m.line()
	if !ok {
		return m
	}
	if l.Open {
		return m.setOpen(false)
	}
	if l.Path.IsRoot() {
		return m
	}
	if i := tree.IndexOf(m.lines, l.Path.Parent()); i >= 0 {
		m.cursor = i
		m.scroll()
	}
	return m
}

// =============================================================================
// View
// =============================================================================

var (
	browseTabStyle    = lipgloss.NewStyle().Foreground(colorGray).Padding(0, 1)
	browseActiveStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true).Padding(0, 1).Underline(true)
	browseCursorStyle = lipgloss.NewStyle().Background(lipgloss.Color("237"))
)

func (m browseModel) View() string {
	t := m.opts.theme
	var b strings.Builder

	b.WriteString(t.render(StyleTitle, appName) + " " + t.render(StyleDim, m.path))
	b.WriteString("\n")
	b.WriteString(m.tabs())
	b.WriteString("\n\n")

	if len(m.lines) == 0 {
		b.WriteString(t.render(StyleDim, "  nothing to show"))
		b.WriteString("\n")
	}
	end := min(m.offset+m.height, len(m.lines))
	for i := m.offset; i < end; i++ {
		l := m.lines[i]
		text := strings.Repeat(" ", l.Depth*m.opts.indent) + t.treeLine(l)
		if i == m.cursor {
			text = "▸ " + text
			if t.color {
				text = browseCursorStyle.Render(text)
			}
		} else {
			text = "  " + text
		}
		b.WriteString(text)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m browseModel) tabs() string {
	t := m.opts.theme
	parts := make([]string, len(m.entities))
	for i, e := range m.entities {
		label := m.entityLabel(e)
		if i == m.current {
			parts[i] = t.render(browseActiveStyle, "["+label+"]")
		} else {
			parts[i] = t.render(browseTabStyle, label)
		}
	}
	return strings.Join(parts, " ")
}

func (m browseModel) entityLabel(e monitor.Entity) string {
	switch e.Kind {
	case monitor.KindAPI:
		if a, err := m.snap.API(e.ID); err == nil {
			return statusIcon(a.LastStatus) + " " + e.ID
		}
	case monitor.KindProject:
		if p, err := m.snap.Project(e.ID); err == nil && p.Name != "" {
			return statusIcon(p.APIStatus) + " " + p.Name
		}
	}
	return e.String()
}

func (m browseModel) footer() string {
	t := m.opts.theme
	pos := fmt.Sprintf("[%d/%d]", min(m.cursor+1, len(m.lines)), len(m.lines))
	help := "j/k move  ⏎ toggle  zR/zM all  tab entity  r reload  q quit"
	line := t.render(StyleDim, pos+"  "+help)
	switch {
	case m.err != nil:
		line += "\n" + t.render(styleIconError, iconError+" "+errs.UserMessage(m.err))
	case m.message != "":
		line += "\n" + t.render(StyleDim, m.message)
	}
	return line
}
