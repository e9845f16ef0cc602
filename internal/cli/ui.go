package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/apiscope/pkg/render/tree"
	"github.com/matzehuels/apiscope/pkg/routes"
	"github.com/matzehuels/apiscope/pkg/value"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - numbers, primary actions
	colorGreen  = lipgloss.Color("35")  // Green - strings, success
	colorYellow = lipgloss.Color("220") // Amber - keys, warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links, GET
	colorPurple = lipgloss.Color("141") // Lavender - booleans, PATCH
	colorWhite  = lipgloss.Color("255") // Bright white - headers
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - null, muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleKey    = lipgloss.NewStyle().Foreground(colorYellow)
	styleIndex  = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	styleEmpty  = lipgloss.NewStyle().Foreground(colorGray)

	kindStyles = map[value.Kind]lipgloss.Style{
		value.KindNull:   lipgloss.NewStyle().Foreground(colorDim).Italic(true),
		value.KindBool:   lipgloss.NewStyle().Foreground(colorPurple),
		value.KindNumber: lipgloss.NewStyle().Foreground(colorCyan),
		value.KindString: lipgloss.NewStyle().Foreground(colorGreen),
	}

	methodStyles = map[routes.Method]lipgloss.Style{
		routes.MethodGet:    lipgloss.NewStyle().Foreground(colorBlue).Bold(true),
		routes.MethodPost:   lipgloss.NewStyle().Foreground(colorGreen).Bold(true),
		routes.MethodPut:    lipgloss.NewStyle().Foreground(colorYellow).Bold(true),
		routes.MethodDelete: lipgloss.NewStyle().Foreground(colorRed).Bold(true),
		routes.MethodPatch:  lipgloss.NewStyle().Foreground(colorPurple).Bold(true),
		routes.MethodOther:  lipgloss.NewStyle().Foreground(colorGray).Bold(true),
	}

	statusStyles = map[routes.Status]lipgloss.Style{
		routes.StatusSuccess: lipgloss.NewStyle().Foreground(colorGreen),
		routes.StatusError:   lipgloss.NewStyle().Foreground(colorRed),
		routes.StatusPending: lipgloss.NewStyle().Foreground(colorGray),
	}
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"

	statusIconSuccess = "✅"
	statusIconError   = "❌"
	statusIconPending = "⏳"
	statusIconUnknown = "❓"

	neverChecked = "Never checked"
)

// statusIcon maps a raw check status to its icon. Unknown values get ❓,
// unlike routes.ParseStatus which folds them into pending.
func statusIcon(status string) string {
	switch routes.Status(strings.ToLower(status)) {
	case routes.StatusSuccess:
		return statusIconSuccess
	case routes.StatusError:
		return statusIconError
	case routes.StatusPending:
		return statusIconPending
	}
	return statusIconUnknown
}

// =============================================================================
// Theme
// =============================================================================

// theme renders styled text, or plain text when color is off.
type theme struct {
	color bool
}

func (t theme) render(s lipgloss.Style, text string) string {
	if !t.color {
		return text
	}
	return s.Render(text)
}

// treeLine styles one display line: label by segment kind, body by value kind.
func (t theme) treeLine(l tree.Line) string {
	label := l.Label
	if label != "" {
		seg, _ := l.Path.Last()
		name := strings.TrimSuffix(label, ": ")
		if seg.IsIndex() {
			label = t.render(styleIndex, name) + ": "
		} else {
			label = t.render(styleKey, name) + ": "
		}
	}

	var body string
	switch {
	case l.Expandable:
		body = t.render(styleHeader, l.Body)
	case l.Kind.IsContainer():
		body = t.render(styleEmpty, l.Body)
	default:
		body = t.render(kindStyles[l.Kind], l.Body)
	}
	return label + body
}

// treeText formats lines like tree.Format, with styling.
func (t theme) treeText(lines []tree.Line, indent int) string {
	if !t.color {
		return tree.Format(lines, indent)
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(strings.Repeat(" ", l.Depth*indent))
		b.WriteString(t.treeLine(l))
		b.WriteByte('\n')
	}
	return b.String()
}

func (t theme) method(m routes.Method) string {
	return t.render(methodStyles[m], fmt.Sprintf("%-6s", m))
}

func (t theme) status(s routes.Status) string {
	return t.render(statusStyles[s], string(s))
}

// =============================================================================
// Status Output
// =============================================================================

func (t theme) printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, t.render(styleIconSuccess, iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func (t theme) printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, t.render(styleIconError, iconError)+" "+fmt.Sprintf(format, args...))
}

func (t theme) printWarning(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, t.render(styleIconWarning, iconWarning)+" "+t.render(StyleWarning, msg))
}

func (t theme) printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, t.render(styleIconInfo, iconInfo)+" "+fmt.Sprintf(format, args...))
}

func (t theme) printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+t.render(StyleDim, fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func (t theme) printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+t.render(StyleDim, iconArrow)+" "+t.render(StyleValue, path))
}

// printKeyValue prints a labeled value.
func (t theme) printKeyValue(w io.Writer, key, val string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray)
	fmt.Fprintln(w, t.render(keyStyle, fmt.Sprintf("%-12s", key))+" "+t.render(StyleValue, val))
}

// printStats prints dim statistics on a single line separated by dots.
func (t theme) printStats(w io.Writer, parts ...string) {
	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += t.render(StyleDim, " · ")
		}
		line += t.render(StyleDim, part)
	}
	fmt.Fprintln(w, line)
}

// =============================================================================
// Formatting
// =============================================================================

func formatMillis(ms *int64) string {
	if ms == nil {
		return "-"
	}
	return strconv.FormatInt(*ms, 10) + "ms"
}

func formatAverage(avg *float64) string {
	if avg == nil {
		return "-"
	}
	return strconv.FormatFloat(*avg, 'f', 0, 64) + "ms"
}

// formatChecked renders a check timestamp relative to now.
func formatChecked(at *time.Time, now time.Time) string {
	if at == nil {
		return neverChecked
	}
	diff := now.Sub(*at)
	switch {
	case diff < 0:
		return at.Format("Jan 2, 2006 15:04")
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return at.Format("Jan 2, 2006")
	}
}
