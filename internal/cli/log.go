package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/apiscope/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered 42 lines (3ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, p.elapsed().Round(time.Millisecond))
}

func (p *progress) elapsed() time.Duration { return time.Since(p.start) }

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Logging Hooks
// =============================================================================

// logHooks reports library events as debug log lines.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.ViewHooks  = (*logHooks)(nil)
	_ observability.WatchHooks = (*logHooks)(nil)
)

func (h *logHooks) OnParse(_ context.Context, source string, size, nodes int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("parse failed", "source", source, "bytes", size, "err", err)
		return
	}
	h.logger.Debug("parsed payload", "source", source, "bytes", size, "nodes", nodes, "took", d.Round(time.Microsecond))
}

func (h *logHooks) OnRender(_ context.Context, format string, lines, open int, d time.Duration) {
	h.logger.Debug("rendered tree", "format", format, "lines", lines, "open", open, "took", d.Round(time.Microsecond))
}

func (h *logHooks) OnGroup(_ context.Context, routes, groups int, d time.Duration) {
	h.logger.Debug("grouped routes", "routes", routes, "groups", groups, "took", d.Round(time.Microsecond))
}

func (h *logHooks) OnReload(_ context.Context, path string, kept bool, err error) {
	if err != nil {
		h.logger.Warn("reload failed", "file", path, "err", err)
		return
	}
	h.logger.Debug("reloaded", "file", path, "state_kept", kept)
}

func (h *logHooks) OnWatchError(_ context.Context, path string, err error) {
	h.logger.Warn("watch error", "file", path, "err", err)
}
