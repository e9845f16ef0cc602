package cli

import (
	"testing"
	"time"

	"github.com/matzehuels/apiscope/pkg/expansion"
	"github.com/matzehuels/apiscope/pkg/render/tree"
	"github.com/matzehuels/apiscope/pkg/value"
)

func TestStatusIcon(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"success", statusIconSuccess},
		{"SUCCESS", statusIconSuccess},
		{"error", statusIconError},
		{"pending", statusIconPending},
		{"", statusIconUnknown},
		{"flaky", statusIconUnknown},
	}
	for _, tt := range tests {
		if got := statusIcon(tt.status); got != tt.want {
			t.Errorf("statusIcon(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestFormatChecked(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		ts := now.Add(-d)
		return &ts
	}
	tests := []struct {
		name string
		at   *time.Time
		want string
	}{
		{"never", nil, neverChecked},
		{"seconds", at(30 * time.Second), "just now"},
		{"minutes", at(5 * time.Minute), "5m ago"},
		{"hours", at(3 * time.Hour), "3h ago"},
		{"days", at(48 * time.Hour), "2d ago"},
		{"old", at(30 * 24 * time.Hour), "Feb 8, 2025"},
		{"future", at(-time.Hour), "Mar 10, 2025 13:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatChecked(tt.at, now); got != tt.want {
				t.Errorf("formatChecked = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatMillis(t *testing.T) {
	ms := int64(42)
	if got := formatMillis(&ms); got != "42ms" {
		t.Errorf("formatMillis = %q", got)
	}
	if got := formatMillis(nil); got != "-" {
		t.Errorf("formatMillis(nil) = %q", got)
	}
	avg := 12.6
	if got := formatAverage(&avg); got != "13ms" {
		t.Errorf("formatAverage = %q", got)
	}
}

func TestTreeTextWithoutColorMatchesFormat(t *testing.T) {
	v := value.Object(
		value.Field{Key: "a", Value: value.Array(value.Number(1), value.Bool(false))},
		value.Field{Key: "b", Value: value.Null()},
	)
	lines := tree.Render(v, value.Root(), expansion.ExpandAll(v, value.Root()))
	if got, want := (theme{}).treeText(lines, 2), tree.Format(lines, 2); got != want {
		t.Errorf("treeText = %q, want %q", got, want)
	}
}
