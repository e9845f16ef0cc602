package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/apiscope/pkg/monitor"
	"github.com/matzehuels/apiscope/pkg/render/tree"
)

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m browseModel, keys ...string) browseModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(browseModel)
	}
	return m
}

// reloadNow runs the reload triggered by a file change synchronously.
func reloadNow(t *testing.T, m browseModel) browseModel {
	t.Helper()
	next, cmd := m.Update(fileChangedMsg{})
	if cmd == nil {
		t.Fatal("file change did not schedule a reload")
	}
	next, _ = next.(browseModel).Update(cmd())
	return next.(browseModel)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestBrowser(t *testing.T, content string, depth int) (browseModel, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "payload.json")
	writeFile(t, path, content)
	snap, err := monitor.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return newBrowseModel(context.Background(), path, snap, browseOpts{depth: depth, indent: 2}), path
}

func texts(m browseModel) []string { return tree.Texts(m.lines) }

func TestBrowseToggle(t *testing.T) {
	m, _ := newTestBrowser(t, `{"a":{"b":1},"c":[1,2]}`, 0)
	if got := texts(m); len(got) != 1 || got[0] != "▶ Object" {
		t.Fatalf("initial lines = %q", got)
	}

	m = press(t, m, "enter")
	want := []string{"▼ Object", `a: ▶ Object`, `c: ▶ Array[2]`}
	if got := texts(m); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("after enter = %q, want %q", got, want)
	}

	m = press(t, m, "j", " ")
	if got := len(m.lines); got != 4 {
		t.Errorf("after opening a: %d lines, want 4", got)
	}
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}

	m = press(t, m, "c")
	if got := len(m.lines); got != 3 {
		t.Errorf("after closing a: %d lines, want 3", got)
	}
}

func TestBrowseExpandCollapseAll(t *testing.T) {
	m, _ := newTestBrowser(t, `{"a":{"b":1},"c":[1,2]}`, 0)

	m = press(t, m, "z", "R")
	if got, want := len(m.lines), 6; got != want {
		t.Errorf("zR: %d lines, want %d", got, want)
	}
	m = press(t, m, "z", "M")
	if got := len(m.lines); got != 1 {
		t.Errorf("zM: %d lines, want 1", got)
	}
	if m.pendingZ {
		t.Error("z prefix still pending")
	}
}

func TestBrowseInitialDepth(t *testing.T) {
	m, _ := newTestBrowser(t, `{"a":{"b":1},"c":[1,2]}`, 1)
	if got := len(m.lines); got != 3 {
		t.Errorf("depth 1: %d lines, want 3", got)
	}
}

func TestBrowseMovementClamps(t *testing.T) {
	m, _ := newTestBrowser(t, `[1,2,3]`, 1)
	m = press(t, m, "k")
	if m.cursor != 0 {
		t.Errorf("cursor = %d after k at top", m.cursor)
	}
	m = press(t, m, "G", "j", "j")
	if m.cursor != len(m.lines)-1 {
		t.Errorf("cursor = %d, want %d", m.cursor, len(m.lines)-1)
	}
	m = press(t, m, "h")
	if m.cursor != 0 {
		t.Errorf("h on a leaf should jump to the parent, cursor = %d", m.cursor)
	}
	m = press(t, m, "h")
	if len(m.lines) != 1 {
		t.Errorf("h on an open branch should close it, got %d lines", len(m.lines))
	}
}

func TestBrowseReloadKeepsState(t *testing.T) {
	m, path := newTestBrowser(t, `{"a":{"b":1}}`, 0)
	m = press(t, m, "enter", "j", "enter")
	resets := m.viewer.Resets()

	writeFile(t, path, `{"a":{"b":2,"c":3}}`)
	m = reloadNow(t, m)

	if m.err != nil {
		t.Fatalf("reload error: %v", m.err)
	}
	want := []string{"▼ Object", "a: ▼ Object", "b: 2", "c: 3"}
	if got := texts(m); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("after reload = %q, want %q", got, want)
	}
	if m.viewer.Resets() != resets {
		t.Errorf("state was reset on reload of the same entity")
	}
	if m.message != "reloaded" {
		t.Errorf("message = %q", m.message)
	}
}

func TestBrowseReloadEntityRemoved(t *testing.T) {
	m, path := newTestBrowser(t, `{"apis":[{"_id":"a","lastResponse":{"x":1}},{"_id":"b","lastResponse":[1]}]}`, 0)
	m = press(t, m, "tab", "enter")
	if got := m.viewer.Entity().ID; got != "b" {
		t.Fatalf("entity = %q, want b", got)
	}
	if !m.viewer.State().IsOpen(m.lines[0].Path) {
		t.Fatal("root of b should be open")
	}

	writeFile(t, path, `{"apis":[{"_id":"a","lastResponse":{"x":1}}]}`)
	m = reloadNow(t, m)

	if got := m.viewer.Entity().ID; got != "a" {
		t.Errorf("entity = %q, want a", got)
	}
	if m.viewer.State().Len() != 0 {
		t.Errorf("state not reset: %v", m.viewer.State().Keys())
	}
	if m.message != "reloaded, view reset" {
		t.Errorf("message = %q", m.message)
	}
}

func TestBrowseReloadEmptySnapshot(t *testing.T) {
	m, path := newTestBrowser(t, `{"apis":[{"_id":"a","lastResponse":{"x":1}}]}`, 1)
	writeFile(t, path, `{"apis":[]}`)
	m = reloadNow(t, m)

	if m.viewer.Showing() {
		t.Error("viewer still shows an entity")
	}
	if len(m.lines) != 0 {
		t.Errorf("lines = %q", texts(m))
	}
	if !strings.Contains(m.View(), "nothing to show") {
		t.Errorf("view = %q", m.View())
	}
}

func TestBrowseReloadError(t *testing.T) {
	m, path := newTestBrowser(t, `{"a":1}`, 1)
	writeFile(t, path, `{"a":`)
	m = reloadNow(t, m)

	if m.err == nil {
		t.Fatal("expected reload error")
	}
	if got := len(m.lines); got != 2 {
		t.Errorf("previous payload should stay visible, got %d lines", got)
	}
	if !strings.Contains(m.View(), "invalid JSON") {
		t.Errorf("view does not show the error: %q", m.View())
	}
}

func TestBrowseEntityCycle(t *testing.T) {
	m, _ := newTestBrowser(t, `{"apis":[{"_id":"a"},{"_id":"b"}],"projects":[{"_id":"p","name":"shop"}]}`, 0)
	tests := []struct {
		key  string
		want string
	}{
		{"tab", "b"},
		{"tab", "p"},
		{"tab", "a"},
		{"shift+tab", "p"},
	}
	for _, tt := range tests {
		m = press(t, m, tt.key)
		if got := m.viewer.Entity().ID; got != tt.want {
			t.Errorf("after %s: entity = %q, want %q", tt.key, got, tt.want)
		}
	}
	if !strings.Contains(m.View(), "[❓ shop]") {
		t.Errorf("active tab missing from view: %q", m.View())
	}
}

func TestBrowseQuit(t *testing.T) {
	m, _ := newTestBrowser(t, `1`, 0)
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestBrowseWindowScroll(t *testing.T) {
	m, _ := newTestBrowser(t, `[1,2,3,4,5,6,7,8,9,10]`, 1)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 9})
	m = next.(browseModel)
	if m.height != 4 {
		t.Fatalf("height = %d, want 4", m.height)
	}
	m = press(t, m, "G")
	if want := len(m.lines) - m.height; m.offset != want {
		t.Errorf("offset = %d, want %d", m.offset, want)
	}
	if strings.Contains(m.View(), "[0]: 1") {
		t.Error("scrolled-off line still rendered")
	}
}

func TestWatchFileNotifies(t *testing.T) {
	m, path := newTestBrowser(t, `{"a":1}`, 0)
	w, err := watchFile(path)
	if err != nil {
		t.Fatalf("watchFile: %v", err)
	}
	defer w.Close()
	m.watcher = w

	msgs := make(chan tea.Msg, 1)
	go func() { msgs <- m.Init()() }()

	writeFile(t, path, `{"a":2}`)
	select {
	case msg := <-msgs:
		if _, ok := msg.(fileChangedMsg); !ok {
			t.Errorf("got %T, want fileChangedMsg", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
}

func TestBrowseReloadWaitsOnce(t *testing.T) {
	m, path := newTestBrowser(t, `{"a":1}`, 0)
	w, err := watchFile(path)
	if err != nil {
		t.Fatalf("watchFile: %v", err)
	}
	defer w.Close()
	m.watcher = w

	// Manual reload while the wait started by Init is still pending.
	next, cmd := m.Update(keyMsg("r"))
	if cmd == nil {
		t.Fatal("r did not schedule a reload")
	}
	next, wait := next.(browseModel).Update(cmd())
	m = next.(browseModel)
	if wait != nil {
		t.Error("manual reload started a second watcher wait")
	}
	if m.err != nil {
		t.Fatalf("reload error: %v", m.err)
	}

	// A reload triggered by the watcher consumed the wait and starts a new one.
	next, cmd = m.Update(fileChangedMsg{})
	if cmd == nil {
		t.Fatal("file change did not schedule a reload")
	}
	_, wait = next.(browseModel).Update(cmd())
	if wait == nil {
		t.Error("watched reload did not resume waiting")
	}
}
