package session

import (
	"testing"

	"github.com/google/uuid"

	"github.com/matzehuels/apiscope/pkg/expansion"
	"github.com/matzehuels/apiscope/pkg/monitor"
	"github.com/matzehuels/apiscope/pkg/value"
)

var (
	apiA = monitor.Entity{Kind: monitor.KindAPI, ID: "a"}
	apiB = monitor.Entity{Kind: monitor.KindAPI, ID: "b"}
	prjA = monitor.Entity{Kind: monitor.KindProject, ID: "a"}
)

func TestNewViewer(t *testing.T) {
	v := NewViewer()
	if _, err := uuid.Parse(v.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", v.ID, err)
	}
	if v.Showing() || v.State().Len() != 0 || v.Resets() != 0 {
		t.Errorf("new viewer not empty: %+v", v)
	}
	if NewViewer().ID == v.ID {
		t.Error("viewer IDs repeat")
	}
}

func TestShowKeepsStateForSameEntity(t *testing.T) {
	v := NewViewer()
	if v.Show(apiA) {
		t.Error("first Show reported kept state")
	}
	v.Toggle(value.Root())
	v.Toggle(value.Root().Key("x"))

	if !v.Show(apiA) {
		t.Error("Show of the same entity discarded state")
	}
	if !v.State().Equal(expansion.Of(value.Root(), value.Root().Key("x"))) {
		t.Errorf("state = %v", v.State().Keys())
	}
	if v.Resets() != 1 {
		t.Errorf("Resets = %d, want 1", v.Resets())
	}
}

func TestShowResetsForOtherEntity(t *testing.T) {
	for _, other := range []monitor.Entity{apiB, prjA} {
		v := NewViewer()
		v.Show(apiA)
		v.Toggle(value.Root())

		if v.Show(other) {
			t.Errorf("Show(%s) kept state", other)
		}
		if v.State().Len() != 0 {
			t.Errorf("Show(%s) left %v open", other, v.State().Keys())
		}
		if v.Entity() != other {
			t.Errorf("Entity = %s, want %s", v.Entity(), other)
		}
	}
}

func TestClear(t *testing.T) {
	v := NewViewer()
	v.Show(apiA)
	v.Toggle(value.Root())
	v.Clear()

	if v.Showing() || v.State().Len() != 0 {
		t.Errorf("Clear left %s with %v", v.Entity(), v.State().Keys())
	}
	if v.Show(apiA) {
		t.Error("Show after Clear kept state")
	}
}

func TestSetAndToggle(t *testing.T) {
	v := NewViewer()
	v.Show(apiA)

	doc := value.MustParse(`{"a":{"b":[1]}}`)
	all := expansion.ExpandAll(doc, value.Root())
	v.Set(all)
	if !v.State().Equal(all) {
		t.Error("Set did not replace state")
	}

	before := v.State()
	after := v.Toggle(value.Root())
	if after.IsOpen(value.Root()) || !before.IsOpen(value.Root()) {
		t.Error("Toggle mutated an earlier state or did not flip")
	}
}
