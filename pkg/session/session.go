// Package session ties expansion state to the entity being displayed.
//
// A [Viewer] is what a tree view holds between frames: the entity on screen
// and the set of open branches. The open set survives any number of
// re-renders, and any reload of the data, as long as the same entity stays on
// screen. Showing a different entity, or clearing the view because the entity
// went away, starts over with every branch collapsed.
//
// # Usage
//
//	v := session.NewViewer()
//	v.Show(api.Entity())
//	v.Toggle(value.Root())          // open the root
//	lines := tree.Render(api.Response, value.Root(), v.State())
//
//	// New data for the same API: state is kept.
//	v.Show(api.Entity())
//
//	// Another API: state is reset.
//	v.Show(other.Entity())
//
// A Viewer is not safe for concurrent use. In the interactive browser it is
// owned by the update loop.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/apiscope/pkg/expansion"
	"github.com/matzehuels/apiscope/pkg/monitor"
	"github.com/matzehuels/apiscope/pkg/value"
)

// Viewer holds the expansion state of one view.
type Viewer struct {
	ID        string
	CreatedAt time.Time

	entity monitor.Entity
	state  expansion.State
	resets int
}

// NewViewer creates a viewer showing nothing.
func NewViewer() *Viewer {
	return &Viewer{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		state:     expansion.Empty(),
	}
}

// Show displays e. The expansion state is kept when e is the entity already
// shown and discarded otherwise. It reports whether the state was kept.
func (v *Viewer) Show(e monitor.Entity) bool {
	if !v.entity.IsZero() && v.entity == e {
		return true
	}
	v.entity = e
	v.reset()
	return false
}

// Clear removes the displayed entity and discards the expansion state.
func (v *Viewer) Clear() {
	v.entity = monitor.Entity{}
	v.reset()
}

func (v *Viewer) reset() {
	v.state = expansion.Reset()
	v.resets++
}

// Toggle flips the open state of p and returns the new state.
func (v *Viewer) Toggle(p value.Path) expansion.State {
	v.state = v.state.Toggle(p)
	return v.state
}

// Set replaces the expansion state, e.g. after an expand-all.
func (v *Viewer) Set(s expansion.State) {
	v.state = s
}

// State returns the current expansion state.
func (v *Viewer) State() expansion.State { return v.state }

// Entity returns the displayed entity; the zero Entity when nothing is shown.
func (v *Viewer) Entity() monitor.Entity { return v.entity }

// Showing reports whether an entity is displayed.
func (v *Viewer) Showing() bool { return !v.entity.IsZero() }

// Resets returns how many times the state has been discarded.
func (v *Viewer) Resets() int { return v.resets }
