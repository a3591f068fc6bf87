// Package session tracks the participants connected to a room: identity,
// display color and last-known pointer position.
package session

import (
	"fmt"
	"sync"

	"github.com/VyshnaviPrasad-15/collaborative-canvas1/internal/board"
)

// palette is the fixed set of display colors handed out round-robin. Colors
// wrap and may be reused once the palette is exhausted.
var palette = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#FFA07A",
	"#98D8C8", "#F7DC6F", "#BB8FCE", "#85C1E2",
}

// Participant is one connected user's identity and presence record. The id
// is stable for the lifetime of the connection; the cursor is nil until the
// user first reports a pointer position.
type Participant struct {
	ID     string       `json:"id"`
	Color  string       `json:"color"`
	Name   string       `json:"name"`
	Cursor *board.Point `json:"cursor"`
}

// Registry owns the participant set for one room.
type Registry struct {
	mu           sync.Mutex
	participants map[string]*Participant
	nextColor    int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{participants: make(map[string]*Participant)}
}

// Join registers a participant under the caller-supplied id (typically the
// transport connection's own identifier), assigns the next palette color and
// a sequence-numbered default name, and returns a copy of the record.
func (r *Registry) Join(id string) Participant {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := &Participant{
		ID:    id,
		Color: palette[r.nextColor%len(palette)],
		Name:  fmt.Sprintf("User %d", len(r.participants)+1),
	}
	r.nextColor++
	r.participants[id] = p
	return *p
}

// Leave removes the participant. Duplicate disconnect signals are a no-op.
func (r *Registry) Leave(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.participants, id)
}

// SetCursor updates the stored pointer position for the participant. An
// unknown id (a race with disconnect) is a no-op.
func (r *Registry) SetCursor(id string, pos board.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.participants[id]; ok {
		c := pos
		p.Cursor = &c
	}
}

// Get returns the participant record and whether it exists.
func (r *Registry) Get(id string) (Participant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[id]
	if !ok {
		return Participant{}, false
	}
	return *p, true
}

// List returns a snapshot of all current participants.
func (r *Registry) List() []Participant {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Participant, 0, len(r.participants))
	for _, p := range r.participants {
		out = append(out, *p)
	}
	return out
}
