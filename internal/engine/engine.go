// Package engine implements the server-side authority for one room: it owns
// the document, the undo/redo history and the participant registry, applies
// inbound events one at a time, and computes the broadcast set for each.
package engine

import (
	"sync"

	"github.com/VyshnaviPrasad-15/collaborative-canvas1/internal/board"
	"github.com/VyshnaviPrasad-15/collaborative-canvas1/internal/session"
)

// Sender dispatches outbound frames to connected gateways. Implementations
// must not block: the engine hands frames off fire-and-forget, and delivery
// guarantees are the transport's problem.
type Sender interface {
	// Send delivers a frame to one participant.
	Send(participantID string, frame []byte)
	// Broadcast delivers a frame to every participant except the one named;
	// an empty except means everyone.
	Broadcast(frame []byte, except string)
}

// Engine is the authority for a single room. All state transitions run under
// one mutex; frames are built inside the critical section from snapshots and
// dispatched after it.
type Engine struct {
	mu       sync.Mutex
	doc      board.Document
	history  *board.History
	registry *session.Registry
	sender   Sender
}

// New returns an engine with an empty document and a seeded history.
func New(sender Sender) *Engine {
	return &Engine{
		history:  board.NewHistory(),
		registry: session.NewRegistry(),
		sender:   sender,
	}
}

// snapshotLocked returns a deep copy of the current strokes, never nil so it
// always marshals as a JSON array.
func (e *Engine) snapshotLocked() []board.Stroke {
	strokes := e.doc.Clone().Strokes
	if strokes == nil {
		strokes = []board.Stroke{}
	}
	return strokes
}

// Connect registers a participant, sends it the init event with the current
// document and participant list, and announces it to everyone else.
func (e *Engine) Connect(id string) {
	e.mu.Lock()
	self := e.registry.Join(id)
	initFrame := frame(TypeInit, InitPayload{
		Strokes:   e.snapshotLocked(),
		UserID:    self.ID,
		UserColor: self.Color,
		Users:     e.registry.List(),
	})
	joinedFrame := frame(TypeUserJoined, self)
	e.mu.Unlock()

	e.sender.Send(id, initFrame)
	e.sender.Broadcast(joinedFrame, id)
}

// Disconnect removes a participant and announces the departure. Duplicate
// disconnects are a no-op with no broadcast.
func (e *Engine) Disconnect(id string) {
	e.mu.Lock()
	_, present := e.registry.Get(id)
	e.registry.Leave(id)
	e.mu.Unlock()

	if present {
		e.sender.Broadcast(frame(TypeUserLeft, UserLeftPayload{UserID: id}), id)
	}
}

// HandleSegment stamps the segment with the sender's identity, applies it to
// the document, and relays it to everyone else. The sender already has the
// segment from its own local prediction.
func (e *Engine) HandleSegment(participantID string, seg board.Segment) {
	seg.UserID = participantID

	e.mu.Lock()
	e.doc.ApplySegment(seg)
	e.mu.Unlock()

	e.sender.Broadcast(frame(TypeDrawSegment, seg), participantID)
}

// HandleStrokeComplete records an undo checkpoint at the stroke boundary and
// relays the completed stroke. The document usually already contains the
// stroke from its per-segment events; ApplyStroke only inserts when the
// stroke arrived solely as a completion message, and ignores duplicates.
func (e *Engine) HandleStrokeComplete(participantID string, stroke board.Stroke) {
	stroke.UserID = participantID
	for i := range stroke.Segments {
		stroke.Segments[i].UserID = participantID
	}

	e.mu.Lock()
	e.doc.ApplyStroke(stroke)
	e.history.Record(e.doc)
	e.mu.Unlock()

	e.sender.Broadcast(frame(TypeStrokeComplete, stroke), participantID)
}

// HandleStrokeErase deletes a stroke, records a checkpoint, and relays the
// removal. An unknown stroke id is a no-op with no broadcast.
func (e *Engine) HandleStrokeErase(participantID, strokeID string) {
	e.mu.Lock()
	found := e.doc.RemoveStroke(strokeID)
	if found {
		e.history.Record(e.doc)
	}
	e.mu.Unlock()

	if found {
		e.sender.Broadcast(frame(TypeStrokeRemoved, StrokeRemovedPayload{StrokeID: strokeID}), participantID)
	}
}

// HandleUndo steps the history back and, on success, replaces the live
// document and broadcasts the full new state to everyone including the
// requester. The full-state sync resolves any divergence in client-side
// optimistic state. History exhaustion is a silent no-op.
func (e *Engine) HandleUndo(participantID string) {
	e.mu.Lock()
	doc, ok := e.history.Undo()
	var stateFrame []byte
	if ok {
		e.doc = doc
		stateFrame = frame(TypeStateUpdate, StatePayload{Strokes: e.snapshotLocked()})
	}
	e.mu.Unlock()

	if ok {
		e.sender.Broadcast(stateFrame, "")
	}
}

// HandleRedo is symmetric to HandleUndo.
func (e *Engine) HandleRedo(participantID string) {
	e.mu.Lock()
	doc, ok := e.history.Redo()
	var stateFrame []byte
	if ok {
		e.doc = doc
		stateFrame = frame(TypeStateUpdate, StatePayload{Strokes: e.snapshotLocked()})
	}
	e.mu.Unlock()

	if ok {
		e.sender.Broadcast(stateFrame, "")
	}
}

// HandleCursorMove updates the participant's stored pointer position and
// relays it with the participant's color. Cursor positions are ephemeral and
// never recorded in history. An unknown participant is a no-op.
func (e *Engine) HandleCursorMove(participantID string, pos board.Point) {
	e.mu.Lock()
	e.registry.SetCursor(participantID, pos)
	p, ok := e.registry.Get(participantID)
	e.mu.Unlock()

	if ok {
		e.sender.Broadcast(frame(TypeUserCursor, CursorPayload{
			UserID:   participantID,
			Position: pos,
			Color:    p.Color,
		}), participantID)
	}
}

// Participants returns a snapshot of the room's participant list.
func (e *Engine) Participants() []session.Participant {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registry.List()
}

// Snapshot returns a deep copy of the current document.
func (e *Engine) Snapshot() board.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Clone()
}
