package engine

import (
	"encoding/json"
	"fmt"

	"github.com/VyshnaviPrasad-15/collaborative-canvas1/internal/board"
	"github.com/VyshnaviPrasad-15/collaborative-canvas1/internal/session"
)

// Event types carried in the envelope's "type" field.
const (
	TypeInit           = "init"
	TypeDrawSegment    = "draw_segment"
	TypeStrokeComplete = "stroke_complete"
	TypeStrokeErase    = "stroke_erase"
	TypeStrokeRemoved  = "stroke_removed"
	TypeCursorMove     = "cursor_move"
	TypeUndo           = "undo"
	TypeRedo           = "redo"
	TypeStateUpdate    = "state_update"
	TypeUserJoined     = "user_joined"
	TypeUserLeft       = "user_left"
	TypeUserCursor     = "user_cursor"
)

// Envelope is the wire framing for every message in both directions.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// InitPayload is sent once, only to a newly connected gateway.
type InitPayload struct {
	Strokes   []board.Stroke        `json:"strokes"`
	UserID    string                `json:"userId"`
	UserColor string                `json:"userColor"`
	Users     []session.Participant `json:"users"`
}

// StatePayload carries the full document, broadcast after undo/redo.
type StatePayload struct {
	Strokes []board.Stroke `json:"strokes"`
}

// UserLeftPayload identifies a departed participant.
type UserLeftPayload struct {
	UserID string `json:"userId"`
}

// CursorPayload announces another participant's pointer position.
type CursorPayload struct {
	UserID   string      `json:"userId"`
	Position board.Point `json:"position"`
	Color    string      `json:"color"`
}

// StrokeRemovedPayload identifies an erased stroke.
type StrokeRemovedPayload struct {
	StrokeID string `json:"strokeId"`
}

// frame packs an outbound event into its wire bytes.
func frame(typ string, data any) []byte {
	var raw json.RawMessage
	if data != nil {
		raw, _ = json.Marshal(data)
	}
	b, _ := json.Marshal(Envelope{Type: typ, Data: raw})
	return b
}

// inboundSegment mirrors the draw_segment payload with pointer fields so a
// missing coordinate is distinguishable from (0,0).
type inboundSegment struct {
	StrokeID string       `json:"strokeId"`
	UserID   string       `json:"userId"`
	From     *board.Point `json:"from"`
	To       *board.Point `json:"to"`
	Color    string       `json:"color"`
	Width    float64      `json:"width"`
}

// DecodeSegment validates a draw_segment payload. The client-supplied userId
// is carried through but overwritten by the engine; everything else is
// required.
func DecodeSegment(data []byte) (board.Segment, error) {
	var in inboundSegment
	if err := json.Unmarshal(data, &in); err != nil {
		return board.Segment{}, fmt.Errorf("decode segment: %w", err)
	}
	if in.StrokeID == "" || in.From == nil || in.To == nil || in.Color == "" || in.Width <= 0 {
		return board.Segment{}, fmt.Errorf("segment missing required fields")
	}
	return board.Segment{
		StrokeID: in.StrokeID,
		UserID:   in.UserID,
		From:     *in.From,
		To:       *in.To,
		Color:    in.Color,
		Width:    in.Width,
	}, nil
}

// inboundStroke accepts the segment list under either of the two field names
// that have appeared on the wire historically.
type inboundStroke struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Color     string          `json:"color"`
	Width     float64         `json:"width"`
	Timestamp int64           `json:"timestamp"`
	Segments  []board.Segment `json:"segments"`
	Segs      []board.Segment `json:"segs"`
}

// DecodeStroke validates a stroke_complete payload and coalesces the legacy
// "segs" field into the canonical segment list.
func DecodeStroke(data []byte) (board.Stroke, error) {
	var in inboundStroke
	if err := json.Unmarshal(data, &in); err != nil {
		return board.Stroke{}, fmt.Errorf("decode stroke: %w", err)
	}
	if in.ID == "" || in.Color == "" || in.Width <= 0 {
		return board.Stroke{}, fmt.Errorf("stroke missing required fields")
	}
	segs := in.Segments
	if len(segs) == 0 {
		segs = in.Segs
	}
	return board.Stroke{
		ID:        in.ID,
		UserID:    in.UserID,
		Color:     in.Color,
		Width:     in.Width,
		Timestamp: in.Timestamp,
		Segments:  segs,
	}, nil
}

// DecodeCursor validates a cursor_move payload.
func DecodeCursor(data []byte) (board.Point, error) {
	var p board.Point
	if err := json.Unmarshal(data, &p); err != nil {
		return board.Point{}, fmt.Errorf("decode cursor: %w", err)
	}
	return p, nil
}

// DecodeStrokeErase validates a stroke_erase payload.
func DecodeStrokeErase(data []byte) (string, error) {
	var in StrokeRemovedPayload
	if err := json.Unmarshal(data, &in); err != nil {
		return "", fmt.Errorf("decode stroke erase: %w", err)
	}
	if in.StrokeID == "" {
		return "", fmt.Errorf("stroke erase missing strokeId")
	}
	return in.StrokeID, nil
}
