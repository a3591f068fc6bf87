// Package board holds the authoritative drawing model: segments grouped into
// strokes, strokes ordered into a document, and the snapshot history that
// backs session-wide undo/redo.
package board

import "time"

// Eraser is the sentinel color for segments drawn with the eraser tool.
const Eraser = "eraser"

// Point is a position on the canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Segment is one atomic line piece of a stroke. Segments are immutable once
// created.
type Segment struct {
	StrokeID string  `json:"strokeId"`
	UserID   string  `json:"userId"`
	From     Point   `json:"from"`
	To       Point   `json:"to"`
	Color    string  `json:"color"`
	Width    float64 `json:"width"`
}

// Stroke is one continuous pen gesture: the ordered segments sharing a stroke
// id. Color, width and owner are fixed by the first segment and never revised
// by later ones.
type Stroke struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Color     string    `json:"color"`
	Width     float64   `json:"width"`
	Timestamp int64     `json:"timestamp"`
	Segments  []Segment `json:"segments"`
}

// clone returns a deep copy of the stroke.
func (s Stroke) clone() Stroke {
	out := s
	out.Segments = make([]Segment, len(s.Segments))
	copy(out.Segments, s.Segments)
	return out
}

// Document is the full authoritative collection of strokes, in
// first-segment-arrival order.
type Document struct {
	Strokes []Stroke `json:"strokes"`
}

// Clone returns a deep copy of the document. The copy shares no slices with
// the original, so mutating one can never bleed into the other.
func (d Document) Clone() Document {
	out := Document{Strokes: make([]Stroke, len(d.Strokes))}
	for i, s := range d.Strokes {
		out.Strokes[i] = s.clone()
	}
	return out
}

// Stroke returns the stroke with the given id, or nil.
func (d *Document) Stroke(id string) *Stroke {
	for i := range d.Strokes {
		if d.Strokes[i].ID == id {
			return &d.Strokes[i]
		}
	}
	return nil
}

// ApplySegment appends seg to its stroke, creating the stroke lazily on the
// first segment that references an unseen stroke id. The new stroke inherits
// owner, color and width from that first segment.
func (d *Document) ApplySegment(seg Segment) {
	s := d.Stroke(seg.StrokeID)
	if s == nil {
		d.Strokes = append(d.Strokes, Stroke{
			ID:        seg.StrokeID,
			UserID:    seg.UserID,
			Color:     seg.Color,
			Width:     seg.Width,
			Timestamp: time.Now().UnixMilli(),
		})
		s = &d.Strokes[len(d.Strokes)-1]
	}
	s.Segments = append(s.Segments, seg)
}

// ApplyStroke inserts stroke unless a stroke with that id already exists.
// A stroke that arrived segment by segment must not be duplicated when its
// completion message shows up, so a duplicate id is silently ignored.
// Reports whether an insertion occurred.
func (d *Document) ApplyStroke(stroke Stroke) bool {
	if d.Stroke(stroke.ID) != nil {
		return false
	}
	d.Strokes = append(d.Strokes, stroke.clone())
	return true
}

// RemoveStroke deletes the stroke with the given id and reports whether a
// removal occurred.
func (d *Document) RemoveStroke(strokeID string) bool {
	for i := range d.Strokes {
		if d.Strokes[i].ID == strokeID {
			d.Strokes = append(d.Strokes[:i], d.Strokes[i+1:]...)
			return true
		}
	}
	return false
}
