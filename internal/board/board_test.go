package board

import (
	"reflect"
	"testing"
)

func seg(strokeID string, x1, y1, x2, y2 float64) Segment {
	return Segment{
		StrokeID: strokeID,
		UserID:   "u1",
		From:     Point{X: x1, Y: y1},
		To:       Point{X: x2, Y: y2},
		Color:    "#000",
		Width:    4,
	}
}

func TestApplySegmentCreatesStrokeLazily(t *testing.T) {
	var doc Document
	doc.ApplySegment(seg("s1", 0, 0, 10, 10))

	if len(doc.Strokes) != 1 {
		t.Fatalf("expected 1 stroke, got %d", len(doc.Strokes))
	}
	s := doc.Strokes[0]
	if s.ID != "s1" || s.UserID != "u1" || s.Color != "#000" || s.Width != 4 {
		t.Errorf("stroke did not inherit identity from first segment: %+v", s)
	}
	if len(s.Segments) != 1 {
		t.Errorf("expected 1 segment, got %d", len(s.Segments))
	}
	if s.Timestamp == 0 {
		t.Errorf("expected creation timestamp to be set")
	}
}

func TestApplySegmentAppendsInOrder(t *testing.T) {
	var doc Document
	doc.ApplySegment(seg("s1", 0, 0, 1, 1))
	doc.ApplySegment(seg("s1", 1, 1, 2, 2))
	doc.ApplySegment(seg("s1", 2, 2, 3, 3))

	s := doc.Stroke("s1")
	if s == nil || len(s.Segments) != 3 {
		t.Fatalf("expected 3 segments on s1")
	}
	for i, sg := range s.Segments {
		if sg.From.X != float64(i) {
			t.Errorf("segment %d out of order: from.x=%v", i, sg.From.X)
		}
	}
}

func TestApplySegmentLeavesOtherStrokesAlone(t *testing.T) {
	var doc Document
	doc.ApplySegment(seg("s1", 0, 0, 1, 1))
	doc.ApplySegment(seg("s2", 5, 5, 6, 6))

	before := doc.Clone()
	doc.ApplySegment(seg("s2", 6, 6, 7, 7))

	if !reflect.DeepEqual(doc.Stroke("s1"), before.Stroke("s1")) {
		t.Errorf("applying a segment to s2 modified s1")
	}
	if got := len(doc.Stroke("s2").Segments); got != 2 {
		t.Errorf("expected s2 segment count to grow by exactly 1, got %d", got)
	}
}

func TestApplyStrokeIsIdempotent(t *testing.T) {
	stroke := Stroke{
		ID:       "s1",
		UserID:   "u1",
		Color:    "#000",
		Width:    4,
		Segments: []Segment{seg("s1", 0, 0, 10, 10)},
	}

	var doc Document
	if !doc.ApplyStroke(stroke) {
		t.Fatalf("first ApplyStroke should insert")
	}
	once := doc.Clone()

	if doc.ApplyStroke(stroke) {
		t.Errorf("second ApplyStroke should be ignored")
	}
	if !reflect.DeepEqual(doc, once) {
		t.Errorf("duplicate ApplyStroke changed the document")
	}
}

func TestApplyStrokeAfterSegmentsDoesNotDuplicate(t *testing.T) {
	var doc Document
	doc.ApplySegment(seg("s1", 0, 0, 10, 10))

	// Completion message for a stroke that was already built up segment by
	// segment must not insert a second copy.
	doc.ApplyStroke(Stroke{ID: "s1", UserID: "u1", Color: "#000", Width: 4})

	if len(doc.Strokes) != 1 {
		t.Fatalf("expected 1 stroke after completion, got %d", len(doc.Strokes))
	}
}

func TestRemoveStroke(t *testing.T) {
	var doc Document
	doc.ApplySegment(seg("s1", 0, 0, 1, 1))
	doc.ApplySegment(seg("s2", 5, 5, 6, 6))

	if !doc.RemoveStroke("s1") {
		t.Fatalf("expected removal of s1 to be reported")
	}
	if doc.Stroke("s1") != nil {
		t.Errorf("s1 still present after removal")
	}
	if doc.Stroke("s2") == nil {
		t.Errorf("removing s1 also removed s2")
	}
	if doc.RemoveStroke("s1") {
		t.Errorf("removing an absent stroke should report false")
	}
}

func TestCloneIsValueIndependent(t *testing.T) {
	var doc Document
	doc.ApplySegment(seg("s1", 0, 0, 1, 1))

	snapshot := doc.Clone()
	doc.ApplySegment(seg("s1", 1, 1, 2, 2))
	doc.ApplySegment(seg("s2", 5, 5, 6, 6))

	if len(snapshot.Strokes) != 1 {
		t.Errorf("clone gained a stroke from later mutation")
	}
	if len(snapshot.Strokes[0].Segments) != 1 {
		t.Errorf("clone gained a segment from later mutation")
	}
}

func TestEraserColorPassesThrough(t *testing.T) {
	var doc Document
	s := seg("s1", 0, 0, 1, 1)
	s.Color = Eraser
	doc.ApplySegment(s)

	if doc.Stroke("s1").Color != Eraser {
		t.Errorf("eraser sentinel not preserved on the stroke")
	}
}
