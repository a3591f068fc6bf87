package board

// maxHistoryEntries bounds the snapshot history so a long session cannot
// grow memory without limit. When the cap is exceeded the oldest snapshot
// is evicted.
const maxHistoryEntries = 100

// History is an append-only sequence of document snapshots plus a cursor,
// implementing session-wide undo/redo. The entry under the cursor is always
// equal to the live document immediately after any mutating operation
// settles.
//
// Snapshots are deep copies in both directions: Record copies the document
// in, and Undo/Redo copy the chosen snapshot out, so callers can never alias
// history-internal state through the live document.
type History struct {
	entries []Document
	cursor  int
}

// NewHistory returns a history seeded with a single empty document, cursor
// on it.
func NewHistory() *History {
	return &History{entries: []Document{{}}}
}

// Record appends a snapshot of doc as the new current entry. Any "future"
// entries beyond the cursor (redone-then-abandoned states) are discarded
// first, then the size cap is enforced by evicting the oldest entry.
func (h *History) Record(doc Document) {
	h.entries = append(h.entries[:h.cursor+1], doc.Clone())
	h.cursor = len(h.entries) - 1

	if len(h.entries) > maxHistoryEntries {
		h.entries = h.entries[1:]
		h.cursor--
	}
}

// Undo moves the cursor one entry back and returns a copy of that snapshot.
// Reports false, with no state change, when there is nothing to undo.
func (h *History) Undo() (Document, bool) {
	if h.cursor <= 0 {
		return Document{}, false
	}
	h.cursor--
	return h.entries[h.cursor].Clone(), true
}

// Redo moves the cursor one entry forward and returns a copy of that
// snapshot. Reports false, with no state change, when there is nothing to
// redo.
func (h *History) Redo() (Document, bool) {
	if h.cursor >= len(h.entries)-1 {
		return Document{}, false
	}
	h.cursor++
	return h.entries[h.cursor].Clone(), true
}

// Len returns the number of retained snapshots.
func (h *History) Len() int {
	return len(h.entries)
}
