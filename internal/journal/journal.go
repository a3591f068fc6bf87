// Package journal persists completed strokes to a local bbolt file so the
// agent can replay a recorded session back onto a room.
package journal

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/VyshnaviPrasad-15/collaborative-canvas1/internal/board"
)

// Journal is an append-only stroke log, one bucket per room, keyed by an
// increasing sequence number so iteration order is insertion order.
type Journal struct {
	db *bolt.DB
}

// Open opens or creates the journal file at path.
func Open(path string) (*Journal, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return &Journal{db: db}, nil
}

// Append records one completed stroke for a room.
func (j *Journal) Append(roomKey string, stroke board.Stroke) error {
	return j.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(roomKey))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		seq, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("next sequence: %w", err)
		}
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)
		value, err := json.Marshal(stroke)
		if err != nil {
			return fmt.Errorf("marshal stroke: %w", err)
		}
		return b.Put(key, value)
	})
}

// Strokes returns every journaled stroke for a room in the order it was
// appended. A room with no journal yields an empty slice.
func (j *Journal) Strokes(roomKey string) ([]board.Stroke, error) {
	var out []board.Stroke
	err := j.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(roomKey))
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var s board.Stroke
			if err := json.Unmarshal(v, &s); err != nil {
				return fmt.Errorf("unmarshal stroke: %w", err)
			}
			out = append(out, s)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Close releases the journal file.
func (j *Journal) Close() error {
	return j.db.Close()
}
