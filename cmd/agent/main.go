// The agent is a headless participant: it joins a room, records every
// completed stroke into a local journal, and can replay a recorded session
// back onto a room.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/VyshnaviPrasad-15/collaborative-canvas1/internal/board"
	"github.com/VyshnaviPrasad-15/collaborative-canvas1/internal/discovery"
	"github.com/VyshnaviPrasad-15/collaborative-canvas1/internal/engine"
	"github.com/VyshnaviPrasad-15/collaborative-canvas1/internal/journal"
)

func main() {
	addr := flag.String("addr", "", "server address (host:port); discovered via mDNS when empty")
	room := flag.String("room", "main", "room key to join")
	journalPath := flag.String("journal", "canvas-journal.db", "path to the stroke journal")
	replay := flag.Bool("replay", false, "replay the journaled session onto the room and exit")
	flag.Parse()

	if *addr == "" {
		log.Printf("no address given, browsing for %s on the local network", discovery.Service)
		found, err := discovery.Lookup(15 * time.Second)
		if err != nil {
			log.Fatalf("discovery failed: %v", err)
		}
		*addr = found
		log.Printf("discovered server at %s", *addr)
	}

	j, err := journal.Open(*journalPath)
	if err != nil {
		log.Fatalf("journal open failed: %v", err)
	}
	defer j.Close()

	url := fmt.Sprintf("ws://%s/ws/%s", *addr, *room)

	if *replay {
		if err := replaySession(url, *room, j); err != nil {
			log.Fatalf("replay failed: %v", err)
		}
		return
	}

	// Record mode: keep the session alive across connection drops. Each
	// successful connection resets the backoff.
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 0
	for {
		var conn *websocket.Conn
		err := backoff.Retry(func() error {
			c, _, err := websocket.DefaultDialer.Dial(url, nil)
			if err != nil {
				log.Printf("dial %s failed, retrying: %v", url, err)
				return err
			}
			conn = c
			return nil
		}, policy)
		if err != nil {
			log.Fatalf("giving up on %s: %v", url, err)
		}
		policy.Reset()

		log.Printf("connected to %s", url)
		record(conn, *room, j)
		conn.Close()
	}
}

// record journals stroke_complete events until the connection drops.
func record(conn *websocket.Conn, room string, j *journal.Journal) {
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			log.Printf("connection lost: %v", err)
			return
		}

		var env engine.Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			log.Printf("dropping unreadable frame: %v", err)
			continue
		}

		switch env.Type {
		case engine.TypeInit:
			var init engine.InitPayload
			if err := json.Unmarshal(env.Data, &init); err != nil {
				log.Printf("bad init payload: %v", err)
				continue
			}
			log.Printf("joined as %s (%s), %d strokes on the board, %d users",
				init.UserID, init.UserColor, len(init.Strokes), len(init.Users))
		case engine.TypeStrokeComplete:
			var stroke board.Stroke
			if err := json.Unmarshal(env.Data, &stroke); err != nil {
				log.Printf("bad stroke payload: %v", err)
				continue
			}
			if err := j.Append(room, stroke); err != nil {
				log.Printf("journal append failed: %v", err)
				continue
			}
			log.Printf("journaled stroke %s (%d segments) by %s", stroke.ID, len(stroke.Segments), stroke.UserID)
		case engine.TypeStateUpdate:
			var state engine.StatePayload
			if err := json.Unmarshal(env.Data, &state); err != nil {
				continue
			}
			log.Printf("state update, board now has %d strokes", len(state.Strokes))
		}
	}
}

// replaySession draws every journaled stroke back onto the room under fresh
// stroke ids, segment by segment the way a live client would.
func replaySession(url, room string, j *journal.Journal) error {
	strokes, err := j.Strokes(room)
	if err != nil {
		return err
	}
	if len(strokes) == 0 {
		return fmt.Errorf("journal holds no strokes for room %q", room)
	}

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", url, err)
	}
	defer conn.Close()

	log.Printf("replaying %d strokes onto %s", len(strokes), url)
	for _, stroke := range strokes {
		id := uuid.NewString()
		for _, seg := range stroke.Segments {
			seg.StrokeID = id
			if err := send(conn, engine.TypeDrawSegment, seg); err != nil {
				return err
			}
		}
		stroke.ID = id
		if err := send(conn, engine.TypeStrokeComplete, stroke); err != nil {
			return err
		}
		time.Sleep(50 * time.Millisecond)
	}

	log.Printf("replay complete")
	return nil
}

func send(conn *websocket.Conn, typ string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", typ, err)
	}
	b, err := json.Marshal(engine.Envelope{Type: typ, Data: data})
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	return conn.WriteMessage(websocket.TextMessage, b)
}
