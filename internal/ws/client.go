package ws

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/VyshnaviPrasad-15/collaborative-canvas1/internal/engine"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client is one connected participant's gateway: a websocket connection plus
// the buffered channel its write pump drains.
type Client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// ServeConn upgrades the request and runs the connection's lifecycle against
// the given room: register, init handshake, read loop, disconnect. It blocks
// until the client goes away.
func ServeConn(room *Room, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("upgrade failed: %v", err)
		return
	}

	client := &Client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, 256),
	}
	room.Hub.register <- client
	go client.writePump()

	room.Engine.Connect(client.id)
	client.readPump(room)
}

// readPump applies inbound events in delivery order. Malformed events are
// dropped at this boundary and never reach the engine.
func (c *Client) readPump(room *Room) {
	defer func() {
		room.Hub.unregister <- c
		room.Engine.Disconnect(c.id)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			log.Printf("client %s disconnected: %v", c.id, err)
			return
		}

		var env engine.Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			log.Printf("client %s: dropping unreadable frame: %v", c.id, err)
			continue
		}

		switch env.Type {
		case engine.TypeDrawSegment:
			seg, err := engine.DecodeSegment(env.Data)
			if err != nil {
				log.Printf("client %s: %v", c.id, err)
				continue
			}
			room.Engine.HandleSegment(c.id, seg)
		case engine.TypeStrokeComplete:
			stroke, err := engine.DecodeStroke(env.Data)
			if err != nil {
				log.Printf("client %s: %v", c.id, err)
				continue
			}
			room.Engine.HandleStrokeComplete(c.id, stroke)
		case engine.TypeStrokeErase:
			strokeID, err := engine.DecodeStrokeErase(env.Data)
			if err != nil {
				log.Printf("client %s: %v", c.id, err)
				continue
			}
			room.Engine.HandleStrokeErase(c.id, strokeID)
		case engine.TypeCursorMove:
			pos, err := engine.DecodeCursor(env.Data)
			if err != nil {
				log.Printf("client %s: %v", c.id, err)
				continue
			}
			room.Engine.HandleCursorMove(c.id, pos)
		case engine.TypeUndo:
			room.Engine.HandleUndo(c.id)
		case engine.TypeRedo:
			room.Engine.HandleRedo(c.id)
		default:
			log.Printf("client %s: dropping unknown event %q", c.id, env.Type)
		}
	}
}

// writePump drains the send channel onto the connection. It exits when the
// hub closes the channel, closing the connection so the read pump unwinds.
func (c *Client) writePump() {
	defer c.conn.Close()
	for {
		message, ok := <-c.send
		if !ok {
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}
