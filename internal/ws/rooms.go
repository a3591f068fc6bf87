package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/VyshnaviPrasad-15/collaborative-canvas1/internal/engine"
)

// DefaultRoom is where connections without an explicit room key land.
const DefaultRoom = "main"

// Room bundles one fully independent instance of the engine with the hub
// that fans its frames out.
type Room struct {
	Key    string
	Engine *engine.Engine
	Hub    *Hub
}

// Rooms lazily creates and caches rooms by key. An optional tap wraps each
// room's sender, e.g. to mirror broadcasts onto an external feed.
type Rooms struct {
	mu    sync.Mutex
	rooms map[string]*Room
	tap   func(roomKey string, next engine.Sender) engine.Sender
}

// NewRooms returns an empty room table. tap may be nil.
func NewRooms(tap func(roomKey string, next engine.Sender) engine.Sender) *Rooms {
	return &Rooms{rooms: make(map[string]*Room), tap: tap}
}

// Get returns the room for key, creating it on first use.
func (rs *Rooms) Get(key string) *Room {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if room, ok := rs.rooms[key]; ok {
		return room
	}

	hub := NewHub()
	go hub.Run()

	var sender engine.Sender = hub
	if rs.tap != nil {
		sender = rs.tap(key, hub)
	}

	room := &Room{Key: key, Engine: engine.New(sender), Hub: hub}
	rs.rooms[key] = room
	log.Printf("room %q created", key)
	return room
}

// Handler routes websocket connections to their room by the {room} path
// variable, defaulting to DefaultRoom when none is present.
func Handler(rooms *Rooms) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := mux.Vars(r)["room"]
		if key == "" {
			key = DefaultRoom
		}
		ServeConn(rooms.Get(key), w, r)
	}
}
