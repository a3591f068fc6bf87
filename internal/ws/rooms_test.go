package ws

import (
	"testing"

	"github.com/VyshnaviPrasad-15/collaborative-canvas1/internal/engine"
)

func TestRoomsAreKeyedSingletons(t *testing.T) {
	rooms := NewRooms(nil)

	a := rooms.Get("a")
	if again := rooms.Get("a"); again != a {
		t.Errorf("same key returned a different room instance")
	}
	if b := rooms.Get("b"); b == a {
		t.Errorf("different keys share a room instance")
	}
}

func TestRoomsAreIndependentEngines(t *testing.T) {
	rooms := NewRooms(nil)

	a := rooms.Get("a")
	b := rooms.Get("b")

	a.Engine.Connect("p1")

	if got := len(a.Engine.Participants()); got != 1 {
		t.Errorf("room a should have 1 participant, got %d", got)
	}
	if got := len(b.Engine.Participants()); got != 0 {
		t.Errorf("room b leaked room a's participant")
	}
}

func TestRoomsApplyTap(t *testing.T) {
	var tappedRooms []string
	tap := func(key string, next engine.Sender) engine.Sender {
		tappedRooms = append(tappedRooms, key)
		return next
	}

	rooms := NewRooms(tap)
	rooms.Get("a")
	rooms.Get("a")
	rooms.Get("b")

	if len(tappedRooms) != 2 || tappedRooms[0] != "a" || tappedRooms[1] != "b" {
		t.Errorf("tap invocations %v, want one per created room", tappedRooms)
	}
}
