package ws

import (
	"testing"
	"time"
)

func recv(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case frame, ok := <-c.send:
		if !ok {
			t.Fatalf("send channel closed unexpectedly")
		}
		return frame
	case <-time.After(2 * time.Second):
		t.Fatalf("no frame delivered")
		return nil
	}
}

func assertSilent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case frame := <-c.send:
		t.Fatalf("unexpected delivery %q", frame)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubBroadcastExcludesOriginator(t *testing.T) {
	h := NewHub()
	go h.Run()

	a := &Client{id: "a", send: make(chan []byte, 4)}
	b := &Client{id: "b", send: make(chan []byte, 4)}
	h.register <- a
	h.register <- b

	h.Broadcast([]byte("stroke"), "a")

	if got := recv(t, b); string(got) != "stroke" {
		t.Errorf("b received %q", got)
	}
	assertSilent(t, a)
}

func TestHubBroadcastToAll(t *testing.T) {
	h := NewHub()
	go h.Run()

	a := &Client{id: "a", send: make(chan []byte, 4)}
	b := &Client{id: "b", send: make(chan []byte, 4)}
	h.register <- a
	h.register <- b

	h.Broadcast([]byte("state"), "")

	if got := recv(t, a); string(got) != "state" {
		t.Errorf("a received %q", got)
	}
	if got := recv(t, b); string(got) != "state" {
		t.Errorf("b received %q", got)
	}
}

func TestHubTargetedSend(t *testing.T) {
	h := NewHub()
	go h.Run()

	a := &Client{id: "a", send: make(chan []byte, 4)}
	b := &Client{id: "b", send: make(chan []byte, 4)}
	h.register <- a
	h.register <- b

	h.Send("a", []byte("init"))

	if got := recv(t, a); string(got) != "init" {
		t.Errorf("a received %q", got)
	}
	assertSilent(t, b)
}

func TestHubDropsSlowClient(t *testing.T) {
	h := NewHub()
	go h.Run()

	slow := &Client{id: "slow", send: make(chan []byte, 1)}
	slow.send <- []byte("backlog") // buffer already full
	h.register <- slow

	h.Broadcast([]byte("next"), "") // cannot be delivered, client gets dropped

	if got := recv(t, slow); string(got) != "backlog" {
		t.Errorf("first frame was %q", got)
	}

	// The hub closes the channel when it drops the client.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-slow.send:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatalf("send channel never closed after drop")
		}
	}
}

func TestHubUnregisterIsIdempotent(t *testing.T) {
	h := NewHub()
	go h.Run()

	a := &Client{id: "a", send: make(chan []byte, 4)}
	h.register <- a
	h.unregister <- a
	h.unregister <- a // duplicate, must not close twice

	h.Broadcast([]byte("x"), "")
	// No receiver left; nothing to assert beyond not panicking.
}
