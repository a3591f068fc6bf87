// Package ws is the connection gateway: it upgrades HTTP connections,
// translates inbound wire messages into engine calls, and fans outbound
// frames back out to clients.
package ws

import "log"

// outbound is one delivery instruction for the hub goroutine. A non-empty to
// targets a single client; otherwise the frame goes to every client except
// the one named by except.
type outbound struct {
	to     string
	except string
	frame  []byte
}

// Hub maintains the set of active clients for one room and serializes all
// delivery through its run loop. It implements engine.Sender.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	dispatch   chan outbound
}

// NewHub returns a hub; the caller must start Run in its own goroutine.
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		dispatch:   make(chan outbound, 64),
	}
}

// Run owns the client map. Clients whose send buffer is full are dropped
// rather than waited on; their read pump notices the closed connection and
// runs the normal disconnect path.
func (h *Hub) Run() {
	clients := make(map[string]*Client)
	for {
		select {
		case c := <-h.register:
			clients[c.id] = c
			log.Printf("client %s registered, total %d", c.id, len(clients))
		case c := <-h.unregister:
			if _, ok := clients[c.id]; ok {
				delete(clients, c.id)
				close(c.send)
				log.Printf("client %s unregistered, total %d", c.id, len(clients))
			}
		case out := <-h.dispatch:
			if out.to != "" {
				if c, ok := clients[out.to]; ok {
					c.deliver(out.frame, clients)
				}
				continue
			}
			for id, c := range clients {
				if id == out.except {
					continue
				}
				c.deliver(out.frame, clients)
			}
		}
	}
}

// Send queues a frame for one participant.
func (h *Hub) Send(participantID string, frame []byte) {
	h.dispatch <- outbound{to: participantID, frame: frame}
}

// Broadcast queues a frame for every participant except the one named; an
// empty except reaches everyone.
func (h *Hub) Broadcast(frame []byte, except string) {
	h.dispatch <- outbound{except: except, frame: frame}
}

// deliver hands a frame to the client's write pump, dropping the client if
// its buffer is full.
func (c *Client) deliver(frame []byte, clients map[string]*Client) {
	select {
	case c.send <- frame:
	default:
		delete(clients, c.id)
		close(c.send)
		log.Printf("client %s too slow, dropped", c.id)
	}
}
