// Package feed mirrors each room's outbound broadcast stream onto a redis
// channel so external consumers (recorders, dashboards) can watch a room
// without holding a websocket connection. The server only publishes; room
// authority is unaffected.
package feed

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/VyshnaviPrasad-15/collaborative-canvas1/internal/engine"
)

// Publisher publishes room frames to redis channels named "room:<key>".
type Publisher struct {
	client *redis.Client
}

// NewPublisher connects to redis at addr and verifies the connection.
func NewPublisher(addr string) (*Publisher, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &Publisher{client: client}, nil
}

// NewPublisherWithClient wraps an existing redis client.
func NewPublisherWithClient(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// Channel returns the redis channel name for a room key.
func Channel(roomKey string) string {
	return "room:" + roomKey
}

// Publish sends one frame to the room's channel, fire-and-forget. Publish
// failures are logged and otherwise ignored; the feed is best-effort.
func (p *Publisher) Publish(roomKey string, frame []byte) {
	if err := p.client.Publish(context.Background(), Channel(roomKey), frame).Err(); err != nil {
		log.Printf("feed publish to %s failed: %v", Channel(roomKey), err)
	}
}

// Close releases the redis connection.
func (p *Publisher) Close() error {
	return p.client.Close()
}

// Tap wraps a sender so every broadcast frame is also published to the
// room's feed channel. Targeted sends (the init handshake) stay private.
func (p *Publisher) Tap(roomKey string, next engine.Sender) engine.Sender {
	return &tap{pub: p, room: roomKey, next: next}
}

type tap struct {
	pub  *Publisher
	room string
	next engine.Sender
}

func (t *tap) Send(participantID string, frame []byte) {
	t.next.Send(participantID, frame)
}

func (t *tap) Broadcast(frame []byte, except string) {
	t.next.Broadcast(frame, except)
	t.pub.Publish(t.room, frame)
}
