package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/VyshnaviPrasad-15/collaborative-canvas1/internal/config"
	"github.com/VyshnaviPrasad-15/collaborative-canvas1/internal/discovery"
	"github.com/VyshnaviPrasad-15/collaborative-canvas1/internal/engine"
	"github.com/VyshnaviPrasad-15/collaborative-canvas1/internal/feed"
	"github.com/VyshnaviPrasad-15/collaborative-canvas1/internal/ws"
)

func main() {
	cfg := config.Load()

	var tap func(string, engine.Sender) engine.Sender
	if cfg.RedisAddr != "" {
		publisher, err := feed.NewPublisher(cfg.RedisAddr)
		if err != nil {
			log.Fatalf("redis connection failed: %v", err)
		}
		defer publisher.Close()
		tap = publisher.Tap
		log.Printf("live feed enabled, publishing to redis at %s", cfg.RedisAddr)
	}

	rooms := ws.NewRooms(tap)

	if cfg.MDNSPort > 0 {
		shutdown, err := discovery.Register(cfg.MDNSPort)
		if err != nil {
			log.Printf("mDNS advertisement disabled: %v", err)
		} else {
			defer shutdown()
			log.Printf("advertising %s on port %d", discovery.Service, cfg.MDNSPort)
		}
	}

	r := mux.NewRouter()
	r.HandleFunc("/ws", ws.Handler(rooms))
	r.HandleFunc("/ws/{room}", ws.Handler(rooms))

	log.Printf("collaborative canvas server starting on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
