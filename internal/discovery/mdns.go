// Package discovery advertises the server on the local network over mDNS and
// lets the agent find it without an explicit address.
package discovery

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/grandcat/zeroconf"
)

// Service is the mDNS service type the server registers under.
const Service = "_collabcanvas._tcp"

// Register advertises this server instance on the local network. The
// returned shutdown function unregisters it.
func Register(port int) (func(), error) {
	host, _ := os.Hostname()
	server, err := zeroconf.Register(
		fmt.Sprintf("collabcanvas-%s", host),
		Service,
		"local.",
		port,
		[]string{"proto=ws"},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("register mdns service: %w", err)
	}
	return server.Shutdown, nil
}

// Lookup browses for a server instance and returns its host:port. It waits
// at most timeout for an answer.
func Lookup(timeout time.Duration) (string, error) {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return "", fmt.Errorf("init mdns resolver: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	if err := resolver.Browse(ctx, Service, "local.", entries); err != nil {
		return "", fmt.Errorf("browse mdns services: %w", err)
	}

	for {
		select {
		case entry, ok := <-entries:
			if !ok {
				return "", fmt.Errorf("no server found on the local network")
			}
			if entry == nil || len(entry.AddrIPv4) == 0 {
				continue
			}
			return fmt.Sprintf("%s:%d", entry.AddrIPv4[0], entry.Port), nil
		case <-ctx.Done():
			return "", fmt.Errorf("no server found on the local network")
		}
	}
}
