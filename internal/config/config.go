// Package config reads server configuration from the environment with
// sensible local-development fallbacks.
package config

import (
	"os"
	"strconv"
)

type Config struct {
	Addr      string // listen address for the websocket server
	RedisAddr string // optional; empty disables the live feed
	MDNSPort  int    // port advertised over mDNS; 0 disables advertisement
}

func Load() Config {
	return Config{
		Addr:      getenv("CANVAS_ADDR", ":3000"),
		RedisAddr: getenv("REDIS_ADDR", ""),
		MDNSPort:  getenvInt("CANVAS_MDNS_PORT", 0),
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
