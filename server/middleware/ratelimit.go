// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"codeberg.org/guidefe/guidefe/config"
)

// staleClientAge is how long an idle client entry survives before cleanup.
const staleClientAge = 10 * time.Minute

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	clientsMu sync.Mutex
	clients   = make(map[string]*client)
)

// RateLimit applies a per-client token bucket when the limiter is enabled.
//
// Clients are keyed by remote IP. The allowance comes from the limiter
// section of the configuration; requests over budget receive 429.
func RateLimit(w http.ResponseWriter, r *http.Request, next http.Handler) {
	if !config.Global.Limiter.Enabled {
		next.ServeHTTP(w, r)

		return
	}

	if !limiterFor(clientKey(r)).Allow() {
		log.Warn().
			Str("remote", r.RemoteAddr).
			Str("path", r.URL.Path).
			Msg("Rate limit exceeded")

		w.Header().Set("Retry-After", "1")
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)

		return
	}

	next.ServeHTTP(w, r)
}

// clientKey extracts the remote IP, falling back to the whole RemoteAddr
// when it has no port.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

func limiterFor(key string) *rate.Limiter {
	clientsMu.Lock()
	defer clientsMu.Unlock()

	c, ok := clients[key]
	if !ok {
		c = &client{
			limiter: rate.NewLimiter(
				rate.Limit(config.Global.Limiter.RequestsPerSecond),
				config.Global.Limiter.Burst,
			),
		}
		clients[key] = c
	}

	c.lastSeen = time.Now()

	if len(clients) > 1 && len(clients)%1024 == 0 {
		removeStaleClients()
	}

	return c.limiter
}

// removeStaleClients drops entries not seen recently. Caller holds clientsMu.
func removeStaleClients() {
	cutoff := time.Now().Add(-staleClientAge)

	for key, c := range clients {
		if c.lastSeen.Before(cutoff) {
			delete(clients, key)
		}
	}
}
