// Package block implements the distraction-blocking gate: hostname
// matching against the configured block list plus an engage/release fanout
// to registered rendering surfaces.
package block

import (
	"strings"
	"sync"
)

// Surface renders a blocking effect for a destination. Implementations are
// host-specific (an overlay, a proxy rule, a hosts-file entry).
type Surface interface {
	// Engage is called when a navigation to host must be blocked.
	Engage(host string)
	// Release lifts any active blocking effect. Called when a session
	// stops or completes; releasing an idle surface is a no-op.
	Release()
	// Current reports the host the surface is presently showing, or ""
	// when it shows nothing. Used to sweep surfaces that were already on
	// a blocked destination when a session starts.
	Current() string
}

// NormalizeHost lowercases the hostname and strips a single leading "www.".
func NormalizeHost(raw string) string {
	host := strings.ToLower(strings.TrimSpace(raw))
	host = strings.TrimPrefix(host, "www.")
	return host
}

// HostBlocked reports whether the normalized host ends with one of the
// configured blocked suffixes.
func HostBlocked(host string, blocked []string) bool {
	h := NormalizeHost(host)
	if h == "" {
		return false
	}
	for _, suffix := range blocked {
		if suffix == "" {
			continue
		}
		if strings.HasSuffix(h, NormalizeHost(suffix)) {
			return true
		}
	}
	return false
}

// Gate fans blocking decisions out to registered surfaces.
type Gate struct {
	mu       sync.Mutex
	surfaces []Surface
}

// NewGate returns an empty gate.
func NewGate() *Gate {
	return &Gate{}
}

// Register adds a surface to the fanout.
func (g *Gate) Register(s Surface) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.surfaces = append(g.surfaces, s)
}

// Engage notifies every surface that host must be blocked.
func (g *Gate) Engage(host string) {
	g.mu.Lock()
	surfaces := append([]Surface(nil), g.surfaces...)
	g.mu.Unlock()
	for _, s := range surfaces {
		s.Engage(host)
	}
}

// Sweep engages every surface whose currently shown host satisfies
// blocked. A navigation made before the session started is otherwise never
// gated, since no navigation event will arrive for it.
func (g *Gate) Sweep(blocked func(host string) bool) {
	g.mu.Lock()
	surfaces := append([]Surface(nil), g.surfaces...)
	g.mu.Unlock()
	for _, s := range surfaces {
		if host := s.Current(); host != "" && blocked(host) {
			s.Engage(host)
		}
	}
}

// ReleaseAll lifts blocking on every surface.
func (g *Gate) ReleaseAll() {
	g.mu.Lock()
	surfaces := append([]Surface(nil), g.surfaces...)
	g.mu.Unlock()
	for _, s := range surfaces {
		s.Release()
	}
}
