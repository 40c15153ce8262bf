// Package cooldown limits how often each action can be used on each pet.
package cooldown

import (
	"math"
	"sync"
	"time"

	"vpet/internal/pet"
)

// Gate tracks, per pet and per action, the instant the action becomes
// available again.
type Gate struct {
	mu     sync.Mutex
	window time.Duration
	now    func() time.Time
	table  map[string]map[pet.Action]time.Time
}

// NewGate returns a gate reserving window on every successful Reserve. A nil
// now uses pet.TimeNow.
func NewGate(window time.Duration, now func() time.Time) *Gate {
	if window <= 0 {
		window = pet.DefaultCooldown
	}
	if now == nil {
		now = func() time.Time { return pet.TimeNow() }
	}
	return &Gate{
		window: window,
		now:    now,
		table:  make(map[string]map[pet.Action]time.Time),
	}
}

// Window returns the cooldown duration
func (g *Gate) Window() time.Duration {
	return g.window
}

// Reserve checks and consumes the action in one step. When the cooldown has
// elapsed it starts a new window at now and returns ok. Otherwise it returns
// the time left and changes nothing.
func (g *Gate) Reserve(petID string, action pet.Action) (time.Duration, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	entry := g.entry(petID)
	if next := entry[action]; now.Before(next) {
		return next.Sub(now), false
	}
	entry[action] = now.Add(g.window)
	return 0, true
}

// Ready reports whether the action could be reserved right now without
// reserving it.
func (g *Gate) Ready(petID string, action pet.Action) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	next, ok := g.table[petID][action]
	return !ok || !g.now().Before(next)
}

// Forget drops the record for a pet that left the roster.
func (g *Gate) Forget(petID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.table, petID)
}

// Len returns the number of pets with a cooldown record
func (g *Gate) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.table)
}

// entry lazily creates a record with every action immediately available.
// Callers must hold mu.
func (g *Gate) entry(petID string) map[pet.Action]time.Time {
	entry, ok := g.table[petID]
	if !ok {
		entry = make(map[pet.Action]time.Time, len(pet.AllActions))
		for _, a := range pet.AllActions {
			entry[a] = time.Time{}
		}
		g.table[petID] = entry
	}
	return entry
}

// SecondsLeft rounds a remaining duration up to whole seconds.
func SecondsLeft(remaining time.Duration) int {
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Seconds()))
}
