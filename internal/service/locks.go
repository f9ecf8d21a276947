package service

import "sync"

// GuildLocks serializes mutating operations per guild. Every resolver locks
// the acting guild for the full read-decide-write cycle, so outcomes within
// one process are strictly ordered.
//
// Entries are never evicted. One mutex per active guild is small, and a
// stable mutex identity is what makes the lock correct.
type GuildLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewGuildLocks creates an empty lock table
func NewGuildLocks() *GuildLocks {
	return &GuildLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for a guild and returns its unlock function.
//
//	defer locks.Lock(guildID)()
func (g *GuildLocks) Lock(guildID string) func() {
	g.mu.Lock()
	m, ok := g.locks[guildID]
	if !ok {
		m = &sync.Mutex{}
		g.locks[guildID] = m
	}
	g.mu.Unlock()

	m.Lock()
	return m.Unlock
}
