package state

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// snapshotCache holds recently assembled snapshots per user. Entries expire
// on their own so a user who walks away does not pin memory, and version
// mismatches self-invalidate after a deploy changes the snapshot shape.
type snapshotCache struct {
	lru *expirable.LRU[string, *Snapshot]
}

func newSnapshotCache(size int, ttl time.Duration) *snapshotCache {
	return &snapshotCache{
		lru: expirable.NewLRU[string, *Snapshot](size, nil, ttl),
	}
}

func (c *snapshotCache) Get(userID string) (*Snapshot, bool) {
	snapshot, found := c.lru.Get(userID)
	if !found {
		return nil, false
	}
	if snapshot.Version != SnapshotSchemaVersion {
		c.lru.Remove(userID)
		return nil, false
	}
	return snapshot, true
}

func (c *snapshotCache) Set(userID string, snapshot *Snapshot) {
	c.lru.Add(userID, snapshot)
}

func (c *snapshotCache) Invalidate(userID string) {
	c.lru.Remove(userID)
}
