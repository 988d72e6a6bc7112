package bridge

import (
	"sync"
	"time"
)

// defaultDedupTTL bounds how long a delivery key is remembered. Telegram stops
// retrying an update well before this.
const defaultDedupTTL = 10 * time.Minute

// Claim is the outcome of Dedup.Begin.
type Claim int

const (
	// ClaimNew means the caller owns the key and must call Done or Release.
	ClaimNew Claim = iota
	// ClaimInFlight means another delivery of the key is still being handled.
	ClaimInFlight
	// ClaimDone means the key was already handled.
	ClaimDone
)

type dedupEntry struct {
	at   time.Time
	done bool
}

// Dedup tracks delivery keys so a redelivered webhook update is answered only
// once. A key is in flight between Begin and Done; Release drops it so the
// next delivery is handled again. Keys expire after the TTL.
type Dedup struct {
	mu   sync.Mutex
	seen map[string]dedupEntry
	ttl  time.Duration
	now  func() time.Time
}

// NewDedup creates a deduplicator. A non-positive ttl uses the default.
func NewDedup(ttl time.Duration) *Dedup {
	if ttl <= 0 {
		ttl = defaultDedupTTL
	}
	return &Dedup{
		seen: make(map[string]dedupEntry),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Begin claims key for handling.
func (d *Dedup) Begin(key string) Claim {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	d.prune(now)
	if e, ok := d.seen[key]; ok {
		if e.done {
			return ClaimDone
		}
		return ClaimInFlight
	}
	d.seen[key] = dedupEntry{at: now}
	return ClaimNew
}

// Done marks key as handled.
func (d *Dedup) Done(key string) {
	d.mu.Lock()
	d.seen[key] = dedupEntry{at: d.now(), done: true}
	d.mu.Unlock()
}

// Release drops key so the next delivery is handled again.
func (d *Dedup) Release(key string) {
	d.mu.Lock()
	delete(d.seen, key)
	d.mu.Unlock()
}

// Len returns the number of remembered keys.
func (d *Dedup) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}

func (d *Dedup) prune(now time.Time) {
	for key, e := range d.seen {
		if now.Sub(e.at) > d.ttl {
			delete(d.seen, key)
		}
	}
}
