package diag

import (
	"maps"
	"slices"
	"sync/atomic"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// HopRecord describes one transmission over the medium.
type HopRecord struct {
	Src     uint8
	Dst     uint8
	Bits    int
	Samples int
	When    time.Time
}

// Tracker retains recent hop records for a short window so the demo and
// perf tooling can report on them without the transport accumulating
// unbounded state. Records expire on their own.
type Tracker struct {
	seq   atomic.Uint64
	cache *ttlcache.Cache[uint64, HopRecord]
}

func NewTracker(ttl time.Duration) *Tracker {
	cache := ttlcache.New[uint64, HopRecord](
		ttlcache.WithTTL[uint64, HopRecord](ttl),
		ttlcache.WithDisableTouchOnHit[uint64, HopRecord](),
	)
	go cache.Start()
	return &Tracker{cache: cache}
}

func (t *Tracker) Observe(rec HopRecord) {
	t.cache.Set(t.seq.Add(1), rec, ttlcache.DefaultTTL)
}

// Recent returns the hop records still inside the retention window, in
// transmission order.
func (t *Tracker) Recent() []HopRecord {
	items := t.cache.Items()
	keys := slices.Sorted(maps.Keys(items))
	recs := make([]HopRecord, 0, len(keys))
	for _, k := range keys {
		recs = append(recs, items[k].Value())
	}
	return recs
}

func (t *Tracker) Stop() {
	t.cache.Stop()
}
