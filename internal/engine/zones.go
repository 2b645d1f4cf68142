package engine

import (
	"container/heap"
	"sort"

	"github.com/mmcloughlin/geohash"

	"taxidash/internal/domain"
)

// Zone defaults.
const (
	DefaultZonePrecision = 6 // ~1.2km x 0.6km cells
	DefaultZoneLimit     = 10
)

// TopPickupZones buckets pickups into geohash cells of the given precision
// and returns the k busiest cells, busiest first. Ties are ordered by geohash.
func TopPickupZones(trips []domain.TripRecord, precision, k int) []domain.ZoneCount {
	if precision <= 0 || precision > 12 {
		precision = DefaultZonePrecision
	}
	if k <= 0 {
		k = DefaultZoneLimit
	}

	counts := make(map[string]int)
	for _, trip := range trips {
		hash := geohash.EncodeWithPrecision(trip.PickupLat, trip.PickupLng, uint(precision))
		counts[hash]++
	}

	// Iterate in key order so the heap sees a deterministic sequence.
	keys := make([]string, 0, len(counts))
	for hash := range counts {
		keys = append(keys, hash)
	}
	sort.Strings(keys)

	h := &zoneHeap{}
	for _, hash := range keys {
		zc := domain.ZoneCount{Geohash: hash, Count: counts[hash]}
		if h.Len() < k {
			heap.Push(h, zc)
			continue
		}
		if zoneLess((*h)[0], zc) {
			heap.Pop(h)
			heap.Push(h, zc)
		}
	}

	out := make([]domain.ZoneCount, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		zc := heap.Pop(h).(domain.ZoneCount)
		zc.Lat, zc.Lng = geohash.DecodeCenter(zc.Geohash)
		out[i] = zc
	}
	return out
}

// zoneLess orders zones from least to most busy; on equal counts the
// lexically larger geohash ranks lower.
func zoneLess(a, b domain.ZoneCount) bool {
	if a.Count != b.Count {
		return a.Count < b.Count
	}
	return a.Geohash > b.Geohash
}

// zoneHeap is a min-heap keeping the k busiest zones seen so far.
type zoneHeap []domain.ZoneCount

func (h zoneHeap) Len() int           { return len(h) }
func (h zoneHeap) Less(i, j int) bool { return zoneLess(h[i], h[j]) }
func (h zoneHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *zoneHeap) Push(x any) {
	*h = append(*h, x.(domain.ZoneCount))
}

func (h *zoneHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
