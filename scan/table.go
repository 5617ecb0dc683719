package scan

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
)

const initialBuckets = 1 << 10

type tableEntry struct {
	hash    uint64
	name    []byte
	lowest  float64
	highest float64
}

// stationTable is a worker-local open-addressing table keyed by the
// xxhash of the station name. A matching hash is never trusted on its
// own: every probe hit compares the stored name, so colliding names
// stay distinct.
type stationTable struct {
	entries []tableEntry
	mask    uint64
	size    int
}

func newStationTable() *stationTable {
	return &stationTable{
		entries: make([]tableEntry, initialBuckets),
		mask:    initialBuckets - 1,
	}
}

// observe folds one reading into the table. The name slice is only valid
// for the duration of the call and is copied on first insertion.
func (t *stationTable) observe(name []byte, v float64) {
	h := xxhash.Sum64(name)
	i := h & t.mask
	for {
		e := &t.entries[i]
		if e.name == nil {
			e.hash = h
			e.name = append([]byte(nil), name...)
			e.lowest = v
			e.highest = v
			t.size++
			if t.size > len(t.entries)*3/4 {
				t.grow()
			}
			return
		}
		if e.hash == h && bytes.Equal(e.name, name) {
			e.lowest = min(e.lowest, v)
			e.highest = max(e.highest, v)
			return
		}
		i = (i + 1) & t.mask
	}
}

func (t *stationTable) grow() {
	old := t.entries
	t.entries = make([]tableEntry, 2*len(old))
	t.mask = uint64(len(t.entries) - 1)
	for i := range old {
		e := &old[i]
		if e.name == nil {
			continue
		}
		j := e.hash & t.mask
		for t.entries[j].name != nil {
			j = (j + 1) & t.mask
		}
		t.entries[j] = *e
	}
}

// fold visits every station in the table in bucket order.
func (t *stationTable) fold(f func(name []byte, lowest, highest float64)) {
	for i := range t.entries {
		e := &t.entries[i]
		if e.name != nil {
			f(e.name, e.lowest, e.highest)
		}
	}
}
