package replication

import "github.com/zeebo/xxh3"

// Checksum returns a hash of the replicated state of a snapshot. The tick is excluded, so two snapshots of
// a character that did not change between ticks share a checksum.
func Checksum(s Snapshot) uint64 {
	s.Tick = 0
	return xxh3.Hash(EncodeSnapshot(s))
}

// Deduplicator drops snapshots whose state matches the last one passed through it.
type Deduplicator struct {
	last    uint64
	hasLast bool
}

// Changed reports whether s differs from the previous snapshot given to Changed, and remembers it.
func (d *Deduplicator) Changed(s Snapshot) bool {
	sum := Checksum(s)
	if d.hasLast && sum == d.last {
		return false
	}
	d.last, d.hasLast = sum, true
	return true
}

// Reset forgets the last snapshot.
func (d *Deduplicator) Reset() {
	d.hasLast = false
}
