package prediction

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/oerror"
)

const (
	// DefaultMaxPendingMoves is the amount of unacknowledged moves kept before the oldest are dropped.
	DefaultMaxPendingMoves = 96
	// DefaultMaxCombinedDelta is the longest delta time a combined move may cover.
	DefaultMaxCombinedDelta = 0.05
)

// Buffer is the prediction buffer of a single character. It holds every move that was simulated locally and
// not yet acknowledged by the authority, ordered by tick.
type Buffer struct {
	moves *orderedmap.OrderedMap[uint64, SavedMove]

	maxPending       int
	maxCombinedDelta float32

	lastRecorded uint64
	hasRecorded  bool
	flushed      uint64

	lastAcked uint64
	hasAcked  bool
}

// NewBuffer creates a prediction buffer keeping at most maxPending unacknowledged moves, combining moves on
// flush as long as they cover no more than maxCombinedDelta seconds.
func NewBuffer(maxPending int, maxCombinedDelta float32) *Buffer {
	if maxPending <= 0 {
		maxPending = DefaultMaxPendingMoves
	}
	return &Buffer{
		moves:            orderedmap.NewOrderedMap[uint64, SavedMove](),
		maxPending:       maxPending,
		maxCombinedDelta: maxCombinedDelta,
	}
}

// Record adds a simulated move to the buffer. Moves must be recorded in strictly increasing tick order.
func (b *Buffer) Record(m SavedMove) error {
	if b.hasRecorded && m.Tick <= b.lastRecorded {
		return oerror.New(game.ErrorMoveOutOfOrder, m.Tick, b.lastRecorded)
	}
	if b.hasAcked && m.Tick <= b.lastAcked {
		return oerror.New(game.ErrorMoveOutOfOrder, m.Tick, b.lastAcked)
	}
	if m.FirstTick == 0 || m.FirstTick > m.Tick {
		m.FirstTick = m.Tick
	}
	b.moves.Set(m.Tick, m)
	b.lastRecorded, b.hasRecorded = m.Tick, true

	for b.moves.Len() > b.maxPending {
		b.moves.Delete(b.moves.Front().Key)
	}
	return nil
}

// Flush returns the moves recorded since the previous flush, combining consecutive moves where possible.
func (b *Buffer) Flush() []SavedMove {
	var out []SavedMove
	for el := b.moves.Front(); el != nil; el = el.Next() {
		if el.Key <= b.flushed {
			continue
		}
		if n := len(out); n > 0 && out[n-1].CanCombineWith(el.Value, b.maxCombinedDelta) {
			out[n-1] = out[n-1].CombineWith(el.Value)
			continue
		}
		out = append(out, el.Value)
	}
	if len(out) > 0 {
		b.flushed = out[len(out)-1].Tick
	}
	return out
}

// Acknowledge discards every move up to and including the given tick. It returns the amount of moves
// discarded. Acknowledgements older than the latest one are ignored.
func (b *Buffer) Acknowledge(tick uint64) int {
	if b.hasAcked && tick <= b.lastAcked {
		return 0
	}
	b.lastAcked, b.hasAcked = tick, true

	var acked []uint64
	for el := b.moves.Front(); el != nil && el.Key <= tick; el = el.Next() {
		acked = append(acked, el.Key)
	}
	for _, key := range acked {
		b.moves.Delete(key)
	}
	if b.flushed < tick {
		b.flushed = tick
	}
	return len(acked)
}

// Pending returns every unacknowledged move, oldest first.
func (b *Buffer) Pending() []SavedMove {
	out := make([]SavedMove, 0, b.moves.Len())
	for el := b.moves.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

// Update replaces a recorded move, used to store the result of a replayed move.
func (b *Buffer) Update(m SavedMove) bool {
	if _, ok := b.moves.Get(m.Tick); !ok {
		return false
	}
	b.moves.Set(m.Tick, m)
	return true
}

// Move returns the recorded move for the given tick.
func (b *Buffer) Move(tick uint64) (SavedMove, bool) {
	return b.moves.Get(tick)
}

// LastAcknowledged returns the latest acknowledged tick.
func (b *Buffer) LastAcknowledged() (uint64, bool) {
	return b.lastAcked, b.hasAcked
}

// Len returns the amount of unacknowledged moves.
func (b *Buffer) Len() int {
	return b.moves.Len()
}

// Clear drops every move in the buffer.
func (b *Buffer) Clear() {
	b.moves = orderedmap.NewOrderedMap[uint64, SavedMove]()
	b.flushed = b.lastRecorded
}
