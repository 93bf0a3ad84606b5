package event

import (
	"bytes"
	"io"
)

// Journal collects events in the order they happened.
type Journal struct {
	events []Event
}

// Add appends an event to the journal.
func (j *Journal) Add(ev Event) {
	j.events = append(j.events, ev)
}

// Events returns every event in the journal.
func (j *Journal) Events() []Event {
	return j.events
}

// Len ...
func (j *Journal) Len() int {
	return len(j.events)
}

// Reset drops every event in the journal.
func (j *Journal) Reset() {
	j.events = j.events[:0]
}

// WriteTo writes the encoded events of the journal to w, decodable with DecodeEvents.
func (j *Journal) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	for _, ev := range j.events {
		buf.Write(ev.Encode())
	}
	return buf.WriteTo(w)
}
