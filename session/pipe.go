package session

import "github.com/oomph-ac/locomotion/replication"

type delivery struct {
	at   uint64
	data []byte
}

// Pipe is an ordered, reliable in-memory channel between two instances of a character. Messages are
// encoded when sent and delivered a fixed amount of ticks later.
type Pipe struct {
	latency uint64
	now     uint64
	queue   []delivery
}

// NewPipe returns a pipe delivering messages latency ticks after they were sent.
func NewPipe(latency uint64) *Pipe {
	return &Pipe{latency: latency}
}

// Send queues a message for delivery.
func (p *Pipe) Send(m replication.Message) {
	p.SendRaw(replication.Encode(m))
}

// SendRaw queues an encoded message for delivery.
func (p *Pipe) SendRaw(b []byte) {
	p.queue = append(p.queue, delivery{at: p.now + p.latency, data: b})
}

// Advance moves the pipe one tick forward.
func (p *Pipe) Advance() {
	p.now++
}

// Receive returns every message due for delivery, in the order they were sent. Messages that cannot be
// decoded are dropped and reported through the returned error, the remaining messages are still delivered.
func (p *Pipe) Receive() ([]replication.Message, error) {
	n := 0
	for n < len(p.queue) && p.queue[n].at <= p.now {
		n++
	}
	if n == 0 {
		return nil, nil
	}

	var (
		out      = make([]replication.Message, 0, n)
		firstErr error
	)
	for _, d := range p.queue[:n] {
		m, err := replication.Decode(d.data)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		out = append(out, m)
	}
	p.queue = p.queue[n:]
	return out, firstErr
}

// Pending returns the amount of messages in flight.
func (p *Pipe) Pending() int {
	return len(p.queue)
}

// Latency ...
func (p *Pipe) Latency() uint64 {
	return p.latency
}
