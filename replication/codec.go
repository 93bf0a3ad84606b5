package replication

import (
	"bytes"
	"fmt"
	"io"

	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/internal"
	"github.com/oomph-ac/locomotion/oerror"
	"github.com/sandertv/gophertunnel/minecraft/protocol"
)

var messagePool = map[uint8]func() Message{
	IDMove:       func() Message { return &MoveMessage{} },
	IDAck:        func() Message { return &AckMessage{} },
	IDCorrection: func() Message { return &CorrectionMessage{} },
	IDSnapshot:   func() Message { return &SnapshotMessage{} },
}

// fullReader fails reads that cannot be filled completely. The protocol reader only checks the error of a
// read, so a short read would otherwise leave a field partially decoded.
type fullReader struct {
	*bytes.Buffer
}

func (r fullReader) Read(p []byte) (int, error) {
	n, err := io.ReadFull(r.Buffer, p)
	if err == io.EOF && len(p) > 0 {
		err = io.ErrUnexpectedEOF
	}
	return n, err
}

// Encode encodes a message into a byte slice led by its ID.
func Encode(m Message) []byte {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	defer internal.BufferPool.Put(buf)
	buf.Reset()

	buf.WriteByte(m.ID())
	m.Marshal(protocol.NewWriter(buf, 0))
	return bytes.Clone(buf.Bytes())
}

// Decode decodes a message encoded with Encode.
func Decode(b []byte) (m Message, err error) {
	if len(b) == 0 {
		return nil, oerror.New(game.ErrorDecodeMessage, "message", "empty payload")
	}
	newMessage, ok := messagePool[b[0]]
	if !ok {
		return nil, oerror.New(game.ErrorUnknownMessageID, b[0])
	}
	m = newMessage()

	defer func() {
		if v := recover(); v != nil {
			m, err = nil, oerror.New(game.ErrorDecodeMessage, fmt.Sprintf("%T", m), v)
		}
	}()
	buf := bytes.NewBuffer(b[1:])
	m.Marshal(protocol.NewReader(fullReader{buf}, 0, false))
	if buf.Len() != 0 {
		return nil, oerror.New(game.ErrorDecodeMessage, fmt.Sprintf("%T", m), fmt.Sprintf("%d trailing bytes", buf.Len()))
	}
	return m, nil
}

// DecodeSnapshot decodes a single snapshot marshalled without a message header.
func DecodeSnapshot(b []byte) (s Snapshot, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = oerror.New(game.ErrorTruncatedSnapshot, v)
		}
	}()
	s.Marshal(protocol.NewReader(fullReader{bytes.NewBuffer(b)}, 0, false))
	return s, nil
}

// EncodeSnapshot encodes a single snapshot without a message header.
func EncodeSnapshot(s Snapshot) []byte {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	defer internal.BufferPool.Put(buf)
	buf.Reset()

	s.Marshal(protocol.NewWriter(buf, 0))
	return bytes.Clone(buf.Bytes())
}
