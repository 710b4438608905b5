package impl

import (
	"sync"

	"github.com/guolab/copperline/wire"
)

// ReceivedMessage is the decoded payload a host last accepted.
type ReceivedMessage struct {
	Src     uint8
	Dst     uint8
	Payload string
}

// Host is a thin endpoint on the shared cable. It sends through its
// router and keeps only the most recent accepted message — a single
// slot, not a queue.
type Host struct {
	Name    string
	Address uint8

	router *Router
	mu     sync.Mutex
	last   *ReceivedMessage
}

// Send routes a message to dst, or to every registered host for the
// broadcast address.
func (h *Host) Send(dst uint8, message string) error {
	return h.router.Send(h.Address, dst, message)
}

// Receive accepts a frame addressed to this host or to broadcast and
// records the decoded payload. Frames for other destinations are ignored
// without error and leave the slot untouched.
func (h *Host) Receive(f wire.Frame) (*ReceivedMessage, error) {
	if f.Dst != h.Address && f.Dst != wire.Broadcast {
		return nil, nil
	}
	payload, err := f.Text()
	if err != nil {
		return nil, err
	}
	msg := &ReceivedMessage{Src: f.Src, Dst: f.Dst, Payload: payload}
	h.mu.Lock()
	h.last = msg
	h.mu.Unlock()
	return msg, nil
}

// LastReceived returns the most recent accepted message, or nil if none
// ever arrived.
func (h *Host) LastReceived() *ReceivedMessage {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}
