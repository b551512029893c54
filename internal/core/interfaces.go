package core

// Frame is a raw encoded payload delivered to a peer (one signaling event).
type Frame []byte

// SignalConnection abstracts the per-peer messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	// TrySend queues a frame without blocking. It fails when the peer's
	// outbound buffer is full or the connection is closed; the frame is
	// then abandoned (best-effort delivery).
	TrySend(Frame) error
	Close()
}
