// Package domain contains entities without logic, just meta-data.
package domain

type (
	// ConnID identifies one live transport session. Assigned by the
	// transport adapter on accept, never reused while the session is live.
	ConnID string

	// RoomID names a rendezvous point. Chosen by the joining client and
	// never validated against any namespace; it is effectively a shared slug.
	RoomID string
)

// Peer is the server-side view of one connected participant.
// Username is a caller-supplied label: opaque, not unique, not validated.
// Room is empty until the peer joins a room.
type Peer struct {
	ID       ConnID `json:"id"`
	Username string `json:"username"`
	Room     RoomID `json:"-"`
}

// Joined reports whether the peer currently belongs to a room.
func (p Peer) Joined() bool { return p.Room != "" }
