package core

import "github.com/sboyar/huddle/internal/domain"

type peerEntry struct {
	peer domain.Peer
	conn SignalConnection
}

// PeerDirectory maps live connection ids to peer meta and transport.
// An id is present exactly while its transport session is live.
//
// Not safe for concurrent use: the signaling router serializes all
// mutation of PeerDirectory and RoomDirectory under one lock so the
// membership invariants hold across both.
type PeerDirectory struct {
	entries map[domain.ConnID]*peerEntry
}

func NewPeerDirectory() *PeerDirectory {
	return &PeerDirectory{entries: make(map[domain.ConnID]*peerEntry)}
}

// Add registers a freshly accepted connection with no room membership.
func (d *PeerDirectory) Add(id domain.ConnID, conn SignalConnection) {
	d.entries[id] = &peerEntry{
		peer: domain.Peer{ID: id},
		conn: conn,
	}
}

// Put records the peer's username and room. The username is stored as
// given, without validation. The room may be reassigned by a later Put;
// callers remove the old RoomDirectory membership first. A Put for an
// unknown id is a no-op: the connection already closed.
func (d *PeerDirectory) Put(id domain.ConnID, username string, room domain.RoomID) bool {
	e, ok := d.entries[id]
	if !ok {
		return false
	}
	e.peer.Username = username
	e.peer.Room = room
	return true
}

func (d *PeerDirectory) Get(id domain.ConnID) (domain.Peer, bool) {
	if e, ok := d.entries[id]; ok {
		return e.peer, true
	}
	return domain.Peer{}, false
}

// Conn resolves the transport endpoint for a live connection id.
func (d *PeerDirectory) Conn(id domain.ConnID) (SignalConnection, bool) {
	if e, ok := d.entries[id]; ok {
		return e.conn, true
	}
	return nil, false
}

func (d *PeerDirectory) Remove(id domain.ConnID) {
	delete(d.entries, id)
}

func (d *PeerDirectory) Len() int { return len(d.entries) }
