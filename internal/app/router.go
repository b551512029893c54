// Package app implements the signaling router: it interprets inbound
// events from connected peers, maintains the peer and room directories,
// and addresses outbound events back to specific peers or rooms.
package app

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sboyar/huddle/internal/core"
	"github.com/sboyar/huddle/internal/domain"
)

// RelayOutcome reports where an event ended up. Addressing misses are a
// first-class outcome, not an error: the wire behavior is a silent drop.
type RelayOutcome int

const (
	RelayDelivered RelayOutcome = iota
	// RelayTargetNotFound means the target id no longer resolves to a live
	// connection (it may have disconnected between being announced and
	// being addressed).
	RelayTargetNotFound
	// RelayNotJoined means the sender has no room membership yet.
	RelayNotJoined
)

func (o RelayOutcome) String() string {
	switch o {
	case RelayDelivered:
		return "delivered"
	case RelayTargetNotFound:
		return "target-not-found"
	case RelayNotJoined:
		return "not-joined"
	default:
		return "unknown"
	}
}

// Router owns the two directories and serializes every mutation under one
// coarse lock, so the membership invariants hold across both after each
// event. Outbound sets are snapshotted before the lock is released and
// delivered after, so no stale membership view is ever sent.
type Router struct {
	mu    sync.Mutex
	peers *core.PeerDirectory
	rooms *core.RoomDirectory
}

func NewRouter() *Router {
	return &Router{
		peers: core.NewPeerDirectory(),
		rooms: core.NewRoomDirectory(),
	}
}

// delivery pairs an already-encoded frame with its target endpoint.
type delivery struct {
	conn  core.SignalConnection
	frame core.Frame
}

// flush delivers frames outside the router lock. A failed send is
// abandoned: best-effort, no retry, no directory effect.
func (r *Router) flush(out []delivery) {
	for _, d := range out {
		if err := d.conn.TrySend(d.frame); err != nil {
			log.Debug().Err(err).Str("module", "app.router").Msg("dropped outbound frame")
		}
	}
}

// fanout encodes v once and addresses it to every member of the room
// except the originator.
func (r *Router) fanout(room domain.RoomID, from domain.ConnID, v any) []delivery {
	frame, ok := encode(v)
	if !ok {
		return nil
	}
	members := r.rooms.Members(room)
	out := make([]delivery, 0, len(members))
	for _, id := range members {
		if id == from {
			continue
		}
		if conn, ok := r.peers.Conn(id); ok {
			out = append(out, delivery{conn: conn, frame: frame})
		}
	}
	return out
}

// Accept registers a freshly accepted connection. The peer is Unjoined
// until its first join-room event.
func (r *Router) Accept(id domain.ConnID, conn core.SignalConnection) {
	r.mu.Lock()
	r.peers.Add(id, conn)
	r.mu.Unlock()
	log.Info().Str("module", "app.router").Str("conn", string(id)).Msg("connection accepted")
}

// JoinRoom moves the peer into the given room, leaving any prior room
// first: a connection belongs to at most one room at a time. The joiner
// receives a users-in-room snapshot (taken after the join, excluding
// itself); every other member receives user-joined.
func (r *Router) JoinRoom(id domain.ConnID, room domain.RoomID, username string) {
	r.mu.Lock()
	peer, ok := r.peers.Get(id)
	if !ok {
		r.mu.Unlock()
		return
	}

	var out []delivery
	if peer.Joined() && peer.Room != room {
		r.rooms.Leave(peer.Room, id)
		out = append(out, r.fanout(peer.Room, id, userLeftEvent{
			Type:     kindUserLeft,
			ID:       id,
			Username: peer.Username,
		})...)
	}

	r.rooms.Join(room, id)
	r.peers.Put(id, username, room)

	users := make([]roomUser, 0)
	for _, member := range r.rooms.Members(room) {
		if member == id {
			continue
		}
		if p, ok := r.peers.Get(member); ok {
			users = append(users, roomUser{ID: p.ID, Username: p.Username})
		}
	}
	if conn, ok := r.peers.Conn(id); ok {
		if frame, ok := encode(usersInRoomEvent{Type: kindUsersInRoom, Users: users}); ok {
			out = append(out, delivery{conn: conn, frame: frame})
		}
	}
	out = append(out, r.fanout(room, id, userJoinedEvent{
		Type:     kindUserJoined,
		ID:       id,
		Username: username,
	})...)
	r.mu.Unlock()

	log.Info().Str("module", "app.router").Str("conn", string(id)).Str("room", string(room)).Msg("joined room")
	r.flush(out)
}

// RelayOffer forwards a session description to the target peer, untouched.
func (r *Router) RelayOffer(id, target domain.ConnID, offer json.RawMessage) RelayOutcome {
	r.mu.Lock()
	sender, ok := r.peers.Get(id)
	if !ok || !sender.Joined() {
		r.mu.Unlock()
		return RelayNotJoined
	}
	conn, ok := r.peers.Conn(target)
	if !ok {
		r.mu.Unlock()
		return RelayTargetNotFound
	}
	frame, encoded := encode(offerEvent{
		Type:         kindOffer,
		FromID:       id,
		FromUsername: sender.Username,
		Offer:        offer,
	})
	r.mu.Unlock()

	if encoded {
		r.flush([]delivery{{conn: conn, frame: frame}})
	}
	return RelayDelivered
}

// RelayAnswer mirrors RelayOffer with the answer event kind.
func (r *Router) RelayAnswer(id, target domain.ConnID, answer json.RawMessage) RelayOutcome {
	r.mu.Lock()
	sender, ok := r.peers.Get(id)
	if !ok || !sender.Joined() {
		r.mu.Unlock()
		return RelayNotJoined
	}
	conn, ok := r.peers.Conn(target)
	if !ok {
		r.mu.Unlock()
		return RelayTargetNotFound
	}
	frame, encoded := encode(answerEvent{
		Type:         kindAnswer,
		FromID:       id,
		FromUsername: sender.Username,
		Answer:       answer,
	})
	r.mu.Unlock()

	if encoded {
		r.flush([]delivery{{conn: conn, frame: frame}})
	}
	return RelayDelivered
}

// RelayCandidate forwards an ICE candidate to the target peer. Candidate
// events carry no username.
func (r *Router) RelayCandidate(id, target domain.ConnID, candidate json.RawMessage) RelayOutcome {
	r.mu.Lock()
	sender, ok := r.peers.Get(id)
	if !ok || !sender.Joined() {
		r.mu.Unlock()
		return RelayNotJoined
	}
	conn, ok := r.peers.Conn(target)
	if !ok {
		r.mu.Unlock()
		return RelayTargetNotFound
	}
	frame, encoded := encode(candidateEvent{
		Type:      kindICECandidate,
		FromID:    id,
		Candidate: candidate,
	})
	r.mu.Unlock()

	if encoded {
		r.flush([]delivery{{conn: conn, frame: frame}})
	}
	return RelayDelivered
}

// SendMessage relays a text message to every other member of the sender's
// room. The timestamp is assigned here, at relay time, not by the client.
func (r *Router) SendMessage(id domain.ConnID, text string) RelayOutcome {
	r.mu.Lock()
	sender, ok := r.peers.Get(id)
	if !ok || !sender.Joined() {
		r.mu.Unlock()
		return RelayNotJoined
	}
	out := r.fanout(sender.Room, id, messageEvent{
		Type:      kindMessage,
		FromID:    id,
		Username:  sender.Username,
		Message:   text,
		Timestamp: time.Now().UnixMilli(),
	})
	r.mu.Unlock()

	r.flush(out)
	return RelayDelivered
}

// Disconnect removes the connection from both directories and tells the
// remaining room members. Idempotent: a second call for the same id is a
// no-op with no duplicate broadcast.
func (r *Router) Disconnect(id domain.ConnID) {
	r.mu.Lock()
	peer, ok := r.peers.Get(id)
	if !ok {
		r.mu.Unlock()
		return
	}
	var out []delivery
	if peer.Joined() {
		r.rooms.Leave(peer.Room, id)
		out = r.fanout(peer.Room, id, userLeftEvent{
			Type:     kindUserLeft,
			ID:       id,
			Username: peer.Username,
		})
	}
	r.peers.Remove(id)
	r.mu.Unlock()

	log.Info().Str("module", "app.router").Str("conn", string(id)).Msg("connection closed")
	r.flush(out)
}

// Stats reports current room and connection counts for the status surface.
func (r *Router) Stats() (rooms, conns int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rooms.Len(), r.peers.Len()
}
