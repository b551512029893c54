package core

import "github.com/sboyar/huddle/internal/domain"

// RoomDirectory maps room ids to their member sets. Rooms are created
// implicitly on first join and deleted the moment the member set empties,
// so no orphaned empty room ever persists.
//
// Not safe for concurrent use; see PeerDirectory.
type RoomDirectory struct {
	rooms map[domain.RoomID]map[domain.ConnID]struct{}
}

func NewRoomDirectory() *RoomDirectory {
	return &RoomDirectory{rooms: make(map[domain.RoomID]map[domain.ConnID]struct{})}
}

// Join adds the connection to the room, creating the room if absent.
// Idempotent if the connection is already a member.
func (d *RoomDirectory) Join(room domain.RoomID, id domain.ConnID) {
	members, ok := d.rooms[room]
	if !ok {
		members = make(map[domain.ConnID]struct{})
		d.rooms[room] = members
	}
	members[id] = struct{}{}
}

// Leave removes the connection from the room and deletes the room entry
// entirely when its member set empties.
func (d *RoomDirectory) Leave(room domain.RoomID, id domain.ConnID) {
	members, ok := d.rooms[room]
	if !ok {
		return
	}
	delete(members, id)
	if len(members) == 0 {
		delete(d.rooms, room)
	}
}

// Members returns a copy of the room's member set. An unknown room yields
// an empty slice, not an error.
func (d *RoomDirectory) Members(room domain.RoomID) []domain.ConnID {
	members := d.rooms[room]
	out := make([]domain.ConnID, 0, len(members))
	for id := range members {
		out = append(out, id)
	}
	return out
}

func (d *RoomDirectory) Exists(room domain.RoomID) bool {
	_, ok := d.rooms[room]
	return ok
}

func (d *RoomDirectory) Len() int { return len(d.rooms) }
