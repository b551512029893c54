package core_test

import (
	"testing"

	"github.com/sboyar/huddle/internal/core"
	"github.com/sboyar/huddle/internal/domain"
)

func TestRoomJoinCreatesRoom(t *testing.T) {
	d := core.NewRoomDirectory()

	if d.Exists("r1") {
		t.Fatal("room should not exist before first join")
	}
	d.Join("r1", "a")
	if !d.Exists("r1") {
		t.Fatal("room should exist after join")
	}
	if got := d.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
}

func TestRoomJoinIdempotent(t *testing.T) {
	d := core.NewRoomDirectory()

	d.Join("r1", "a")
	d.Join("r1", "a")
	if got := len(d.Members("r1")); got != 1 {
		t.Errorf("members = %d, want 1 after duplicate join", got)
	}
}

func TestRoomDeletedWhenEmpty(t *testing.T) {
	d := core.NewRoomDirectory()

	d.Join("r1", "a")
	d.Join("r1", "b")
	d.Leave("r1", "a")
	if !d.Exists("r1") {
		t.Fatal("room should survive while members remain")
	}
	d.Leave("r1", "b")
	if d.Exists("r1") {
		t.Fatal("room should be deleted once empty")
	}
	if got := d.Len(); got != 0 {
		t.Errorf("Len() = %d, want 0", got)
	}

	// A later join with the same id gets a fresh room.
	d.Join("r1", "c")
	if got := len(d.Members("r1")); got != 1 {
		t.Errorf("fresh room members = %d, want 1", got)
	}
}

func TestRoomLeaveUnknownRoom(t *testing.T) {
	d := core.NewRoomDirectory()
	d.Leave("nope", "a") // must not panic or create anything
	if d.Len() != 0 {
		t.Error("leave of unknown room must not create state")
	}
}

func TestRoomMembersUnknownRoomIsEmpty(t *testing.T) {
	d := core.NewRoomDirectory()
	members := d.Members("nope")
	if members == nil || len(members) != 0 {
		t.Errorf("Members of unknown room = %v, want empty slice", members)
	}
	if d.Exists("nope") {
		t.Error("Members must not create the room")
	}
}

func TestRoomMembersIsCopy(t *testing.T) {
	d := core.NewRoomDirectory()
	d.Join("r1", "a")
	members := d.Members("r1")
	members[0] = domain.ConnID("z")
	if got := d.Members("r1")[0]; got != "a" {
		t.Errorf("directory state mutated through snapshot, got %q", got)
	}
}
