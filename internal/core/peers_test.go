package core_test

import (
	"errors"
	"testing"

	"github.com/sboyar/huddle/internal/core"
)

type nopConn struct{}

func (nopConn) TrySend(core.Frame) error { return nil }
func (nopConn) Close()                   {}

type deadConn struct{}

func (deadConn) TrySend(core.Frame) error { return errors.New("closed") }
func (deadConn) Close()                   {}

func TestPeerLifecycle(t *testing.T) {
	d := core.NewPeerDirectory()

	d.Add("a", nopConn{})
	peer, ok := d.Get("a")
	if !ok {
		t.Fatal("Get after Add should find the peer")
	}
	if peer.Joined() {
		t.Error("freshly accepted peer must be unjoined")
	}
	if peer.ID != "a" {
		t.Errorf("peer.ID = %q, want %q", peer.ID, "a")
	}

	if !d.Put("a", "Alice", "r1") {
		t.Fatal("Put for live peer should succeed")
	}
	peer, _ = d.Get("a")
	if peer.Username != "Alice" || peer.Room != "r1" {
		t.Errorf("peer after Put = %+v", peer)
	}

	d.Remove("a")
	if _, ok := d.Get("a"); ok {
		t.Error("Get after Remove should miss")
	}
	if d.Len() != 0 {
		t.Errorf("Len() = %d, want 0", d.Len())
	}
}

func TestPeerPutUnknownIsNoop(t *testing.T) {
	d := core.NewPeerDirectory()
	if d.Put("ghost", "Alice", "r1") {
		t.Error("Put for unknown id must not create an entry")
	}
	if d.Len() != 0 {
		t.Error("directory must stay empty")
	}
}

func TestPeerPutReassignsRoom(t *testing.T) {
	d := core.NewPeerDirectory()
	d.Add("a", nopConn{})
	d.Put("a", "Alice", "r1")
	d.Put("a", "Alice", "r2")
	peer, _ := d.Get("a")
	if peer.Room != "r2" {
		t.Errorf("peer.Room = %q, want r2", peer.Room)
	}
}

func TestPeerConn(t *testing.T) {
	d := core.NewPeerDirectory()
	d.Add("a", deadConn{})

	conn, ok := d.Conn("a")
	if !ok {
		t.Fatal("Conn for live peer should resolve")
	}
	if err := conn.TrySend(nil); err == nil {
		t.Error("expected the registered endpoint, not a substitute")
	}
	if _, ok := d.Conn("ghost"); ok {
		t.Error("Conn for unknown id should miss")
	}
}
