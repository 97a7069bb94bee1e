package server

import (
	"sync"
	"testing"

	"github.com/google/uuid"
)

func newBareSession() *Session {
	return &Session{ID: uuid.New(), Name: randomName()}
}

func TestRegistry_AddRemove(t *testing.T) {
	r := NewRegistry()
	s := newBareSession()

	r.Add(s)
	if r.Len() != 1 {
		t.Fatalf("Expected 1 session, got %d", r.Len())
	}

	r.Remove(s)
	if r.Len() != 0 {
		t.Fatalf("Expected 0 sessions, got %d", r.Len())
	}

	// Removing an absent session is a no-op
	r.Remove(s)
	if r.Len() != 0 {
		t.Fatalf("Expected 0 sessions after idempotent remove, got %d", r.Len())
	}
}

func TestRegistry_ConcurrentAddRemove(t *testing.T) {
	const n = 200
	const m = 120 // removed subset

	r := NewRegistry()
	sessions := make([]*Session, n)
	for i := range sessions {
		sessions[i] = newBareSession()
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Add(sessions[i])
		}(i)
	}
	wg.Wait()

	for i := 0; i < m; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Remove(sessions[i])
		}(i)
	}
	// Concurrent snapshots must not race with removal
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Snapshot()
		}()
	}
	wg.Wait()

	if r.Len() != n-m {
		t.Fatalf("Expected %d sessions, got %d", n-m, r.Len())
	}

	snap := r.Snapshot()
	seen := make(map[uuid.UUID]bool, len(snap))
	for _, s := range snap {
		if seen[s.ID] {
			t.Fatalf("Duplicate session %s in snapshot", s.ID)
		}
		seen[s.ID] = true
	}
	for i := 0; i < m; i++ {
		if seen[sessions[i].ID] {
			t.Fatalf("Stale session %s still in snapshot", sessions[i].ID)
		}
	}
}

func TestRegistry_SnapshotIsCopy(t *testing.T) {
	r := NewRegistry()
	r.Add(newBareSession())

	snap := r.Snapshot()
	r.Add(newBareSession())

	if len(snap) != 1 {
		t.Errorf("Snapshot should not observe later adds, got %d", len(snap))
	}
}

func TestRandomName(t *testing.T) {
	name := randomName()
	if name == "" {
		t.Fatal("Expected non-empty name")
	}
}
