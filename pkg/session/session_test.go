package session

import (
	"context"
	"os"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/fattree/pkg/fattree"
	"github.com/matzehuels/fattree/pkg/selection"
)

func TestNew(t *testing.T) {
	p := fattree.Params{Depth: 2, Width: 4}
	sess := New(p, time.Hour)

	if !ValidID(sess.ID) {
		t.Errorf("ID %q is not a valid session id", sess.ID)
	}
	if sess.Params != p {
		t.Errorf("Params = %v, want %v", sess.Params, p)
	}
	if sess.IsExpired() {
		t.Error("new session should not be expired")
	}
	if New(p, time.Hour).ID == sess.ID {
		t.Error("session IDs should be unique")
	}
}

func TestValidID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"6fa459ea-ee8a-3ca4-894e-db77e160355e", true},
		{"", false},
		{"../../etc/passwd", false},
		{"not-a-uuid", false},
	}
	for _, tt := range tests {
		if got := ValidID(tt.id); got != tt.want {
			t.Errorf("ValidID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestSessionUpdate(t *testing.T) {
	sess := New(fattree.Params{Depth: 2, Width: 4}, time.Minute)
	before := sess.ExpiresAt

	snap := selection.Snapshot{Params: fattree.Params{Depth: 3, Width: 6}, Hosts: []int{1, 4}}
	sess.Update(snap, time.Hour)

	if sess.Params != snap.Params || !slices.Equal(sess.Hosts, snap.Hosts) {
		t.Errorf("session = %v %v, want %v %v", sess.Params, sess.Hosts, snap.Params, snap.Hosts)
	}
	if !sess.ExpiresAt.After(before) {
		t.Error("Update should extend the expiration")
	}

	snap.Hosts[0] = 99
	if sess.Hosts[0] != 1 {
		t.Error("Update should copy the host list")
	}

	sess.Update(selection.Snapshot{Params: snap.Params}, time.Hour)
	if sess.Hosts == nil || len(sess.Hosts) != 0 {
		t.Errorf("Hosts = %#v, want empty non-nil slice", sess.Hosts)
	}
	if got := sess.Snapshot(); got.Params != snap.Params || len(got.Hosts) != 0 {
		t.Errorf("Snapshot() = %+v", got)
	}
}

// testStore exercises the Store contract.
func testStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	sess := New(fattree.Params{Depth: 2, Width: 4}, time.Hour)
	sess.Hosts = []int{0, 3}

	if got, err := store.Get(ctx, sess.ID); err != nil || got != nil {
		t.Fatalf("Get(missing) = %v, %v, want nil, nil", got, err)
	}

	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	got, err := store.Get(ctx, sess.ID)
	if err != nil || got == nil {
		t.Fatalf("Get = %v, %v", got, err)
	}
	if got.Params != sess.Params || !slices.Equal(got.Hosts, sess.Hosts) {
		t.Errorf("Get = %+v, want %+v", got, sess)
	}

	sess.Hosts = []int{5}
	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("Set (replace) error: %v", err)
	}
	got, _ = store.Get(ctx, sess.ID)
	if got == nil || !slices.Equal(got.Hosts, []int{5}) {
		t.Errorf("replaced session = %+v, want hosts [5]", got)
	}

	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if got, _ := store.Get(ctx, sess.ID); got != nil {
		t.Error("Get after Delete should return nil")
	}
	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Errorf("Delete of missing session error: %v", err)
	}

	expired := New(fattree.Params{Depth: 1, Width: 2}, time.Hour)
	if err := store.Set(ctx, expired); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	if err := store.Set(ctx, expired); err != nil {
		t.Fatalf("Set (expired) error: %v", err)
	}
	if got, _ := store.Get(ctx, expired.ID); got != nil {
		t.Error("expired session should not be returned")
	}
	if err := store.Cleanup(ctx); err != nil {
		t.Errorf("Cleanup error: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	testStore(t, store)
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	sess := New(fattree.Params{Depth: 2, Width: 4}, time.Hour)
	sess.Hosts = []int{1}
	store.Set(ctx, sess)

	sess.Hosts[0] = 7
	got, _ := store.Get(ctx, sess.ID)
	if got.Hosts[0] != 1 {
		t.Error("stored session should not alias the caller's slice")
	}
}

func TestMemoryStoreCleanup(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	live := New(fattree.Params{Depth: 1, Width: 2}, time.Hour)
	dead := New(fattree.Params{Depth: 1, Width: 2}, time.Hour)
	dead.ExpiresAt = time.Now().Add(-time.Second)
	store.Set(ctx, live)
	store.Set(ctx, dead)

	if err := store.Cleanup(ctx); err != nil {
		t.Fatal(err)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
}

func TestFileStore(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	defer store.Close()
	testStore(t, store)
}

func TestFileStoreRejectsBadIDs(t *testing.T) {
	ctx := context.Background()
	store, _ := NewFileStore(t.TempDir())

	if got, err := store.Get(ctx, "../escape"); got != nil || err != nil {
		t.Errorf("Get(../escape) = %v, %v, want nil, nil", got, err)
	}
	if err := store.Set(ctx, &Session{ID: "../escape"}); err == nil {
		t.Error("Set with invalid id should fail")
	}
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("FATTREE_TEST_REDIS")
	if addr == "" {
		t.Skip("FATTREE_TEST_REDIS not set")
	}
	store, err := NewRedisStore(context.Background(), addr, "", 0)
	if err != nil {
		t.Fatalf("NewRedisStore error: %v", err)
	}
	defer store.Close()
	testStore(t, store)
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("FATTREE_TEST_MONGO")
	if uri == "" {
		t.Skip("FATTREE_TEST_MONGO not set")
	}
	store, err := NewMongoStore(context.Background(), uri, "fattree_test")
	if err != nil {
		t.Fatalf("NewMongoStore error: %v", err)
	}
	defer store.Close()
	testStore(t, store)
}
