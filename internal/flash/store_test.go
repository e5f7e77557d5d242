package flash

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewStore(rdb)
}

func TestPop_DrainsExactlyOnce(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SetSuccess(ctx, "tok", "settings saved"); err != nil {
		t.Fatalf("setting flash: %v", err)
	}

	// First read returns the message.
	msgs, err := store.Pop(ctx, "tok")
	if err != nil {
		t.Fatalf("first pop: %v", err)
	}
	if msgs.Success != "settings saved" {
		t.Errorf("expected success flash, got %+v", msgs)
	}
	if msgs.Error != "" {
		t.Errorf("unexpected error flash: %q", msgs.Error)
	}

	// Second read is empty -- the flash does not survive another render.
	msgs, err = store.Pop(ctx, "tok")
	if err != nil {
		t.Fatalf("second pop: %v", err)
	}
	if msgs.Success != "" || msgs.Error != "" {
		t.Errorf("flash survived a second read: %+v", msgs)
	}
}

func TestPop_SuccessAndErrorAreIndependent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SetError(ctx, "tok", "save failed"); err != nil {
		t.Fatalf("setting flash: %v", err)
	}

	msgs, err := store.Pop(ctx, "tok")
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if msgs.Error != "save failed" {
		t.Errorf("expected error flash, got %+v", msgs)
	}
	if msgs.Success != "" {
		t.Errorf("unexpected success flash: %q", msgs.Success)
	}
}

func TestPop_IsolatedPerSessionToken(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SetSuccess(ctx, "alice", "saved"); err != nil {
		t.Fatalf("setting flash: %v", err)
	}

	msgs, err := store.Pop(ctx, "bob")
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if msgs.Success != "" {
		t.Errorf("flash leaked across sessions: %+v", msgs)
	}

	msgs, err = store.Pop(ctx, "alice")
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if msgs.Success != "saved" {
		t.Errorf("expected alice's flash, got %+v", msgs)
	}
}
