package store

import (
	"context"
	"testing"

	"agora/internal/kv"
	"agora/internal/models"
	"agora/internal/observability"
)

func TestSessionSlot(t *testing.T) {
	s, ctx := newTestStore(t)

	t.Run("empty slot reads nil", func(t *testing.T) {
		u, err := s.CurrentUser(ctx)
		if err != nil || u != nil {
			t.Errorf("got %+v, %v; want nil, nil", u, err)
		}
	})

	t.Run("set then read", func(t *testing.T) {
		if err := s.SetCurrentUser(ctx, models.User{ID: "u-alice", Username: "alice"}); err != nil {
			t.Fatalf("set: %v", err)
		}
		u, err := s.CurrentUser(ctx)
		if err != nil || u == nil || u.ID != "u-alice" {
			t.Errorf("got %+v, %v", u, err)
		}
	})

	t.Run("logout clears", func(t *testing.T) {
		if err := s.Logout(ctx); err != nil {
			t.Fatalf("logout: %v", err)
		}
		u, _ := s.CurrentUser(ctx)
		if u != nil {
			t.Errorf("slot not cleared: %+v", u)
		}
	})
}

func TestSessionCorruptSnapshotClears(t *testing.T) {
	backend := kv.NewMemory()
	s := New(backend, testFixtures(), WithLogger(observability.NopLogger()))
	ctx := context.Background()
	if err := s.Initialize(ctx); err != nil {
		t.Fatal(err)
	}

	if err := backend.Set(ctx, keyCurrentUser, []byte("not a user")); err != nil {
		t.Fatal(err)
	}
	u, err := s.CurrentUser(ctx)
	if err != nil || u != nil {
		t.Fatalf("corrupt slot should read as logged out, got %+v, %v", u, err)
	}
	if _, ok, _ := backend.Get(ctx, keyCurrentUser); ok {
		t.Errorf("corrupt slot was not deleted")
	}
}

func TestSessionObservers(t *testing.T) {
	s, ctx := newTestStore(t)

	t.Run("delivery in registration order", func(t *testing.T) {
		var order []string
		unsubA := s.SubscribeSession(func(ev SessionEvent) { order = append(order, "a:"+string(ev.Type)) })
		unsubB := s.SubscribeSession(func(ev SessionEvent) { order = append(order, "b:"+string(ev.Type)) })
		defer unsubA()
		defer unsubB()

		if err := s.SetCurrentUser(ctx, models.User{ID: "u-alice"}); err != nil {
			t.Fatal(err)
		}
		if len(order) != 2 || order[0] != "a:login" || order[1] != "b:login" {
			t.Errorf("delivery order wrong: %v", order)
		}
	})

	t.Run("write commits before observers run", func(t *testing.T) {
		var seen *models.User
		unsub := s.SubscribeSession(func(SessionEvent) {
			seen, _ = s.CurrentUser(ctx)
		})
		defer unsub()

		if err := s.SetCurrentUser(ctx, models.User{ID: "u-admin"}); err != nil {
			t.Fatal(err)
		}
		if seen == nil || seen.ID != "u-admin" {
			t.Errorf("observer saw stale session: %+v", seen)
		}
	})

	t.Run("panicking observer does not stop the rest", func(t *testing.T) {
		var called bool
		unsub1 := s.SubscribeSession(func(SessionEvent) { panic("boom") })
		unsub2 := s.SubscribeSession(func(SessionEvent) { called = true })
		defer unsub1()
		defer unsub2()

		if err := s.Logout(ctx); err != nil {
			t.Fatalf("logout failed despite observer panic: %v", err)
		}
		if !called {
			t.Errorf("later observer skipped after panic")
		}
	})

	t.Run("unsubscribe stops delivery", func(t *testing.T) {
		var calls int
		unsub := s.SubscribeSession(func(SessionEvent) { calls++ })
		if err := s.SetCurrentUser(ctx, models.User{ID: "u-alice"}); err != nil {
			t.Fatal(err)
		}
		unsub()
		if err := s.Logout(ctx); err != nil {
			t.Fatal(err)
		}
		if calls != 1 {
			t.Errorf("got %d calls, want 1", calls)
		}
	})
}
