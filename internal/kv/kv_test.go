package kv

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

// exerciseKV runs the shared backend contract. Values are JSON because
// the file backend persists its map as a JSON document.
func exerciseKV(t *testing.T, backend KV) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, ok, err := backend.Get(ctx, "absent")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if ok {
			t.Errorf("missing key reported present")
		}
	})

	t.Run("set and get", func(t *testing.T) {
		want := []byte(`{"id":"p-1","title":"hello"}`)
		if err := backend.Set(ctx, "posts", want); err != nil {
			t.Fatalf("set: %v", err)
		}
		got, ok, err := backend.Get(ctx, "posts")
		if err != nil || !ok {
			t.Fatalf("get: ok=%v err=%v", ok, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		if err := backend.Set(ctx, "posts", []byte(`[]`)); err != nil {
			t.Fatalf("set: %v", err)
		}
		got, _, _ := backend.Get(ctx, "posts")
		if !bytes.Equal(got, []byte(`[]`)) {
			t.Errorf("overwrite lost: %q", got)
		}
	})

	t.Run("returned value is a copy", func(t *testing.T) {
		if err := backend.Set(ctx, "copy", []byte(`"original"`)); err != nil {
			t.Fatalf("set: %v", err)
		}
		got, _, _ := backend.Get(ctx, "copy")
		for i := range got {
			got[i] = 'x'
		}
		again, _, _ := backend.Get(ctx, "copy")
		if !bytes.Equal(again, []byte(`"original"`)) {
			t.Errorf("mutating a returned value changed the store: %q", again)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := backend.Delete(ctx, "posts"); err != nil {
			t.Fatalf("delete: %v", err)
		}
		_, ok, _ := backend.Get(ctx, "posts")
		if ok {
			t.Errorf("key survived delete")
		}
		// deleting again is fine
		if err := backend.Delete(ctx, "posts"); err != nil {
			t.Errorf("repeat delete: %v", err)
		}
	})
}

func TestMemory(t *testing.T) {
	exerciseKV(t, NewMemory())
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	backend, err := NewFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	exerciseKV(t, backend)

	t.Run("survives reopen", func(t *testing.T) {
		ctx := context.Background()
		if err := backend.Set(ctx, "durable", []byte(`{"ok":true}`)); err != nil {
			t.Fatal(err)
		}
		if err := backend.Close(); err != nil {
			t.Fatal(err)
		}

		reopened, err := NewFile(path)
		if err != nil {
			t.Fatalf("reopen: %v", err)
		}
		got, ok, err := reopened.Get(ctx, "durable")
		if err != nil || !ok {
			t.Fatalf("get after reopen: ok=%v err=%v", ok, err)
		}
		if !bytes.Equal(got, []byte(`{"ok":true}`)) {
			t.Errorf("got %q after reopen", got)
		}
	})
}

func TestSQLite(t *testing.T) {
	backend, err := NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer backend.Close()
	exerciseKV(t, backend)
}

func TestRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	backend, err := NewRedis(mr.Addr())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer backend.Close()
	exerciseKV(t, backend)
}
