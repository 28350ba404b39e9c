package storage

import (
	"context"
	"testing"

	"github.com/spf13/afero"
)

func TestAvatarStore_Save(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewAvatarStore(fs, "/data/avatars", "https://cdn.example.com/avatars/")

	url, err := store.Save(context.Background(), "user1/ab12cd34.png", []byte{0x89, 0x50})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if url != "https://cdn.example.com/avatars/user1/ab12cd34.png" {
		t.Fatalf("unexpected url: %s", url)
	}

	data, err := afero.ReadFile(fs, "/data/avatars/user1/ab12cd34.png")
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(data) != 2 || data[0] != 0x89 {
		t.Fatalf("unexpected file contents: %v", data)
	}
}

func TestAvatarStore_Save_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewAvatarStore(afero.NewMemMapFs(), "/data", "https://cdn.example.com")
	if _, err := store.Save(ctx, "user1/x.png", []byte("x")); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
