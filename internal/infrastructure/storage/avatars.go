package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/spf13/afero"
)

// AvatarStore writes avatar images to an afero filesystem and returns the
// public URL they are served from. Backed by the OS filesystem in production
// and an in-memory filesystem in tests.
type AvatarStore struct {
	fs      afero.Fs
	root    string
	baseURL string
}

// NewAvatarStore creates a store rooted at root. baseURL is the public prefix
// the files are served under, e.g. "https://cdn.founderflow.app/avatars".
func NewAvatarStore(fs afero.Fs, root, baseURL string) *AvatarStore {
	return &AvatarStore{
		fs:      fs,
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Save writes the avatar bytes under key and returns its public URL. Keys are
// slash-separated (user id prefix plus filename); intermediate directories
// are created as needed.
func (s *AvatarStore) Save(ctx context.Context, key string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	full := path.Join(s.root, key)
	if err := s.fs.MkdirAll(path.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("avatar store: %w", err)
	}
	if err := afero.WriteFile(s.fs, full, data, 0o644); err != nil {
		return "", fmt.Errorf("avatar store: %w", err)
	}

	return s.baseURL + "/" + key, nil
}
