package tokenstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/infopadd/infopadd-go/pkg/crypto"
)

// File persists the token on disk, sealed with a device secret so a
// copied file is useless without it.
type File struct {
	mu     sync.Mutex
	path   string
	secret []byte
	box    *crypto.Keybox
}

// NewFile stores the sealed token at path. The secret is whatever the
// host application can hold onto (keychain entry, device key).
func NewFile(path string, secret []byte) *File {
	return &File{
		path:   path,
		secret: secret,
		box:    crypto.NewKeybox(),
	}
}

// Load reads and opens the sealed token. A missing file means no token.
func (f *File) Load() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sealed, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}

	token, err := f.box.Open(f.secret, sealed)
	if err != nil {
		return "", fmt.Errorf("failed to open token file: %w", err)
	}
	return string(token), nil
}

// Save seals the token and writes it with a rename so a crash mid-write
// never leaves a truncated file behind.
func (f *File) Save(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	sealed, err := f.box.Seal(f.secret, []byte(token))
	if err != nil {
		return fmt.Errorf("failed to seal token: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".token-*")
	if err != nil {
		return fmt.Errorf("failed to create token file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to restrict token file: %w", err)
	}
	if _, err := tmp.Write(sealed); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write token file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close token file: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to place token file: %w", err)
	}
	return nil
}

// Clear removes the token file. A file that was never written is fine.
func (f *File) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}
