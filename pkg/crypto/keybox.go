// Package crypto holds the client-side primitives: URL-safe random IDs and
// the keybox used to keep the persisted session token sealed at rest.
package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

var (
	ErrBoxTooShort = errors.New("sealed box is too short")
	ErrWrongSecret = errors.New("secret does not open this box")
)

const saltLength = 16

// Keybox seals small secrets (the session token) under a key derived from
// a caller-supplied passphrase. Argon2id turns the passphrase into a key,
// XChaCha20-Poly1305 does the sealing.
//
// @ref https://cheatsheetseries.owasp.org/cheatsheets/Password_Storage_Cheat_Sheet.html
type Keybox struct {
	Memory      uint32 // Memory cost in KiB
	Iterations  uint32 // Number of iterations (time cost)
	Parallelism uint8  // Number of parallel threads
}

// NewKeybox returns a Keybox with the OWASP-recommended argon2id costs.
func NewKeybox() *Keybox {
	return &Keybox{
		Memory:      64 * 1024, // 64 MB
		Iterations:  3,
		Parallelism: 2,
	}
}

func (k *Keybox) deriveKey(secret, salt []byte) []byte {
	return argon2.IDKey(secret, salt, k.Iterations, k.Memory, k.Parallelism, chacha20poly1305.KeySize)
}

// Seal encrypts plaintext under secret. The output embeds the salt and
// nonce, so Open needs only the secret.
func (k *Keybox) Seal(secret, plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	aead, err := chacha20poly1305.NewX(k.deriveKey(secret, salt))
	if err != nil {
		return nil, fmt.Errorf("failed to build cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	box := make([]byte, 0, saltLength+len(nonce)+len(plaintext)+aead.Overhead())
	box = append(box, salt...)
	box = append(box, nonce...)
	return aead.Seal(box, nonce, plaintext, nil), nil
}

// Open decrypts a box produced by Seal with the same secret.
func (k *Keybox) Open(secret, box []byte) ([]byte, error) {
	if len(box) < saltLength {
		return nil, ErrBoxTooShort
	}
	salt, rest := box[:saltLength], box[saltLength:]

	aead, err := chacha20poly1305.NewX(k.deriveKey(secret, salt))
	if err != nil {
		return nil, fmt.Errorf("failed to build cipher: %w", err)
	}

	if len(rest) < aead.NonceSize()+aead.Overhead() {
		return nil, ErrBoxTooShort
	}
	nonce, sealed := rest[:aead.NonceSize()], rest[aead.NonceSize():]

	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrWrongSecret
	}
	return plaintext, nil
}
