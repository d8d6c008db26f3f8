// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
)

const (
	sealedPrefix = "sealed:v1:"
	saltSize     = 16
	keySize      = 32 // AES-256
)

// KeyParams are the Argon2id cost parameters used to derive the sealing key.
type KeyParams struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
}

// DefaultKeyParams follow the OWASP recommendation for Argon2id.
var DefaultKeyParams = KeyParams{Time: 1, Memory: 64 * 1024, Threads: 4}

// keyChain seals values with AES-256-GCM under a key derived from a
// passphrase. The blob layout is salt ‖ nonce ‖ ciphertext, base64 encoded
// behind sealedPrefix.
type keyChain struct {
	passphrase []byte
	params     KeyParams
	salt       []byte

	mu   sync.Mutex
	keys map[string][]byte // derived keys by salt
}

// NewKeyChain returns a Sealer keyed by passphrase. One random salt is drawn
// per key chain; values sealed under other salts are still opened.
func NewKeyChain(passphrase string, params KeyParams) (Sealer, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return &keyChain{
		passphrase: []byte(passphrase),
		params:     params,
		salt:       salt,
		keys:       make(map[string][]byte),
	}, nil
}

func (k *keyChain) key(salt []byte) []byte {
	k.mu.Lock()
	defer k.mu.Unlock()

	if key, ok := k.keys[string(salt)]; ok {
		return key
	}
	key := argon2.IDKey(k.passphrase, salt, k.params.Time, k.params.Memory, k.params.Threads, keySize)
	k.keys[string(salt)] = key
	return key
}

func (k *keyChain) Seal(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	gcm, err := newGCM(k.key(k.salt))
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	blob := make([]byte, 0, saltSize+len(nonce)+len(plaintext)+gcm.Overhead())
	blob = append(blob, k.salt...)
	blob = append(blob, nonce...)
	blob = gcm.Seal(blob, nonce, []byte(plaintext), nil)

	return sealedPrefix + base64.StdEncoding.EncodeToString(blob), nil
}

func (k *keyChain) Open(sealed string) (string, error) {
	encoded, ok := strings.CutPrefix(sealed, sealedPrefix)
	if !ok {
		return sealed, nil
	}

	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if len(blob) < saltSize {
		return "", ErrMalformed
	}
	salt, rest := blob[:saltSize], blob[saltSize:]

	gcm, err := newGCM(k.key(salt))
	if err != nil {
		return "", err
	}
	if len(rest) < gcm.NonceSize() {
		return "", ErrMalformed
	}
	nonce, ciphertext := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrWrongKey
	}
	return string(plaintext), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}

// Plain stores values as they are. It refuses to open sealed values.
type Plain struct{}

func (Plain) Seal(plaintext string) (string, error) { return plaintext, nil }

func (Plain) Open(sealed string) (string, error) {
	if strings.HasPrefix(sealed, sealedPrefix) {
		return "", ErrKeyRequired
	}
	return sealed, nil
}

// NewSealer returns a key chain for passphrase, or Plain when it is empty.
func NewSealer(passphrase string) (Sealer, error) {
	if passphrase == "" {
		return Plain{}, nil
	}
	return NewKeyChain(passphrase, DefaultKeyParams)
}
