package infra

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/eliteGoblin/focusd/brewsvc/internal/domain"
)

// storeKeyLen is the raw SQLCipher key size.
const storeKeyLen = 32

// loadStoreKey returns the key for the database at dbPath, kept hex encoded
// at keyPath. A fresh store gets a new key; an existing database whose key
// is gone fails with domain.ErrStoreKeyMissing since it can never be opened.
func loadStoreKey(keyPath, dbPath string) ([]byte, error) {
	data, err := os.ReadFile(keyPath)
	switch {
	case err == nil:
		return decodeStoreKey(keyPath, data)
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("failed to read store key: %w", err)
	}

	if _, err := os.Stat(dbPath); err == nil {
		return nil, fmt.Errorf("%w: %s has no key at %s; remove the database to start over",
			domain.ErrStoreKeyMissing, dbPath, keyPath)
	}
	return createStoreKey(keyPath, dbPath)
}

func decodeStoreKey(keyPath string, data []byte) ([]byte, error) {
	key, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil || len(key) != storeKeyLen {
		return nil, fmt.Errorf("%w: %s is not a %d-byte hex key; restore it or remove it together with the database",
			domain.ErrStoreKeyInvalid, keyPath, storeKeyLen)
	}
	return key, nil
}

// createStoreKey writes a new key with O_EXCL so two first runs cannot end
// up with different keys; the loser reads the winner's key.
func createStoreKey(keyPath, dbPath string) ([]byte, error) {
	key, err := newStoreKey()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(keyPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create key directory: %w", err)
	}

	f, err := os.OpenFile(keyPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if errors.Is(err, fs.ErrExist) {
		return loadStoreKey(keyPath, dbPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create store key: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(hex.EncodeToString(key) + "\n"); err != nil {
		return nil, fmt.Errorf("failed to write store key: %w", err)
	}
	return key, nil
}

func newStoreKey() ([]byte, error) {
	key := make([]byte, storeKeyLen)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate store key: %w", err)
	}
	return key, nil
}
