// Package fixtures provides test helpers for integration tests.
package fixtures

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/eliteGoblin/focusd/brewsvc/internal/domain"
)

// FakePrefix creates a directory structure mimicking a Homebrew prefix:
// tap checkouts with JSON formula manifests and Cellar kegs.
type FakePrefix struct {
	Root string
}

// NewFakePrefix creates a new fake prefix generator rooted at root.
func NewFakePrefix(root string) *FakePrefix {
	return &FakePrefix{Root: root}
}

// AddFormula writes <tapDir>/Formula/<name>.json.
func (f *FakePrefix) AddFormula(tapDir, name string, deps ...domain.Dependency) error {
	dir := filepath.Join(tapDir, "Formula")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.Marshal(map[string]any{
		"name":         name,
		"dependencies": deps,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name+".json"), data, 0644)
}

// Install creates a Cellar keg so the formula counts as installed.
func (f *FakePrefix) Install(names ...string) error {
	for _, name := range names {
		keg := filepath.Join(f.Root, "Cellar", name, "1.0")
		if err := os.MkdirAll(keg, 0755); err != nil {
			return err
		}
	}
	return nil
}

// TapDir returns where a tap's checkout lives.
func (f *FakePrefix) TapDir(user, repo string) string {
	return filepath.Join(f.Root, "Library", "Taps", user, "homebrew-"+repo)
}
