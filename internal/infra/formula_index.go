package infra

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/eliteGoblin/focusd/brewsvc/internal/domain"
)

const (
	formulaDirName = "Formula"
	manifestExt    = ".json"
	cellarDirName  = "Cellar"
)

// formulaManifest is the on-disk shape of <tap>/Formula/<name>.json.
type formulaManifest struct {
	Name         string              `json:"name"`
	Dependencies []domain.Dependency `json:"dependencies"`
}

// FileFormulaIndex implements domain.FormulaIndex over tap directories and
// the Cellar under a Homebrew prefix.
type FileFormulaIndex struct {
	prefix string
}

// NewFormulaIndex creates an index rooted at prefix.
func NewFormulaIndex(prefix string) *FileFormulaIndex {
	return &FileFormulaIndex{prefix: prefix}
}

// All returns every formula manifest in taps, ordered by full name.
func (ix *FileFormulaIndex) All(taps []domain.Tap) ([]domain.Formula, error) {
	var formulae []domain.Formula
	for _, tap := range taps {
		matches, err := filepath.Glob(filepath.Join(tap.Path, formulaDirName, "*"+manifestExt))
		if err != nil {
			return nil, err
		}
		for _, path := range matches {
			f, err := ix.load(tap, path)
			if err != nil {
				return nil, err
			}
			formulae = append(formulae, *f)
		}
	}

	sort.Slice(formulae, func(i, j int) bool {
		return formulae[i].FullName < formulae[j].FullName
	})
	return formulae, nil
}

func (ix *FileFormulaIndex) load(tap domain.Tap, path string) (*domain.Formula, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m formulaManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid formula manifest %s: %w", path, err)
	}
	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(path), manifestExt)
	}

	return &domain.Formula{
		Name:         m.Name,
		FullName:     tap.Name + "/" + m.Name,
		Tap:          tap.Name,
		Dependencies: m.Dependencies,
		Installed:    ix.IsInstalled(m.Name),
	}, nil
}

// IsInstalled reports whether <prefix>/Cellar/<name> is a directory.
func (ix *FileFormulaIndex) IsInstalled(name string) bool {
	info, err := os.Stat(filepath.Join(ix.prefix, cellarDirName, name))
	return err == nil && info.IsDir()
}

// Ensure FileFormulaIndex implements domain.FormulaIndex.
var _ domain.FormulaIndex = (*FileFormulaIndex)(nil)
