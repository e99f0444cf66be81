// Package usecase contains application business logic.
package usecase

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/eliteGoblin/focusd/brewsvc/internal/domain"
	"github.com/eliteGoblin/focusd/brewsvc/internal/tap"
)

// TapManager registers and removes taps. Taps are recorded in the store and
// given a directory under the prefix; fetching their contents is left to git.
type TapManager struct {
	store  domain.TapStore
	prefix string
	logger *zap.Logger
}

// NewTapManager creates a tap manager for the Homebrew prefix.
func NewTapManager(store domain.TapStore, prefix string, logger *zap.Logger) *TapManager {
	return &TapManager{
		store:  store,
		prefix: prefix,
		logger: logger,
	}
}

// List returns installed taps sorted by name.
func (m *TapManager) List() ([]domain.Tap, error) {
	return m.store.List()
}

// Add taps rawName. With an empty remote the GitHub default is used.
//
// Re-tapping with the same remote returns the tap and ErrTapAlreadyTapped.
// A different remote needs customRemote, otherwise ErrTapRemoteMismatch.
func (m *TapManager) Add(rawName, remote string, customRemote bool) (*domain.Tap, error) {
	name, err := tap.Parse(rawName)
	if err != nil {
		return nil, err
	}
	if customRemote && remote == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrTapNoCustomRemote, name)
	}

	wanted := tap.New(name, remote, m.prefix)

	existing, err := m.store.Get(wanted.Name)
	switch {
	case err == nil:
		return m.retap(existing, wanted, remote, customRemote)
	case !errors.Is(err, domain.ErrTapNotTapped):
		return nil, err
	}

	if err := os.MkdirAll(wanted.Path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create tap directory: %w", err)
	}
	if err := m.store.Save(wanted); err != nil {
		return nil, fmt.Errorf("failed to record tap %s: %w", wanted.Name, err)
	}

	m.logger.Info("tapped",
		zap.String("tap", wanted.Name),
		zap.String("remote", wanted.Remote),
		zap.String("path", wanted.Path))
	return &wanted, nil
}

func (m *TapManager) retap(existing *domain.Tap, wanted domain.Tap, remote string, customRemote bool) (*domain.Tap, error) {
	if remote == "" || remote == existing.Remote {
		return existing, fmt.Errorf("%w: %s", domain.ErrTapAlreadyTapped, existing.Name)
	}
	if !customRemote {
		return nil, fmt.Errorf("%w: %s has remote %s, not %s",
			domain.ErrTapRemoteMismatch, existing.Name, existing.Remote, remote)
	}

	updated := *existing
	updated.Remote = wanted.Remote
	updated.CustomRemote = wanted.CustomRemote
	if err := m.store.Save(updated); err != nil {
		return nil, fmt.Errorf("failed to update tap %s: %w", updated.Name, err)
	}

	m.logger.Info("changed tap remote",
		zap.String("tap", updated.Name),
		zap.String("from", existing.Remote),
		zap.String("to", updated.Remote))
	return &updated, nil
}

// Remove untaps rawName and deletes its directory.
func (m *TapManager) Remove(rawName string) (*domain.Tap, error) {
	name, err := tap.Parse(rawName)
	if err != nil {
		return nil, err
	}

	existing, err := m.store.Get(name.String())
	if err != nil {
		return nil, err
	}

	if err := os.RemoveAll(existing.Path); err != nil {
		return nil, fmt.Errorf("failed to remove tap directory: %w", err)
	}
	if err := m.store.Delete(existing.Name); err != nil {
		return nil, err
	}

	m.logger.Info("untapped", zap.String("tap", existing.Name))
	return existing, nil
}

// Repair recreates missing tap directories and returns the repaired taps.
func (m *TapManager) Repair() ([]string, error) {
	taps, err := m.store.List()
	if err != nil {
		return nil, err
	}

	repaired := make([]string, 0)
	for _, t := range taps {
		if _, err := os.Stat(t.Path); err == nil {
			continue
		}
		if err := os.MkdirAll(t.Path, 0755); err != nil {
			m.logger.Warn("failed to repair tap",
				zap.String("tap", t.Name),
				zap.Error(err))
			continue
		}
		repaired = append(repaired, t.Name)
	}
	return repaired, nil
}
