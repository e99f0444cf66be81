package usecase

import (
	"fmt"
	"sort"

	"github.com/eliteGoblin/focusd/brewsvc/internal/domain"
)

// memTapStore implements domain.TapStore in memory for testing.
type memTapStore struct {
	taps    map[string]domain.Tap
	listErr error
	saveErr error
}

func newMemTapStore(taps ...domain.Tap) *memTapStore {
	s := &memTapStore{taps: make(map[string]domain.Tap)}
	for _, t := range taps {
		s.taps[t.Name] = t
	}
	return s
}

func (s *memTapStore) Get(name string) (*domain.Tap, error) {
	t, ok := s.taps[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTapNotTapped, name)
	}
	return &t, nil
}

func (s *memTapStore) Save(tap domain.Tap) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.taps[tap.Name] = tap
	return nil
}

func (s *memTapStore) Delete(name string) error {
	if _, ok := s.taps[name]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrTapNotTapped, name)
	}
	delete(s.taps, name)
	return nil
}

func (s *memTapStore) List() ([]domain.Tap, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]domain.Tap, 0, len(s.taps))
	for _, t := range s.taps {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memTapStore) Close() error { return nil }

// stubFormulaIndex returns a fixed formula set.
type stubFormulaIndex struct {
	formulae []domain.Formula
	err      error
}

func (ix *stubFormulaIndex) All(taps []domain.Tap) ([]domain.Formula, error) {
	if ix.err != nil {
		return nil, ix.err
	}
	out := make([]domain.Formula, len(ix.formulae))
	copy(out, ix.formulae)
	return out, nil
}

func (ix *stubFormulaIndex) IsInstalled(name string) bool {
	for _, f := range ix.formulae {
		if f.Name == name {
			return f.Installed
		}
	}
	return false
}

var (
	_ domain.TapStore     = (*memTapStore)(nil)
	_ domain.FormulaIndex = (*stubFormulaIndex)(nil)
)
