package usecase

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/eliteGoblin/focusd/brewsvc/internal/domain"
)

// UsesOptions selects candidates and dependency kinds for Uses.
type UsesOptions struct {
	Recursive bool
	Installed bool // only installed dependents
	Missing   bool // only dependents that are not installed
	EvalAll   bool // consider every formula in every tap

	IncludeBuild    bool
	IncludeTest     bool
	IncludeOptional bool
	IncludeImplicit bool
	SkipRecommended bool
}

// Dependents answers "which formulae use all of these formulae".
type Dependents struct {
	store  domain.TapStore
	index  domain.FormulaIndex
	logger *zap.Logger
}

// NewDependents creates a Dependents over the installed taps.
func NewDependents(store domain.TapStore, index domain.FormulaIndex, logger *zap.Logger) *Dependents {
	return &Dependents{
		store:  store,
		index:  index,
		logger: logger,
	}
}

// Uses returns the formulae that depend on every name in used (the
// intersection), sorted by full name.
//
// If any name is unknown, all names are matched literally. Dependents found
// that way are returned together with an error since a missing formula
// should have none.
func (d *Dependents) Uses(used []string, opts UsesOptions) ([]domain.Formula, error) {
	if len(used) == 0 {
		return nil, fmt.Errorf("%w: at least one formula is required", domain.ErrUsage)
	}
	if !opts.Installed && !opts.EvalAll {
		return nil, fmt.Errorf("%w: uses needs --installed or --eval-all passed or HOMEBREW_EVAL_ALL set", domain.ErrUsage)
	}
	if opts.Installed && opts.Missing {
		return nil, fmt.Errorf("%w: --installed and --missing are mutually exclusive", domain.ErrUsage)
	}

	taps, err := d.store.List()
	if err != nil {
		return nil, err
	}
	all, err := d.index.All(taps)
	if err != nil {
		return nil, err
	}
	lookup := newFormulaLookup(all)

	targets := make([]domain.Formula, 0, len(used))
	var unavailable []string
	for _, name := range used {
		f, ok := lookup.find(name)
		if !ok {
			d.logger.Warn("no available formula", zap.String("name", name))
			unavailable = append(unavailable, name)
			continue
		}
		targets = append(targets, *f)
	}
	// One missing name makes every name a literal target.
	if len(unavailable) > 0 {
		targets = literalTargets(used)
	}

	result := make([]domain.Formula, 0)
	for _, candidate := range all {
		if opts.Installed && !candidate.Installed {
			continue
		}
		if opts.Missing && candidate.Installed {
			continue
		}

		var deps []domain.Dependency
		if opts.Recursive {
			deps = lookup.recursiveDeps(candidate, opts)
		} else {
			deps = filterDeps(candidate.Dependencies, opts)
		}

		if lookup.usesAll(deps, targets) {
			result = append(result, candidate)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].FullName < result[j].FullName
	})

	if len(unavailable) > 0 && len(result) > 0 {
		return result, fmt.Errorf("%w %v: missing formulae should not have dependents", domain.ErrFormulaUnavailable, unavailable)
	}
	return result, nil
}

// filterDeps drops dependency kinds the options do not ask for.
func filterDeps(deps []domain.Dependency, opts UsesOptions) []domain.Dependency {
	kept := make([]domain.Dependency, 0, len(deps))
	for _, dep := range deps {
		switch {
		case dep.HasTag(domain.TagBuild) && !opts.IncludeBuild:
		case dep.HasTag(domain.TagTest) && !opts.IncludeTest:
		case dep.HasTag(domain.TagOptional) && !opts.IncludeOptional:
		case dep.HasTag(domain.TagImplicit) && !opts.IncludeImplicit:
		case dep.HasTag(domain.TagRecommended) && opts.SkipRecommended:
		default:
			kept = append(kept, dep)
		}
	}
	return kept
}

// literalTargets stands in for formulae that could not all be resolved.
func literalTargets(used []string) []domain.Formula {
	targets := make([]domain.Formula, 0, len(used))
	for _, name := range used {
		targets = append(targets, domain.Formula{Name: name, FullName: name})
	}
	return targets
}

// usesAll reports whether deps mention every target.
func (l *formulaLookup) usesAll(deps []domain.Dependency, targets []domain.Formula) bool {
	for _, target := range targets {
		if !l.usesTarget(deps, target) {
			return false
		}
	}
	return true
}

// usesTarget checks deps in order. A qualified dependency on a tap that is
// not tapped ends the search for this target without a match.
func (l *formulaLookup) usesTarget(deps []domain.Dependency, target domain.Formula) bool {
	for _, dep := range deps {
		if !dep.IsQualified() {
			if dep.Name == target.Name {
				return true
			}
			continue
		}
		f, ok := l.byFullName[dep.Name]
		if !ok {
			return false
		}
		if f.FullName == target.FullName {
			return true
		}
	}
	return false
}

// formulaLookup resolves dependency names to formulae.
type formulaLookup struct {
	byFullName map[string]*domain.Formula
	byName     map[string]*domain.Formula
}

func newFormulaLookup(all []domain.Formula) *formulaLookup {
	l := &formulaLookup{
		byFullName: make(map[string]*domain.Formula, len(all)),
		byName:     make(map[string]*domain.Formula, len(all)),
	}
	for i := range all {
		f := &all[i]
		l.byFullName[f.FullName] = f
		// First tap in name order wins for bare names.
		if _, ok := l.byName[f.Name]; !ok {
			l.byName[f.Name] = f
		}
	}
	return l
}

func (l *formulaLookup) find(name string) (*domain.Formula, bool) {
	if f, ok := l.byFullName[name]; ok {
		return f, true
	}
	f, ok := l.byName[name]
	return f, ok
}

// recursiveDeps walks the dependency tree of f, applying the same filter at
// every level. Each formula is expanded once, so cycles terminate.
func (l *formulaLookup) recursiveDeps(f domain.Formula, opts UsesOptions) []domain.Dependency {
	var out []domain.Dependency
	listed := make(map[string]bool)
	expanded := map[string]bool{f.FullName: true}

	var walk func(deps []domain.Dependency)
	walk = func(deps []domain.Dependency) {
		for _, dep := range filterDeps(deps, opts) {
			child, known := l.find(dep.Name)
			if known && child.FullName == f.FullName {
				continue
			}
			if !listed[dep.Name] {
				listed[dep.Name] = true
				out = append(out, dep)
			}
			if !known || expanded[child.FullName] {
				continue
			}
			expanded[child.FullName] = true
			walk(child.Dependencies)
		}
	}
	walk(f.Dependencies)
	return out
}
