package service

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/eliteGoblin/focusd/brewsvc/internal/domain"
)

const (
	launchdLabelPrefix = "homebrew.mxcl."
	systemdUnitPrefix  = "homebrew."
)

// Label is the launchd job label for a formula, e.g. "homebrew.mxcl.redis".
func Label(formula string) string {
	return launchdLabelPrefix + shortName(formula)
}

// UnitName is the systemd unit for a formula, e.g. "homebrew.redis.service".
func UnitName(formula string) string {
	return systemdUnitPrefix + shortName(formula) + ".service"
}

// FileName returns the definition file name for the init system, or "" when
// there is none.
func FileName(sys domain.InitSystem, formula string) string {
	switch sys {
	case domain.InitLaunchd:
		return Label(formula) + ".plist"
	case domain.InitSystemd:
		return UnitName(formula)
	default:
		return ""
	}
}

// FilePath returns where the formula's service definition is installed for
// the current privilege level. Empty when the host has no init system.
func FilePath(r *Resolver, formula string) (string, error) {
	if shortName(formula) == "" {
		return "", fmt.Errorf("empty formula name")
	}
	dir, err := r.Path()
	if err != nil || dir == "" {
		return "", err
	}
	return filepath.Join(dir, FileName(r.InitSystem(), formula)), nil
}

// shortName drops a "user/repo/" tap qualifier.
func shortName(formula string) string {
	if i := strings.LastIndex(formula, "/"); i >= 0 {
		return formula[i+1:]
	}
	return formula
}
