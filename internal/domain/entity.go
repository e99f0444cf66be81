// Package domain contains core entities and collaborator interfaces.
// This is the innermost layer - no external dependencies.
package domain

import (
	"strings"
	"time"
)

// InitSystem identifies the service supervisor of the host.
type InitSystem string

const (
	InitLaunchd InitSystem = "launchd"
	InitSystemd InitSystem = "systemd"
	InitNone    InitSystem = "none"
)

// String returns a human-readable description of the init system.
func (s InitSystem) String() string {
	switch s {
	case InitLaunchd:
		return "launchd (launchctl)"
	case InitSystemd:
		return "systemd (systemctl)"
	default:
		return "none (unsupported platform)"
	}
}

// PrivilegeLevel is the effective privilege of the running process.
type PrivilegeLevel string

const (
	PrivilegeRoot PrivilegeLevel = "root"
	PrivilegeUser PrivilegeLevel = "user"
)

// Tap is a registered formula repository.
type Tap struct {
	Name         string // normalised "user/repo"
	User         string
	Repo         string
	Remote       string
	CustomRemote bool // remote differs from the GitHub default
	Path         string
	AddedAt      time.Time
}

// Dependency tags understood by the dependents filter.
const (
	TagBuild       = "build"
	TagTest        = "test"
	TagOptional    = "optional"
	TagRecommended = "recommended"
	TagImplicit    = "implicit"
)

// Dependency is a single edge from a formula to another formula.
type Dependency struct {
	Name string   `json:"name"`
	Tags []string `json:"tags,omitempty"`
}

// HasTag reports whether the dependency carries tag.
func (d Dependency) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// IsQualified reports whether the dependency names a formula by its full
// "user/repo/name" form.
func (d Dependency) IsQualified() bool {
	return strings.Contains(d.Name, "/")
}

// Formula is a package definition read from a tap.
type Formula struct {
	Name         string
	FullName     string // "<tap>/<name>"
	Tap          string
	Dependencies []Dependency
	Installed    bool
}
