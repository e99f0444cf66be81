// Package service resolves where background service definitions live and
// how the host's init system addresses the current session.
package service

import (
	"path/filepath"

	"github.com/eliteGoblin/focusd/brewsvc/internal/domain"
)

// Well-known service definition directories.
const (
	LaunchdBootPath = "/Library/LaunchDaemons"
	SystemdBootPath = "/usr/lib/systemd/system"
)

var (
	launchdUserDir = filepath.Join("Library", "LaunchAgents")
	systemdUserDir = filepath.Join(".config", "systemd", "user")
)

// Resolver maps the probed platform to service definition paths.
// An empty path means no supported init system; it is not an error.
type Resolver struct {
	probe domain.PlatformProbe
	env   domain.Environment
}

// NewResolver creates a Resolver. HOME is read from env on every call.
func NewResolver(probe domain.PlatformProbe, env domain.Environment) *Resolver {
	return &Resolver{probe: probe, env: env}
}

// InitSystem returns the active init system. launchctl wins when both
// probes answer yes.
func (r *Resolver) InitSystem() domain.InitSystem {
	switch {
	case r.probe.HasLaunchctl():
		return domain.InitLaunchd
	case r.probe.HasSystemd():
		return domain.InitSystemd
	default:
		return domain.InitNone
	}
}

// Privilege returns the probed privilege level.
func (r *Resolver) Privilege() domain.PrivilegeLevel {
	if r.probe.IsRoot() {
		return domain.PrivilegeRoot
	}
	return domain.PrivilegeUser
}

// BootPath is the system-wide service directory, or "" on unsupported hosts.
func (r *Resolver) BootPath() string {
	switch r.InitSystem() {
	case domain.InitLaunchd:
		return LaunchdBootPath
	case domain.InitSystemd:
		return SystemdBootPath
	default:
		return ""
	}
}

// UserPath is the per-user service directory under $HOME, or "" on
// unsupported hosts. It fails only when an init system is present and HOME
// is unset.
func (r *Resolver) UserPath() (string, error) {
	var rel string
	switch r.InitSystem() {
	case domain.InitLaunchd:
		rel = launchdUserDir
	case domain.InitSystemd:
		rel = systemdUserDir
	default:
		return "", nil
	}

	home, ok := r.env.Lookup("HOME")
	if !ok || home == "" {
		return "", &domain.EnvironmentError{Var: "HOME"}
	}
	return filepath.Join(home, rel), nil
}

// Path is BootPath for root and UserPath for everyone else.
func (r *Resolver) Path() (string, error) {
	if r.probe.IsRoot() {
		return r.BootPath(), nil
	}
	return r.UserPath()
}

// DomainTarget returns the launchctl domain for the current session.
func (r *Resolver) DomainTarget() string {
	return DomainTarget(r.probe)
}
