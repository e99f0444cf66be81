// Package infra implements infrastructure concerns (probes, process, storage).
package infra

import (
	"context"
	"os"
	"os/user"
	"time"

	"github.com/shirou/gopsutil/v3/process"
	"go.uber.org/zap"

	"github.com/eliteGoblin/focusd/brewsvc/internal/domain"
)

const (
	// LaunchctlPath is where macOS ships launchctl.
	LaunchctlPath = "/bin/launchctl"

	// DefaultProcessQueryTimeout bounds the ps call in UserOfProcess.
	DefaultProcessQueryTimeout = 5 * time.Second

	systemdRuntimeDir = "/run/systemd/system"
)

// ProbeOptions carries the collaborators of a platform probe.
// Zero values are replaced with the real implementations.
type ProbeOptions struct {
	Env          domain.Environment
	Runner       domain.CommandRunner
	Logger       *zap.Logger
	QueryTimeout time.Duration

	// EUID returns the effective user id.
	EUID func() int
	// LookupUser is the OS fallback for the login name when $USER is unset.
	LookupUser func() (*user.User, error)
	// PidExists checks the process table before shelling out to ps.
	PidExists func(ctx context.Context, pid int32) (bool, error)
	// SystemdDetector decides whether a Linux host runs systemd.
	SystemdDetector func() bool
}

func (o ProbeOptions) withDefaults() ProbeOptions {
	if o.Env == nil {
		o.Env = OSEnvironment{}
	}
	if o.Runner == nil {
		o.Runner = NewCommandRunner()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.QueryTimeout <= 0 {
		o.QueryTimeout = DefaultProcessQueryTimeout
	}
	if o.EUID == nil {
		o.EUID = os.Geteuid
	}
	if o.LookupUser == nil {
		o.LookupUser = user.Current
	}
	if o.PidExists == nil {
		o.PidExists = process.PidExistsWithContext
	}
	if o.SystemdDetector == nil {
		o.SystemdDetector = DetectSystemd
	}
	return o
}

// NewPlatformProbe picks the probe variant for goos (a runtime.GOOS value).
// This is the only place that branches on the operating system.
func NewPlatformProbe(goos string, opts ProbeOptions) domain.PlatformProbe {
	opts = opts.withDefaults()
	base := baseProbe{opts: opts}

	switch goos {
	case "darwin":
		return &launchdProbe{baseProbe: base}
	case "linux":
		return &systemdProbe{baseProbe: base, systemd: opts.SystemdDetector()}
	default:
		return &unsupportedProbe{baseProbe: base}
	}
}

// DetectSystemd reports whether pid 1 is systemd. When pid 1 cannot be
// inspected it falls back to the systemd runtime directory.
func DetectSystemd() bool {
	if p, err := process.NewProcess(1); err == nil {
		if name, err := p.Name(); err == nil {
			return name == "systemd"
		}
	}
	_, err := os.Stat(systemdRuntimeDir)
	return err == nil
}

// baseProbe holds the OS-independent half of every probe.
type baseProbe struct {
	opts ProbeOptions
}

func (b *baseProbe) IsRoot() bool {
	return b.opts.EUID() == 0
}

func (b *baseProbe) UID() int {
	return b.opts.EUID()
}

func (b *baseProbe) CurrentUser() (string, error) {
	if name, ok := lookupNonEmpty(b.opts.Env, "USER"); ok {
		return name, nil
	}
	if u, err := b.opts.LookupUser(); err == nil && u.Username != "" {
		return u.Username, nil
	}
	return "", &domain.EnvironmentError{Var: "USER"}
}

func (b *baseProbe) UserOfProcess(ctx context.Context, pid *int) (string, bool, error) {
	if pid == nil {
		name, err := b.CurrentUser()
		if err != nil {
			return "", false, err
		}
		return name, true, nil
	}

	name, ok, err := queryProcessUser(ctx, b.opts, *pid)
	if err != nil {
		b.opts.Logger.Debug("process owner lookup failed",
			zap.Int("pid", *pid),
			zap.Error(err))
		return "", false, nil
	}
	return name, ok, nil
}

// launchdProbe is selected on macOS.
type launchdProbe struct {
	baseProbe
}

func (p *launchdProbe) LaunchctlPath() string { return LaunchctlPath }
func (p *launchdProbe) HasLaunchctl() bool { return true }
func (p *launchdProbe) HasSystemd() bool { return false }

// systemdProbe is selected on Linux; systemd is decided once at construction.
type systemdProbe struct {
	baseProbe
	systemd bool
}

func (p *systemdProbe) LaunchctlPath() string { return "" }
func (p *systemdProbe) HasLaunchctl() bool { return false }
func (p *systemdProbe) HasSystemd() bool { return p.systemd }

// unsupportedProbe is selected everywhere else.
type unsupportedProbe struct {
	baseProbe
}

func (p *unsupportedProbe) LaunchctlPath() string { return "" }
func (p *unsupportedProbe) HasLaunchctl() bool { return false }
func (p *unsupportedProbe) HasSystemd() bool { return false }

// Ensure each variant implements domain.PlatformProbe.
var (
	_ domain.PlatformProbe = (*launchdProbe)(nil)
	_ domain.PlatformProbe = (*systemdProbe)(nil)
	_ domain.PlatformProbe = (*unsupportedProbe)(nil)
)
