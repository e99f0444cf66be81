package service

import (
	"context"

	"github.com/eliteGoblin/focusd/brewsvc/internal/domain"
)

// fakeProbe is a test double for domain.PlatformProbe with fixed answers.
type fakeProbe struct {
	launchctl bool
	systemd   bool
	root      bool
	uid       int
}

func (p *fakeProbe) LaunchctlPath() string {
	if p.launchctl {
		return "/bin/launchctl"
	}
	return ""
}

func (p *fakeProbe) HasLaunchctl() bool { return p.launchctl }

func (p *fakeProbe) HasSystemd() bool { return p.systemd }

func (p *fakeProbe) IsRoot() bool { return p.root }

func (p *fakeProbe) UID() int {
	if p.root {
		return 0
	}
	return p.uid
}

func (p *fakeProbe) CurrentUser() (string, error) { return "tester", nil }

func (p *fakeProbe) UserOfProcess(ctx context.Context, pid *int) (string, bool, error) {
	return "tester", true, nil
}

// mapEnv is a fixed environment.
type mapEnv map[string]string

func (m mapEnv) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

var homeEnv = mapEnv{"HOME": "/tmp_home"}

var _ domain.PlatformProbe = (*fakeProbe)(nil)
