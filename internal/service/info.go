package service

import (
	"github.com/eliteGoblin/focusd/brewsvc/internal/domain"
)

// Info is a snapshot of everything the service commands need to know about
// the host.
type Info struct {
	InitSystem   domain.InitSystem     `json:"init_system"`
	Privilege    domain.PrivilegeLevel `json:"privilege"`
	DomainTarget string                `json:"domain_target"`
	Control      []string              `json:"control"`
	BootPath     string                `json:"boot_path"`
	UserPath     string                `json:"user_path"`
	Path         string                `json:"path"`
}

// Supported reports whether the host has an init system we can drive.
func (i Info) Supported() bool {
	return i.InitSystem != domain.InitNone
}

// Describe collects Info from the resolver. HOME is only required for
// non-root sessions.
func Describe(r *Resolver, probe domain.PlatformProbe) (Info, error) {
	info := Info{
		InitSystem:   r.InitSystem(),
		Privilege:    r.Privilege(),
		DomainTarget: r.DomainTarget(),
		BootPath:     r.BootPath(),
	}
	info.Control = ControlCommand(info.InitSystem, info.Privilege, probe)

	// Root only needs the boot path, so a missing HOME leaves UserPath empty.
	userPath, err := r.UserPath()
	if err != nil && info.Privilege != domain.PrivilegeRoot {
		return info, err
	}
	info.UserPath = userPath

	path, err := r.Path()
	if err != nil {
		return info, err
	}
	info.Path = path
	return info, nil
}

// ControlCommand returns the argv prefix that talks to the init system:
// launchctl, `systemctl` for root, or `systemctl --user`.
func ControlCommand(sys domain.InitSystem, privilege domain.PrivilegeLevel, probe domain.PlatformProbe) []string {
	switch sys {
	case domain.InitLaunchd:
		return []string{probe.LaunchctlPath()}
	case domain.InitSystemd:
		if privilege == domain.PrivilegeRoot {
			return []string{"systemctl"}
		}
		return []string{"systemctl", "--user"}
	default:
		return nil
	}
}
