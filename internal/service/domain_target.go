package service

import (
	"strconv"

	"github.com/eliteGoblin/focusd/brewsvc/internal/domain"
)

// SystemDomain addresses system-wide services.
const SystemDomain = "system"

// DomainTarget returns "system" for root and "gui/<uid>" otherwise.
func DomainTarget(probe domain.PlatformProbe) string {
	if probe.IsRoot() {
		return SystemDomain
	}
	return "gui/" + strconv.Itoa(probe.UID())
}
