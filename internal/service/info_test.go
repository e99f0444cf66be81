package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliteGoblin/focusd/brewsvc/internal/domain"
)

func TestDescribe(t *testing.T) {
	t.Run("launchd user session", func(t *testing.T) {
		probe := &fakeProbe{launchctl: true, uid: 501}
		info, err := Describe(NewResolver(probe, homeEnv), probe)
		require.NoError(t, err)

		assert.True(t, info.Supported())
		assert.Equal(t, domain.InitLaunchd, info.InitSystem)
		assert.Equal(t, domain.PrivilegeUser, info.Privilege)
		assert.Equal(t, "gui/501", info.DomainTarget)
		assert.Equal(t, []string{"/bin/launchctl"}, info.Control)
		assert.Equal(t, "/Library/LaunchDaemons", info.BootPath)
		assert.Equal(t, "/tmp_home/Library/LaunchAgents", info.UserPath)
		assert.Equal(t, info.UserPath, info.Path)
	})

	t.Run("systemd as root", func(t *testing.T) {
		probe := &fakeProbe{systemd: true, root: true}
		info, err := Describe(NewResolver(probe, homeEnv), probe)
		require.NoError(t, err)

		assert.Equal(t, "system", info.DomainTarget)
		assert.Equal(t, []string{"systemctl"}, info.Control)
		assert.Equal(t, "/usr/lib/systemd/system", info.Path)
	})

	t.Run("unsupported host", func(t *testing.T) {
		probe := &fakeProbe{uid: 1000}
		info, err := Describe(NewResolver(probe, mapEnv{}), probe)
		require.NoError(t, err)

		assert.False(t, info.Supported())
		assert.Nil(t, info.Control)
		assert.Empty(t, info.BootPath)
		assert.Empty(t, info.UserPath)
		assert.Empty(t, info.Path)
	})

	t.Run("root without HOME still describes the boot path", func(t *testing.T) {
		probe := &fakeProbe{launchctl: true, root: true}
		info, err := Describe(NewResolver(probe, mapEnv{}), probe)
		require.NoError(t, err)

		assert.Equal(t, "/Library/LaunchDaemons", info.Path)
		assert.Equal(t, info.BootPath, info.Path)
		assert.Empty(t, info.UserPath)
	})

	t.Run("missing HOME is reported", func(t *testing.T) {
		probe := &fakeProbe{systemd: true, uid: 1000}
		_, err := Describe(NewResolver(probe, mapEnv{}), probe)
		assert.ErrorIs(t, err, domain.ErrEnvironment)
	})
}

func TestControlCommand_SystemdUser(t *testing.T) {
	got := ControlCommand(domain.InitSystemd, domain.PrivilegeUser, &fakeProbe{systemd: true})
	assert.Equal(t, []string{"systemctl", "--user"}, got)
}
