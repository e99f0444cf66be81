package infra

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/eliteGoblin/focusd/brewsvc/internal/domain"
)

const (
	appDirName     = "brewsvc"
	logFileName    = "brewsvc.log"
	storeFileName  = "taps.db"
	keyFileName    = "taps.key"
	configFileName = "config.toml"

	// EnvDataDir overrides where the tap store and log live.
	EnvDataDir = "BREWSVC_DATA_DIR"
	// EnvConfigDir overrides where config.toml is read from.
	EnvConfigDir = "BREWSVC_CONFIG_DIR"

	systemDataDir   = "/var/lib/brewsvc"
	systemConfigDir = "/etc/brewsvc"
)

// Layout holds brewsvc's own runtime paths for a privilege level.
// Root gets system-wide locations, users get XDG locations, mirroring the
// LaunchDaemons / LaunchAgents split.
type Layout struct {
	Privilege  domain.PrivilegeLevel
	DataDir    string // tap store and key
	ConfigDir  string // config.toml
	LogPath    string
	ConfigPath string
	StorePath  string // encrypted tap database
	KeyPath    string // hex key for StorePath
}

// DetectLayout returns the layout for the given privilege, honouring the
// BREWSVC_* overrides.
func DetectLayout(env domain.Environment, isRoot bool) *Layout {
	l := &Layout{
		Privilege: domain.PrivilegeUser,
		DataDir:   filepath.Join(xdg.DataHome, appDirName),
		ConfigDir: filepath.Join(xdg.ConfigHome, appDirName),
	}
	if isRoot {
		l.Privilege = domain.PrivilegeRoot
		l.DataDir = systemDataDir
		l.ConfigDir = systemConfigDir
	}

	if dir, ok := lookupNonEmpty(env, EnvDataDir); ok {
		l.DataDir = dir
	}
	if dir, ok := lookupNonEmpty(env, EnvConfigDir); ok {
		l.ConfigDir = dir
	}

	l.LogPath = filepath.Join(l.DataDir, logFileName)
	l.ConfigPath = filepath.Join(l.ConfigDir, configFileName)
	l.StorePath = filepath.Join(l.DataDir, storeFileName)
	l.KeyPath = filepath.Join(l.DataDir, keyFileName)
	return l
}
