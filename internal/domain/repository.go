package domain

import "context"

// Environment reads process environment variables.
// Implementations: the real process environment, or a fixed map in tests.
type Environment interface {
	// Lookup returns the value of key and whether it is set.
	Lookup(key string) (string, bool)
}

// CommandRunner abstracts external command execution for testing.
type CommandRunner interface {
	// Output runs the command and returns its stdout.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// PlatformProbe reports which init system and privilege context the
// process runs under.
type PlatformProbe interface {
	// LaunchctlPath returns /bin/launchctl on macOS, empty otherwise.
	LaunchctlPath() string

	// HasLaunchctl is true iff LaunchctlPath is non-empty.
	HasLaunchctl() bool

	// HasSystemd is true on Linux hosts booted with systemd.
	HasSystemd() bool

	// IsRoot is true when the effective uid is 0.
	IsRoot() bool

	// UID returns the effective user id.
	UID() int

	// CurrentUser returns the invoking user's login name.
	CurrentUser() (string, error)

	// UserOfProcess returns the owner of pid, or the current user when pid
	// is nil. ok is false when the process has no owner entry.
	UserOfProcess(ctx context.Context, pid *int) (user string, ok bool, err error)
}

// TapStore persists the set of installed taps.
type TapStore interface {
	// Get returns the tap by normalised name, or ErrTapNotTapped.
	Get(name string) (*Tap, error)

	// Save inserts or replaces a tap.
	Save(tap Tap) error

	// Delete removes a tap, returning ErrTapNotTapped if absent.
	Delete(name string) error

	// List returns all installed taps sorted by name.
	List() ([]Tap, error)

	// Close releases resources (e.g., database connection).
	Close() error
}

// FormulaIndex loads formula definitions from installed taps.
type FormulaIndex interface {
	// All returns every formula found in the given taps.
	All(taps []Tap) ([]Formula, error)

	// IsInstalled reports whether the formula has a Cellar keg.
	IsInstalled(name string) bool
}
