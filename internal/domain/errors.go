package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrEnvironment         = errors.New("required environment variable not set")
	ErrProcessQuery        = errors.New("process query failed")
	ErrUnsupportedPlatform = errors.New("no supported init system (launchd or systemd) detected")

	ErrInvalidTapName    = errors.New("invalid tap name")
	ErrTapAlreadyTapped  = errors.New("tap already tapped")
	ErrTapRemoteMismatch = errors.New("tap already tapped with a different remote")
	ErrTapNotTapped      = errors.New("tap not tapped")
	ErrTapNoCustomRemote = errors.New("--custom-remote requires a URL")

	ErrStoreKeyMissing = errors.New("tap store key missing")
	ErrStoreKeyInvalid = errors.New("tap store key invalid")

	ErrFormulaUnavailable = errors.New("no available formula")
	ErrUsage              = errors.New("invalid usage")
)

// EnvironmentError reports an unset environment variable that an operation
// cannot proceed without.
type EnvironmentError struct {
	Var string
}

func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("$%s is not set", e.Var)
}

// Is lets errors.Is(err, ErrEnvironment) match any EnvironmentError.
func (e *EnvironmentError) Is(target error) bool {
	return target == ErrEnvironment
}
