package infra

import (
	"os"

	"github.com/eliteGoblin/focusd/brewsvc/internal/domain"
)

// OSEnvironment reads the real process environment.
type OSEnvironment struct{}

// Lookup returns the value of key from the process environment.
func (OSEnvironment) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapEnvironment is a fixed environment, used when the real one must not be
// touched (tests, dry runs).
type MapEnvironment map[string]string

// Lookup returns the value of key from the map.
func (m MapEnvironment) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// lookupNonEmpty treats an empty value the same as an unset one.
func lookupNonEmpty(env domain.Environment, key string) (string, bool) {
	v, ok := env.Lookup(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Ensure both environments implement domain.Environment.
var _ domain.Environment = OSEnvironment{}
var _ domain.Environment = MapEnvironment(nil)
