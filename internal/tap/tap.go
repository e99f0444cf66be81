// Package tap parses tap names and derives where a tap lives.
// A tap is a third-party formula repository addressed as "user/repo".
package tap

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/eliteGoblin/focusd/brewsvc/internal/domain"
)

// repoPrefix is the GitHub repository prefix every tap repo carries.
const repoPrefix = "homebrew-"

var segmentPattern = regexp.MustCompile(`^[\w-]+$`)

// Name is a parsed tap name.
type Name struct {
	User string
	Repo string
}

// String returns the normalised "user/repo" form.
func (n Name) String() string {
	return n.User + "/" + n.Repo
}

// Parse accepts "user/repo" or "user/homebrew-repo" in any case.
func Parse(raw string) (Name, error) {
	parts := strings.Split(strings.TrimSpace(raw), "/")
	if len(parts) != 2 {
		return Name{}, fmt.Errorf("%w: %q", domain.ErrInvalidTapName, raw)
	}

	user := strings.ToLower(parts[0])
	repo := strings.TrimPrefix(strings.ToLower(parts[1]), repoPrefix)
	if !segmentPattern.MatchString(user) || !segmentPattern.MatchString(repo) {
		return Name{}, fmt.Errorf("%w: %q", domain.ErrInvalidTapName, raw)
	}
	return Name{User: user, Repo: repo}, nil
}

// DefaultRemote is the GitHub HTTPS URL used when no URL is given.
func DefaultRemote(n Name) string {
	return fmt.Sprintf("https://github.com/%s/%s%s", n.User, repoPrefix, n.Repo)
}

// Dir is <prefix>/Library/Taps/<user>/homebrew-<repo>.
func Dir(prefix string, n Name) string {
	return filepath.Join(prefix, "Library", "Taps", n.User, repoPrefix+n.Repo)
}

// New builds a domain.Tap. An empty remote means the default remote.
func New(n Name, remote, prefix string) domain.Tap {
	def := DefaultRemote(n)
	if remote == "" {
		remote = def
	}
	return domain.Tap{
		Name:         n.String(),
		User:         n.User,
		Repo:         n.Repo,
		Remote:       remote,
		CustomRemote: remote != def,
		Path:         Dir(prefix, n),
	}
}
