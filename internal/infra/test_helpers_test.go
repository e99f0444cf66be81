package infra

import (
	"context"
	"errors"
	"os/user"
	"strings"

	"github.com/eliteGoblin/focusd/brewsvc/internal/domain"
)

// fakeRunner is a test double for domain.CommandRunner.
type fakeRunner struct {
	output []byte
	err    error
	block  bool // wait for ctx instead of returning
	calls  []string
}

func (r *fakeRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, name+" "+strings.Join(args, " "))
	if r.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return r.output, r.err
}

// testProbeOptions returns options that never touch the real host.
func testProbeOptions(env MapEnvironment, runner *fakeRunner, euid int) ProbeOptions {
	return ProbeOptions{
		Env:    env,
		Runner: runner,
		EUID:   func() int { return euid },
		LookupUser: func() (*user.User, error) {
			return nil, errors.New("no passwd entry")
		},
		PidExists: func(ctx context.Context, pid int32) (bool, error) {
			return true, nil
		},
		SystemdDetector: func() bool { return true },
	}
}

var _ domain.CommandRunner = (*fakeRunner)(nil)
