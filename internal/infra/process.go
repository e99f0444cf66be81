package infra

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/eliteGoblin/focusd/brewsvc/internal/domain"
)

// queryProcessUser asks ps for the USER column of pid.
// A missing process is ("", false, nil); a failed or timed out query wraps
// domain.ErrProcessQuery.
func queryProcessUser(ctx context.Context, opts ProbeOptions, pid int) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opts.QueryTimeout)
	defer cancel()

	// Skip the fork when the process table already says no.
	if exists, err := opts.PidExists(ctx, int32(pid)); err == nil && !exists {
		return "", false, nil
	}

	out, err := opts.Runner.Output(ctx, "ps", "-o", "user", "-p", strconv.Itoa(pid))
	if ctx.Err() != nil {
		return "", false, fmt.Errorf("%w: ps -p %d: %v", domain.ErrProcessQuery, pid, ctx.Err())
	}

	name, ok := parsePsUser(out)
	if ok {
		return name, true, nil
	}
	// ps exits non-zero for unknown pids after printing the header.
	if err != nil && len(out) == 0 {
		return "", false, fmt.Errorf("%w: ps -p %d: %v", domain.ErrProcessQuery, pid, err)
	}
	return "", false, nil
}

// parsePsUser reads the value line of two-line `ps -o user` output.
func parsePsUser(out []byte) (string, bool) {
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	if len(lines) < 2 {
		return "", false
	}
	value := strings.TrimSpace(lines[1])
	if value == "" {
		return "", false
	}
	return value, true
}
