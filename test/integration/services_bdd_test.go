//go:build integration

package integration

import (
	"context"
	"os"
	"os/user"
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/eliteGoblin/focusd/brewsvc/internal/domain"
	"github.com/eliteGoblin/focusd/brewsvc/internal/infra"
	"github.com/eliteGoblin/focusd/brewsvc/internal/service"
)

var _ = Describe("Service paths", func() {
	env := infra.MapEnvironment{"HOME": "/tmp_home", "USER": "tester"}

	probeFor := func(goos string, euid int, systemd bool) domain.PlatformProbe {
		return infra.NewPlatformProbe(goos, infra.ProbeOptions{
			Env:             env,
			EUID:            func() int { return euid },
			SystemdDetector: func() bool { return systemd },
		})
	}

	DescribeTable("Path",
		func(goos string, euid int, systemd bool, want string) {
			r := service.NewResolver(probeFor(goos, euid, systemd), env)
			path, err := r.Path()
			Expect(err).NotTo(HaveOccurred())
			Expect(path).To(Equal(want))
		},
		Entry("macOS user", "darwin", 501, false, "/tmp_home/Library/LaunchAgents"),
		Entry("macOS root", "darwin", 0, false, "/Library/LaunchDaemons"),
		Entry("macOS ignores systemd", "darwin", 501, true, "/tmp_home/Library/LaunchAgents"),
		Entry("systemd user", "linux", 1000, true, "/tmp_home/.config/systemd/user"),
		Entry("systemd root", "linux", 0, true, "/usr/lib/systemd/system"),
		Entry("linux without systemd", "linux", 1000, false, ""),
		Entry("unsupported", "freebsd", 1000, false, ""),
	)

	DescribeTable("DomainTarget",
		func(euid int, want string) {
			Expect(service.DomainTarget(probeFor("darwin", euid, false))).To(Equal(want))
		},
		Entry("root", 0, "system"),
		Entry("user", 501, "gui/501"),
	)

	Context("when HOME is unset", func() {
		It("should fail with an environment error on a supported host", func() {
			noHome := infra.MapEnvironment{"USER": "tester"}
			probe := infra.NewPlatformProbe("darwin", infra.ProbeOptions{
				Env:  noHome,
				EUID: func() int { return 501 },
			})

			_, err := service.NewResolver(probe, noHome).UserPath()
			Expect(err).To(MatchError(domain.ErrEnvironment))
		})
	})

	Context("with the real process table", func() {
		It("should report the owner of this process", func() {
			current, err := user.Current()
			Expect(err).NotTo(HaveOccurred())

			probe := infra.NewPlatformProbe("linux", infra.ProbeOptions{})
			pid := os.Getpid()
			name, ok, err := probe.UserOfProcess(context.Background(), &pid)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			// ps may print the uid when the name is too long.
			Expect(name).To(SatisfyAny(Equal(current.Username), Equal(strconv.Itoa(os.Geteuid()))))
		})
	})
})
