//go:build integration

package integration

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/eliteGoblin/focusd/brewsvc/internal/domain"
	"github.com/eliteGoblin/focusd/brewsvc/internal/infra"
	"github.com/eliteGoblin/focusd/brewsvc/internal/usecase"
	"github.com/eliteGoblin/focusd/brewsvc/test/fixtures"
)

var _ = Describe("Taps and dependents", func() {
	var (
		tmpDir  string
		layout  *infra.Layout
		prefix  *fixtures.FakePrefix
		store   *infra.SQLTapStore
		manager *usecase.TapManager
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "brewsvc-integration-*")
		Expect(err).NotTo(HaveOccurred())

		layout = infra.DetectLayout(infra.MapEnvironment{infra.EnvDataDir: filepath.Join(tmpDir, "data")}, false)
		prefix = fixtures.NewFakePrefix(filepath.Join(tmpDir, "prefix"))

		store, err = infra.OpenTapStore(layout)
		Expect(err).NotTo(HaveOccurred())
		manager = usecase.NewTapManager(store, prefix.Root, zap.NewNop())
	})

	AfterEach(func() {
		if store != nil {
			store.Close()
		}
		os.RemoveAll(tmpDir)
	})

	Describe("Tapping", func() {
		Context("when a tap is added", func() {
			It("should persist across store reopen", func() {
				_, err := manager.Add("Acme/homebrew-Tools", "", false)
				Expect(err).NotTo(HaveOccurred())
				Expect(store.Close()).To(Succeed())

				reopened, err := infra.OpenTapStore(layout)
				Expect(err).NotTo(HaveOccurred())
				store = reopened

				taps, err := reopened.List()
				Expect(err).NotTo(HaveOccurred())
				Expect(taps).To(HaveLen(1))
				Expect(taps[0].Name).To(Equal("acme/tools"))
				Expect(taps[0].Path).To(Equal(prefix.TapDir("acme", "tools")))
				Expect(taps[0].Path).To(BeADirectory())
			})
		})

		Context("when re-tapping with another URL", func() {
			It("should require --custom-remote", func() {
				_, err := manager.Add("acme/tools", "", false)
				Expect(err).NotTo(HaveOccurred())

				_, err = manager.Add("acme/tools", "https://example.com/tools.git", false)
				Expect(err).To(MatchError(domain.ErrTapRemoteMismatch))

				t, err := manager.Add("acme/tools", "https://example.com/tools.git", true)
				Expect(err).NotTo(HaveOccurred())
				Expect(t.CustomRemote).To(BeTrue())
			})
		})

		Context("when untapping", func() {
			It("should remove the directory and the record", func() {
				t, err := manager.Add("acme/tools", "", false)
				Expect(err).NotTo(HaveOccurred())
				Expect(prefix.AddFormula(t.Path, "widget")).To(Succeed())

				_, err = manager.Remove("acme/tools")
				Expect(err).NotTo(HaveOccurred())
				Expect(t.Path).NotTo(BeAnExistingFile())

				taps, err := manager.List()
				Expect(err).NotTo(HaveOccurred())
				Expect(taps).To(BeEmpty())
			})
		})
	})

	Describe("Uses", func() {
		var dependents *usecase.Dependents

		BeforeEach(func() {
			t, err := manager.Add("acme/tools", "", false)
			Expect(err).NotTo(HaveOccurred())

			Expect(prefix.AddFormula(t.Path, "zlib")).To(Succeed())
			Expect(prefix.AddFormula(t.Path, "openssl")).To(Succeed())
			Expect(prefix.AddFormula(t.Path, "curl",
				domain.Dependency{Name: "openssl"},
				domain.Dependency{Name: "zlib"})).To(Succeed())
			Expect(prefix.AddFormula(t.Path, "git",
				domain.Dependency{Name: "curl"})).To(Succeed())
			Expect(prefix.AddFormula(t.Path, "wget",
				domain.Dependency{Name: "openssl"},
				domain.Dependency{Name: "pkg-config", Tags: []string{domain.TagBuild}})).To(Succeed())
			Expect(prefix.Install("zlib", "openssl", "curl")).To(Succeed())

			dependents = usecase.NewDependents(store, infra.NewFormulaIndex(prefix.Root), zap.NewNop())
		})

		It("should intersect direct dependents", func() {
			got, err := dependents.Uses([]string{"openssl", "zlib"}, usecase.UsesOptions{EvalAll: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(1))
			Expect(got[0].FullName).To(Equal("acme/tools/curl"))
		})

		It("should follow dependencies with --recursive", func() {
			got, err := dependents.Uses([]string{"zlib"}, usecase.UsesOptions{EvalAll: true, Recursive: true})
			Expect(err).NotTo(HaveOccurred())

			names := make([]string, 0, len(got))
			for _, f := range got {
				names = append(names, f.Name)
			}
			Expect(names).To(Equal([]string{"curl", "git"}))
		})

		It("should only consider installed formulae with --installed", func() {
			got, err := dependents.Uses([]string{"openssl"}, usecase.UsesOptions{Installed: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(1))
			Expect(got[0].Name).To(Equal("curl"))
		})

		It("should skip build dependencies by default", func() {
			got, err := dependents.Uses([]string{"pkg-config"}, usecase.UsesOptions{EvalAll: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeEmpty())

			got, err = dependents.Uses([]string{"pkg-config"}, usecase.UsesOptions{EvalAll: true, IncludeBuild: true})
			Expect(err).To(MatchError(domain.ErrFormulaUnavailable))
			Expect(got).To(HaveLen(1))
		})
	})
})
