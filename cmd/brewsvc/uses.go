package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eliteGoblin/focusd/brewsvc/internal/infra"
	"github.com/eliteGoblin/focusd/brewsvc/internal/usecase"
)

// envEvalAll enables --eval-all when set to anything.
const envEvalAll = "HOMEBREW_EVAL_ALL"

var usesCmd = &cobra.Command{
	Use:   "uses FORMULA...",
	Short: "Show formulae that depend on every given formula",
	Long: `Lists formulae that declare a dependency on all of the given formulae.
Build, test, optional and implicit dependencies are skipped unless
asked for; recommended ones are counted unless --skip-recommended.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUses,
}

var usesOpts usecase.UsesOptions

func init() {
	f := usesCmd.Flags()
	f.BoolVar(&usesOpts.Recursive, "recursive", false, "Resolve more than one level of dependencies")
	f.BoolVar(&usesOpts.Installed, "installed", false, "Only list installed formulae")
	f.BoolVar(&usesOpts.Missing, "missing", false, "Only list formulae that are not installed")
	f.BoolVar(&usesOpts.EvalAll, "eval-all", false, "Evaluate all formulae in all taps")
	f.BoolVar(&usesOpts.IncludeBuild, "include-build", false, "Include build dependencies")
	f.BoolVar(&usesOpts.IncludeTest, "include-test", false, "Include test dependencies")
	f.BoolVar(&usesOpts.IncludeOptional, "include-optional", false, "Include optional dependencies")
	f.BoolVar(&usesOpts.IncludeImplicit, "include-implicit", false, "Include implicit dependencies")
	f.BoolVar(&usesOpts.SkipRecommended, "skip-recommended", false, "Skip recommended dependencies")
}

func runUses(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	opts := usesOpts
	if _, ok := a.env.Lookup(envEvalAll); ok {
		opts.EvalAll = true
	}

	store, err := infra.OpenTapStore(a.layout)
	if err != nil {
		return fmt.Errorf("failed to open tap store: %w", err)
	}
	defer store.Close()

	dependents := usecase.NewDependents(store, infra.NewFormulaIndex(a.config.Prefix), a.logger)
	formulae, err := dependents.Uses(args, opts)
	for _, f := range formulae {
		fmt.Println(f.FullName)
	}
	return err
}
