package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eliteGoblin/focusd/brewsvc/internal/domain"
	"github.com/eliteGoblin/focusd/brewsvc/internal/infra"
	"github.com/eliteGoblin/focusd/brewsvc/internal/usecase"
)

var tapCmd = &cobra.Command{
	Use:   "tap [USER/REPO] [URL]",
	Short: "List or add formula repositories",
	Long: `Without arguments, lists installed taps.

With USER/REPO, registers the tap and creates its directory under
<prefix>/Library/Taps. URL defaults to https://github.com/USER/homebrew-REPO.
Re-tapping with a different URL requires --custom-remote.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runTap,
}

var untapCmd = &cobra.Command{
	Use:   "untap USER/REPO...",
	Short: "Remove taps",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runUntap,
}

var (
	tapCustomRemote bool
	tapRepair       bool
)

func init() {
	tapCmd.Flags().BoolVar(&tapCustomRemote, "custom-remote", false, "Change the remote of an existing tap to URL")
	tapCmd.Flags().BoolVar(&tapRepair, "repair", false, "Recreate missing tap directories")
}

// newTapManager opens the tap store. Callers must close the store.
func (a *app) newTapManager() (*usecase.TapManager, domain.TapStore, error) {
	store, err := infra.OpenTapStore(a.layout)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open tap store: %w", err)
	}
	return usecase.NewTapManager(store, a.config.Prefix, a.logger), store, nil
}

func runTap(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	manager, store, err := a.newTapManager()
	if err != nil {
		return err
	}
	defer store.Close()

	if tapRepair {
		repaired, err := manager.Repair()
		if err != nil {
			return err
		}
		fmt.Printf("Repaired %d taps\n", len(repaired))
		for _, name := range repaired {
			fmt.Printf("  - %s\n", name)
		}
		return nil
	}

	if len(args) == 0 {
		taps, err := manager.List()
		if err != nil {
			return err
		}
		for _, t := range taps {
			fmt.Println(t.Name)
		}
		return nil
	}

	var remote string
	if len(args) == 2 {
		remote = args[1]
	}

	t, err := manager.Add(args[0], remote, tapCustomRemote)
	if errors.Is(err, domain.ErrTapAlreadyTapped) {
		fmt.Printf("Warning: %s already tapped\n", t.Name)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("Tapped %s (%s)\n", t.Name, t.Remote)
	return nil
}

func runUntap(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	manager, store, err := a.newTapManager()
	if err != nil {
		return err
	}
	defer store.Close()

	for _, name := range args {
		t, err := manager.Remove(name)
		if err != nil {
			return err
		}
		fmt.Printf("Untapped %s\n", t.Name)
	}
	return nil
}
