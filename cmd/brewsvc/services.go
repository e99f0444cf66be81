package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eliteGoblin/focusd/brewsvc/internal/domain"
	"github.com/eliteGoblin/focusd/brewsvc/internal/service"
)

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "Inspect where background services are defined",
	Long: `Reports the init system, service definition directories and the
session domain that service commands would use on this host.`,
}

var servicesPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the service directory for the current privilege level",
	Args:  cobra.NoArgs,
	RunE:  runServicesPath,
}

var servicesBootPathCmd = &cobra.Command{
	Use:   "boot-path",
	Short: "Print the system-wide service directory",
	Args:  cobra.NoArgs,
	RunE:  runServicesBootPath,
}

var servicesUserPathCmd = &cobra.Command{
	Use:   "user-path",
	Short: "Print the per-user service directory",
	Args:  cobra.NoArgs,
	RunE:  runServicesUserPath,
}

var servicesFileCmd = &cobra.Command{
	Use:   "file FORMULA",
	Short: "Print where a formula's service definition is installed",
	Args:  cobra.ExactArgs(1),
	RunE:  runServicesFile,
}

var servicesDomainCmd = &cobra.Command{
	Use:   "domain",
	Short: "Print the launchctl domain target of this session",
	Args:  cobra.NoArgs,
	RunE:  runServicesDomain,
}

var servicesWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Print the current user, or the owner of --pid",
	Args:  cobra.NoArgs,
	RunE:  runServicesWhoami,
}

var servicesInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show everything the service commands know about this host",
	Args:  cobra.NoArgs,
	RunE:  runServicesInfo,
}

var (
	whoamiPid int
	infoJSON  bool
)

func init() {
	servicesWhoamiCmd.Flags().IntVar(&whoamiPid, "pid", 0, "Process id to look up")
	servicesInfoCmd.Flags().BoolVar(&infoJSON, "json", false, "Output as JSON")

	servicesCmd.AddCommand(servicesPathCmd)
	servicesCmd.AddCommand(servicesBootPathCmd)
	servicesCmd.AddCommand(servicesUserPathCmd)
	servicesCmd.AddCommand(servicesFileCmd)
	servicesCmd.AddCommand(servicesDomainCmd)
	servicesCmd.AddCommand(servicesWhoamiCmd)
	servicesCmd.AddCommand(servicesInfoCmd)
}

// printPath prints path, or reports the platform as unsupported when it is
// empty.
func printPath(path string, err error) error {
	if err != nil {
		return err
	}
	if path == "" {
		return domain.ErrUnsupportedPlatform
	}
	fmt.Println(path)
	return nil
}

func runServicesPath(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	return printPath(a.resolver().Path())
}

func runServicesBootPath(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	return printPath(a.resolver().BootPath(), nil)
}

func runServicesUserPath(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	return printPath(a.resolver().UserPath())
}

func runServicesFile(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	return printPath(service.FilePath(a.resolver(), args[0]))
}

func runServicesDomain(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	fmt.Println(a.resolver().DomainTarget())
	return nil
}

func runServicesWhoami(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	var pid *int
	if cmd.Flags().Changed("pid") {
		pid = &whoamiPid
	}

	name, ok, err := a.probe.UserOfProcess(cmd.Context(), pid)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no process with pid %d", whoamiPid)
	}
	fmt.Println(name)
	return nil
}

func runServicesInfo(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	info, err := service.Describe(a.resolver(), a.probe)
	if err != nil {
		return err
	}

	if infoJSON {
		out, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Println("\n=== brewsvc Services ===")
	fmt.Printf("Init system: %s\n", info.InitSystem)
	fmt.Printf("Privilege: %s\n", info.Privilege)
	fmt.Printf("Domain target: %s\n", info.DomainTarget)
	if !info.Supported() {
		fmt.Printf("Service paths: unavailable (%v)\n", domain.ErrUnsupportedPlatform)
		fmt.Println("========================")
		return nil
	}
	fmt.Printf("Control: %s\n", strings.Join(info.Control, " "))
	fmt.Printf("Boot path: %s\n", info.BootPath)
	fmt.Printf("User path: %s\n", info.UserPath)
	fmt.Printf("Active path: %s\n", info.Path)
	fmt.Println("========================")
	return nil
}
