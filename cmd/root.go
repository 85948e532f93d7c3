package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-cryptstatus/internal/device"
	"github.com/deploymenttheory/go-cryptstatus/internal/services"
)

var (
	// Global flags
	devicePath string
	mapperDir  string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "cryptstat",
	Short: "Read-only status introspection for encrypted block devices",
	Long: `cryptstat is a read-only command-line tool for inspecting the runtime
state and configuration of LUKS2 encrypted block devices and images:
cipher parameters, UUID, data layout, and device-mapper activation state.

It never activates, formats, or otherwise mutates a device.

Commands:
  status      Report whether a mapping is active
  info        Show cipher, identity and geometry
  dump        Print the raw header summary
  verity      Show verity parameters
  integrity   Show integrity parameters`,
	Version: "0.1.0-dev",
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&devicePath, "device", "d", "", "path to the device or image")
	rootCmd.PersistentFlags().StringVar(&mapperDir, "mapper-dir", "", "device-mapper directory (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// openStatus opens the configured device and wraps it in a status query
// facade. The returned closer releases the device.
func openStatus() (*services.DeviceStatus, func(), error) {
	if devicePath == "" {
		return nil, nil, fmt.Errorf("--device is required")
	}

	cfg, err := device.LoadProbeConfig()
	if err != nil {
		return nil, nil, err
	}
	if mapperDir != "" {
		cfg.MapperDir = mapperDir
	}

	dev, err := device.Open(devicePath, cfg)
	if err != nil {
		return nil, nil, err
	}

	status := services.NewDeviceStatus(dev, os.Stdout)
	return status, func() { dev.Close() }, nil
}
