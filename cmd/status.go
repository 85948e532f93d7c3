package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status [name]",
	Short: "Report whether a device-mapper mapping is active",
	Long: `Report the runtime state of a device-mapper mapping.

Examples:
  # Check whether the mapping "cryptroot" is active
  cryptstat status cryptroot --device /dev/sdb2`,

	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runStatus(args[0]); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(name string) error {
	status, closeDevice, err := openStatus()
	if err != nil {
		return err
	}
	defer closeDevice()

	state, err := status.Status(name)
	if err != nil {
		return err
	}

	fmt.Printf("%s is %s\n", name, state)
	return nil
}
