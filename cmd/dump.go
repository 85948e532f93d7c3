package cmd

import (
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the raw header summary of a device",
	Long: `Print a human-readable summary of the device header.

Examples:
  cryptstat dump --device /dev/sdb2`,

	Run: func(cmd *cobra.Command, args []string) {
		if err := runDump(); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}

func runDump() error {
	status, closeDevice, err := openStatus()
	if err != nil {
		return err
	}
	defer closeDevice()

	return status.Dump()
}
