package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show cipher, identity and geometry of a device",
	Long: `Show the cipher configuration, identity and data layout of a device.

Examples:
  cryptstat info --device /dev/sdb2
  cryptstat info --device backup.img`,

	Run: func(cmd *cobra.Command, args []string) {
		if err := runInfo(); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo() error {
	status, closeDevice, err := openStatus()
	if err != nil {
		return err
	}
	defer closeDevice()

	cipher, err := status.CipherInfo()
	if err != nil {
		return err
	}

	identity, err := status.Identity()
	if err != nil {
		return err
	}

	geometry := status.Geometry()

	fmt.Printf("Cipher:           %s\n", cipher.Cipher)
	fmt.Printf("Cipher mode:      %s\n", cipher.CipherMode)
	fmt.Printf("UUID:             %s\n", identity.UUID)
	fmt.Printf("Device:           %s\n", identity.DevicePath)
	if identity.MetadataDevicePath != nil {
		fmt.Printf("Metadata device:  %s\n", *identity.MetadataDevicePath)
	} else {
		fmt.Printf("Metadata device:  (none, co-located with data)\n")
	}
	fmt.Printf("Data offset:      %d sectors\n", geometry.DataOffset)
	fmt.Printf("IV offset:        %d sectors\n", geometry.IVOffset)
	fmt.Printf("Volume key size:  %d bytes\n", geometry.VolumeKeySize)
	fmt.Printf("Sector size:      %d bytes\n", geometry.SectorSize)
	return nil
}
