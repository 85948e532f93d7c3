package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verityCmd = &cobra.Command{
	Use:   "verity",
	Short: "Show verity parameters of a device",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runVerity(); err != nil {
			cobra.CheckErr(err)
		}
	},
}

var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Show integrity parameters of a device",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runIntegrity(); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(verityCmd)
	rootCmd.AddCommand(integrityCmd)
}

func runVerity() error {
	status, closeDevice, err := openStatus()
	if err != nil {
		return err
	}
	defer closeDevice()

	verity, err := status.VerityInfo()
	if err != nil {
		return err
	}

	fmt.Printf("Hash algorithm:    %s\n", verity.HashName)
	fmt.Printf("Hash type:         %d\n", verity.HashType)
	fmt.Printf("Data device:       %s\n", verity.DataDevice)
	fmt.Printf("Hash device:       %s\n", verity.HashDevice)
	if verity.FECDevice != nil {
		fmt.Printf("FEC device:        %s\n", *verity.FECDevice)
		fmt.Printf("FEC area offset:   %d\n", verity.FECAreaOffset)
		fmt.Printf("FEC roots:         %d\n", verity.FECRoots)
	}
	fmt.Printf("Salt:              %x\n", verity.Salt)
	fmt.Printf("Data block size:   %d\n", verity.DataBlockSize)
	fmt.Printf("Hash block size:   %d\n", verity.HashBlockSize)
	fmt.Printf("Data size:         %d blocks\n", verity.DataSize)
	fmt.Printf("Hash area offset:  %d\n", verity.HashAreaOffset)
	fmt.Printf("Flags:             %#x\n", verity.Flags)
	return nil
}

func runIntegrity() error {
	status, closeDevice, err := openStatus()
	if err != nil {
		return err
	}
	defer closeDevice()

	integrity, err := status.IntegrityInfo()
	if err != nil {
		return err
	}

	if integrity.Integrity != nil {
		fmt.Printf("Integrity:          %s\n", *integrity.Integrity)
	} else {
		fmt.Printf("Integrity:          (none)\n")
	}
	fmt.Printf("Integrity key size: %d bytes\n", integrity.IntegrityKeySize)
	fmt.Printf("Tag size:           %d bytes\n", integrity.TagSize)
	fmt.Printf("Sector size:        %d bytes\n", integrity.SectorSize)
	fmt.Printf("Journal size:       %d bytes\n", integrity.JournalSize)
	fmt.Printf("Journal watermark:  %d%%\n", integrity.JournalWatermark)
	fmt.Printf("Journal commit:     %d ms\n", integrity.JournalCommitTime)
	fmt.Printf("Interleave sectors: %d\n", integrity.InterleaveSectors)
	fmt.Printf("Buffer sectors:     %d\n", integrity.BufferSectors)
	if integrity.Journal != nil {
		if integrity.Journal.IntegrityAlg != nil {
			fmt.Printf("Journal integrity:  %s\n", *integrity.Journal.IntegrityAlg)
		}
		if integrity.Journal.CryptAlg != nil {
			fmt.Printf("Journal crypt:      %s\n", *integrity.Journal.CryptAlg)
		}
	}
	return nil
}
