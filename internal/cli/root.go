// Package cli implements the dpectl command tree.
package cli

import (
	"github.com/spf13/cobra"
)

// NewDPECtlCommand builds the root dpectl command.
func NewDPECtlCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "dpectl",
		Short:        "dpectl encodes and inspects DPE attestation certificates",
		SilenceUsage: true,
	}

	cmd.AddCommand(NewCmdEncodeCert())
	cmd.AddCommand(NewCmdInspect())
	cmd.AddCommand(NewCmdDestroy())
	cmd.AddCommand(NewCmdVersion())
	return cmd
}
