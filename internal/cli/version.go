package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caliptra/dpe-go/internal/profile"
	"github.com/caliptra/dpe-go/pkg/version"
)

func NewCmdVersion() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the dpectl version and active DPE profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("dpectl version %s\n", version.String())
			fmt.Printf("profile %s\n", profile.Current)
			return nil
		},
	}
}
