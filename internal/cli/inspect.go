package cli

import (
	stdx509 "crypto/x509"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type InspectOptions struct{}

func NewCmdInspect() *cobra.Command {
	o := &InspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect CERT.der",
		Short: "Parse a DER certificate and print its fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.Run(args)
		},
		SilenceUsage: true,
	}
	return cmd
}

func (o *InspectOptions) Run(args []string) error {
	der, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	cert, err := stdx509.ParseCertificate(der)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	fmt.Printf("Version:      v%d\n", cert.Version)
	fmt.Printf("Serial:       %x\n", cert.SerialNumber.Bytes())
	fmt.Printf("Issuer:       CN=%s serialNumber=%s\n", cert.Issuer.CommonName, cert.Issuer.SerialNumber)
	fmt.Printf("Subject:      CN=%s serialNumber=%s\n", cert.Subject.CommonName, cert.Subject.SerialNumber)
	fmt.Printf("Not before:   %s\n", cert.NotBefore)
	fmt.Printf("Not after:    %s\n", cert.NotAfter)
	fmt.Printf("Signature:    %s\n", cert.SignatureAlgorithm)
	fmt.Printf("Extensions:\n")
	for _, ext := range cert.Extensions {
		fmt.Printf("  - %s (critical=%v, %d bytes)\n", ext.Id, ext.Critical, len(ext.Value))
	}
	return nil
}
