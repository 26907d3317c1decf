package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/caliptra/dpe-go/internal/profile"
	"github.com/caliptra/dpe-go/internal/x509"
	"github.com/caliptra/dpe-go/pkg/log"
)

// Leaf certificates comfortably fit in 1 KiB for both profiles; the
// flag exists for experiments with many measurement nodes.
const defaultCertBufferSize = 1024

type EncodeCertOptions struct {
	RequestFile string
	Output      string
	BufferSize  int
	TBSOnly     bool
	LogLevel    string
}

func DefaultEncodeCertOptions() *EncodeCertOptions {
	return &EncodeCertOptions{
		Output:     "leaf.der",
		BufferSize: defaultCertBufferSize,
		LogLevel:   "info",
	}
}

func NewCmdEncodeCert() *cobra.Command {
	o := DefaultEncodeCertOptions()
	cmd := &cobra.Command{
		Use:   "encode-cert [flags]",
		Short: "Encode a DPE attestation leaf certificate from a YAML request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *EncodeCertOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.RequestFile, "request", "f", o.RequestFile, "Path to the YAML certificate request.")
	fs.StringVarP(&o.Output, "output", "o", o.Output, "Path the DER certificate is written to.")
	fs.IntVar(&o.BufferSize, "buffer-size", o.BufferSize, "Size of the output buffer handed to the encoder.")
	fs.BoolVar(&o.TBSOnly, "tbs-only", o.TBSOnly, "Encode only the TBSCertificate, for external signing.")
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "Log level: debug, info, warn, error.")
}

func (o *EncodeCertOptions) Validate(args []string) error {
	if o.RequestFile == "" {
		return fmt.Errorf("a request file must be provided with --request")
	}
	if o.BufferSize <= 0 {
		return fmt.Errorf("buffer size must be positive")
	}
	return nil
}

func (o *EncodeCertOptions) Run(args []string) error {
	logger := log.InitLogs(o.LogLevel)

	req, err := LoadCertRequest(o.RequestFile)
	if err != nil {
		return err
	}
	in, err := req.Inputs()
	if err != nil {
		return err
	}

	buf := make([]byte, o.BufferSize)
	w := x509.NewCertWriter(buf)

	var bytesWritten int
	if o.TBSOnly {
		bytesWritten, err = w.EncodeECDSATBS(in.SerialNumber, &in.Issuer, &in.Subject, &in.PublicKey, &in.Measurements)
	} else {
		bytesWritten, err = w.EncodeECDSACertificate(in.SerialNumber, &in.Issuer, &in.Subject, &in.PublicKey, &in.Measurements, &in.Signature)
	}
	if err != nil {
		return fmt.Errorf("encoding certificate: %w", err)
	}

	if err := os.WriteFile(o.Output, buf[:bytesWritten], 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", o.Output, err)
	}

	logger.WithField("profile", profile.Current.String()).
		WithField("bytes", bytesWritten).
		Infof("wrote %s", o.Output)
	return nil
}
