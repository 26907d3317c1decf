package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/caliptra/dpe-go/internal/dpe"
	"github.com/caliptra/dpe-go/internal/dpe/commands"
	"github.com/caliptra/dpe-go/pkg/log"
)

// DestroyOptions drives a local demonstration of the DestroyContext
// command: a derivation chain is built in an in-memory instance, the
// command is parsed from its wire form and executed, and the resulting
// context table is printed.
type DestroyOptions struct {
	Contexts int
	Target   int
	Children bool
	Locality uint32
	LogLevel string
}

func DefaultDestroyOptions() *DestroyOptions {
	return &DestroyOptions{
		Contexts: 4,
		Target:   1,
		Locality: 0,
		LogLevel: "info",
	}
}

func NewCmdDestroy() *cobra.Command {
	o := DefaultDestroyOptions()
	cmd := &cobra.Command{
		Use:   "destroy [flags]",
		Short: "Simulate a DestroyContext command against an in-memory context table",
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

func (o *DestroyOptions) Bind(fs *pflag.FlagSet) {
	fs.IntVar(&o.Contexts, "contexts", o.Contexts, "Number of contexts in the derivation chain.")
	fs.IntVar(&o.Target, "target", o.Target, "Chain position the destroy command targets (0 is the root).")
	fs.BoolVar(&o.Children, "destroy-children", o.Children, "Also destroy the target's descendants.")
	fs.Uint32Var(&o.Locality, "locality", o.Locality, "Locality issuing the command.")
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "Log level: debug, info, warn, error.")
}

func (o *DestroyOptions) Validate(args []string) error {
	if o.Contexts < 1 || o.Contexts > dpe.MaxHandles {
		return fmt.Errorf("contexts must be between 1 and %d", dpe.MaxHandles)
	}
	if o.Target < 0 || o.Target >= o.Contexts {
		return fmt.Errorf("target must name a chain position below %d", o.Contexts)
	}
	return nil
}

func (o *DestroyOptions) Run(args []string) error {
	logger := log.InitLogs(o.LogLevel)
	instance := dpe.New(dpe.Support{Simulation: true}, logger)

	// Build a root-to-leaf derivation chain in the caller's locality.
	handles := make([]dpe.ContextHandle, o.Contexts)
	for i := range handles {
		handle, err := dpe.NewRandomContextHandle()
		if err != nil {
			return fmt.Errorf("generating context handle: %w", err)
		}
		handles[i] = handle

		if i == 0 {
			if _, err := instance.InitializeContext(handle, dpe.ContextTypeSimulation, o.Locality); err != nil {
				return fmt.Errorf("initializing root context: %w", err)
			}
			continue
		}
		if _, err := instance.DeriveContext(i-1, handle, o.Locality); err != nil {
			return fmt.Errorf("deriving context %d: %w", i, err)
		}
	}

	flags := commands.DestroyCtxFlags(0)
	if o.Children {
		flags |= commands.DestroyChildrenFlagMask
	}
	payload := (&commands.DestroyCtxCmd{Handle: handles[o.Target], Flags: flags}).Bytes()
	wire := append(commands.NewCommandHdr(commands.CommandDestroyContext).Bytes(), payload...)

	cmd, err := commands.ParseCommand(wire)
	if err != nil {
		return fmt.Errorf("parsing destroy command: %w", err)
	}
	resp, err := cmd.Execute(instance, o.Locality)
	if err != nil {
		return fmt.Errorf("executing destroy command: %w", err)
	}
	logger.WithField("status", resp.Hdr().Status).Info("destroy command completed")

	for i := 0; i < o.Contexts; i++ {
		fmt.Printf("context[%d] handle=%s state=%s\n", i, handles[i], instance.Contexts[i].State)
	}
	return nil
}
