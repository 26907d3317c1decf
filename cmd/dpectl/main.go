package main

import (
	"os"

	"github.com/caliptra/dpe-go/internal/cli"
)

func main() {
	cmd := cli.NewDPECtlCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
