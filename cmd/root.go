// Copyright (c) 2024-2026 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sixafter/chacha20-drng/cmd/run"
)

// RootCmd represents the base command when called without any subcommands.
// It reproduces the original chacha20_drng test/benchmark driver's
// behavior directly on the bare invocation, since that driver was never a
// subcommand-structured tool: no args runs the basic round-trip test,
// and -g/-o/-t select the other three modes.
var RootCmd = &cobra.Command{
	Use:   "chacha20drngctl",
	Short: "Test and benchmark driver for the ChaCha20 DRNG",
	Long: `chacha20drngctl exercises a chacha20drng.Handle the way the
original chacha20_drng test driver did: a basic round-trip test by
default, an endless raw-byte generator with -g, a fixed-size byte dump
with -o, or a throughput benchmark with -t.`,
	RunE: run.Execute,
}

func init() {
	run.BindFlags(RootCmd)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main() and only needs to happen
// once.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing chacha20drngctl: %v\n", err)
		os.Exit(1)
	}
}
