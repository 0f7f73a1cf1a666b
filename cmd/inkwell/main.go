package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "inkwell",
		Short: "Rich-text editor core as a service",
		Long: `Inkwell hosts rich-text editor instances behind an HTTP API.

Each instance binds a document tree to one host field: HTML imports
normalize into block nodes, every committed edit mirrors back into the
field, and a source view hands authors the raw markup with byte-exact
override semantics.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		convertCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
