package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/inkwell-dev/inkwell/pkg/bridge"
)

func convertCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Normalize HTML through the import/export pipeline",
		Long: `Read HTML from a file (or stdin), import it into the node model,
and print the exported normalized form.

With --check the output is imported a second time and compared; a
difference between the two exports exits non-zero. The pipeline is
expected to be idempotent on its own output.

Examples:
  inkwell convert page.html
  cat page.html | inkwell convert
  inkwell convert --check page.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, check)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Verify the output re-imports to itself")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string, check bool) error {
	var src []byte
	var err error
	if len(args) == 1 {
		src, err = os.ReadFile(args[0])
	} else {
		src, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return err
	}

	b := bridge.New(nil)
	nodes, err := b.Import(string(src))
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	out, err := b.Export(nodes)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if check {
		again, err := b.Import(out)
		if err != nil {
			return fmt.Errorf("re-import: %w", err)
		}
		out2, err := b.Export(again)
		if err != nil {
			return fmt.Errorf("re-export: %w", err)
		}
		if out != out2 {
			return fmt.Errorf("pipeline not idempotent on this input")
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
