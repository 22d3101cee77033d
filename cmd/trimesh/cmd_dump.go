package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/trimesh/mesh"
	"github.com/dhamidi/trimesh/stl"
)

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Read an STL file and dump the mesh as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			f, err := os.Open(filename)
			if err != nil {
				return fmt.Errorf("open stl file: %w", err)
			}
			defer f.Close()

			m := mesh.New()
			if err := stl.NewReader(m).Read(cmd.Context(), f); err != nil {
				return fmt.Errorf("read %s: %w", filename, err)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(m); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}
	return cmd
}
