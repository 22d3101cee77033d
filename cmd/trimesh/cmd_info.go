package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/trimesh/mesh"
	"github.com/dhamidi/trimesh/stl"
)

func newInfoCmd() *cobra.Command {
	var showProgress bool

	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Read an STL file and print mesh statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			f, err := os.Open(filename)
			if err != nil {
				return fmt.Errorf("open stl file: %w", err)
			}
			defer f.Close()

			format, _ := stl.DetectFormat(f)

			m := mesh.New()
			opts := []stl.Option{}
			if showProgress {
				opts = append(opts, stl.WithProgress(func(name string, fraction float64) {
					fmt.Fprintf(os.Stderr, "\r%s: %3.0f%%", name, fraction*100)
				}))
			}

			start := time.Now()
			err = stl.NewReader(m, opts...).Read(cmd.Context(), f)
			if showProgress {
				fmt.Fprintln(os.Stderr)
			}
			if err != nil {
				return fmt.Errorf("read %s: %w", filename, err)
			}

			fmt.Printf("file:      %s\n", filename)
			fmt.Printf("format:    %s\n", format)
			fmt.Printf("nodes:     %d\n", len(m.Nodes))
			fmt.Printf("triangles: %d\n", len(m.Triangles))
			if lo, hi, ok := m.Bounds(); ok {
				fmt.Printf("bounds:    [%g %g %g] .. [%g %g %g]\n",
					lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z)
			}
			fmt.Printf("elapsed:   %s\n", time.Since(start).Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().BoolVar(&showProgress, "progress", false, "report read progress on stderr")
	return cmd
}
