package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Faultbox/stlslice/internal/config"
	"github.com/Faultbox/stlslice/pkg/mesh"
	"github.com/Faultbox/stlslice/pkg/stl"
)

func newInfoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file.stl>",
		Short: "Show mesh dimensions before and after scale and direction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.cfg.Slice.Params()
			if err != nil {
				return err
			}
			m, err := stl.ParseFile(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Mesh:      %s\n", m.Name)
			fmt.Fprintf(w, "Triangles: %s\n", humanize.Comma(int64(m.Len())))
			fmt.Fprintln(w, "\nOriginal:")
			printBounds(w, m.Bounds())

			work := m.Scale(p.Scale).Remap(p.Direction)
			b := work.Bounds()
			fmt.Fprintf(w, "\nSliced along %s at scale %s:\n", p.Direction, humanize.Ftoa(p.Scale))
			printBounds(w, b)
			if size := b.Size().Z; size > 0 {
				fmt.Fprintf(w, "  levels:   %d (height %s)\n", int(size/p.Height), humanize.Ftoa(p.Height))
			}
			return nil
		},
	}
	config.BindSliceFlags(cmd.Flags())
	return cmd
}

func printBounds(w io.Writer, b mesh.Bounds) {
	size := b.Size()
	fmt.Fprintf(w, "  min:      %v\n", b.Min)
	fmt.Fprintf(w, "  max:      %v\n", b.Max)
	fmt.Fprintf(w, "  size:     %.4g x %.4g x %.4g\n", size.X, size.Y, size.Z)
	fmt.Fprintf(w, "  center:   %v\n", b.Center())
	fmt.Fprintf(w, "  diameter: %.4g\n", b.Diameter())
}
