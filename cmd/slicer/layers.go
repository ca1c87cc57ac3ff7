package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/stlslice/internal/config"
	"github.com/Faultbox/stlslice/pkg/slicer"
)

func newLayersCmd(a *app) *cobra.Command {
	var (
		seek    int
		count   int
		reverse bool
		lines   bool
	)
	cmd := &cobra.Command{
		Use:   "layers <file.stl>",
		Short: "Slice a mesh and walk its layers",
		Long: `Slice a mesh and print layers starting at --seek. The walk moves up
the stack (or down with --reverse) and wraps at either end.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, stack, _, err := a.sliceFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if stack.Len() == 0 {
				fmt.Fprintln(w, "no layers")
				return nil
			}
			if !stack.Seek(seek) {
				return fmt.Errorf("layer %d out of range [0, %d)", seek, stack.Len())
			}
			if count <= 0 || count > stack.Len() {
				count = stack.Len()
			}

			move := stack.Next
			if reverse {
				move = stack.Prev
			}
			l := stack.Current()
			for i := 0; i < count; i++ {
				printLayer(cmd, stack.Index(), l, lines)
				l = move()
			}
			return nil
		},
	}
	config.BindSliceFlags(cmd.Flags())
	cmd.Flags().IntVar(&seek, "seek", 0, "Index of the first layer to print")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "Layers to print (all when 0)")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "Walk down the stack")
	cmd.Flags().BoolVar(&lines, "lines", false, "Print loop segments")
	return cmd
}

func printLayer(cmd *cobra.Command, i int, l *slicer.Layer, lines bool) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "layer %d z=%.6g loops=%d scanlines=%d spans=%d chunks=%d\n",
		i, l.Z, len(l.Loops), len(l.Scanlines), l.SpanCount(), len(l.Chunks))
	if !lines {
		return
	}
	for j, loop := range l.Loops {
		fmt.Fprintf(w, "  loop %d:\n", j)
		for _, s := range loop {
			fmt.Fprintf(w, "    %v -> %v\n", s.P1, s.P2)
		}
	}
}
