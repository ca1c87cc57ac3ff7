package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Faultbox/stlslice/internal/solid"
	"github.com/Faultbox/stlslice/pkg/mesh"
	"github.com/Faultbox/stlslice/pkg/stl"
)

func newGenCmd(_ *app) *cobra.Command {
	var (
		out   string
		cells int
	)
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate test solids as ASCII STL",
	}
	cmd.PersistentFlags().StringVarP(&out, "output", "o", "", "STL file to write (stdout when empty)")
	cmd.PersistentFlags().IntVar(&cells, "cells", solid.DefaultCells, "Marching cubes resolution")

	shape := func(use, short string, nargs int, build func(v []float64) (*mesh.Mesh, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.ExactArgs(nargs),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := parseFloats(args)
				if err != nil {
					return err
				}
				m, err := build(v)
				if err != nil {
					return err
				}
				if out == "" {
					return stl.Write(cmd.OutOrStdout(), m)
				}
				if err := stl.WriteFile(out, m); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s with %s triangles\n", out, humanize.Comma(int64(m.Len())))
				return nil
			},
		}
	}

	cmd.AddCommand(
		shape("box <x> <y> <z>", "Axis-aligned box", 3, func(v []float64) (*mesh.Mesh, error) {
			return solid.Box(v[0], v[1], v[2])
		}),
		shape("cylinder <height> <radius>", "Upright cylinder", 2, func(v []float64) (*mesh.Mesh, error) {
			return solid.Cylinder(v[0], v[1], cells)
		}),
		shape("sphere <radius>", "Sphere resting on z=0", 1, func(v []float64) (*mesh.Mesh, error) {
			return solid.Sphere(v[0], cells)
		}),
		shape("tube <height> <outer> <inner>", "Cylinder with a coaxial bore", 3, func(v []float64) (*mesh.Mesh, error) {
			return solid.Tube(v[0], v[1], v[2], cells)
		}),
	)
	return cmd
}

func parseFloats(args []string) ([]float64, error) {
	v := make([]float64, len(args))
	for i, s := range args {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		v[i] = f
	}
	return v, nil
}
