package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/scenepick/internal/geom"
	"github.com/dshills/scenepick/internal/pick"
	"github.com/dshills/scenepick/internal/scene"
)

func newOverlapCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "overlap <scene.yaml> <x> <y>",
		Short: "List the objects under a point, nearest first",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("x: %w", err)
			}
			y, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("y: %w", err)
			}
			sc, err := a.loadScene(args[0])
			if err != nil {
				return err
			}

			enum := pick.NewEnumerator(sc,
				pick.WithEnumeratorLogger(a.log),
				pick.WithEnumeratorMetrics(a.metrics),
			)
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tOBJECT\tDEPTH\tBASE")
			for i, c := range enum.Collect(geom.Pt(x, y)) {
				o := c.(*scene.Object)
				base := "-"
				if b, ok := sc.SelectionBase(o); ok {
					base = b.(*scene.Object).Name
				}
				fmt.Fprintf(tw, "%d\t%s\t%g\t%s\n", i+1, o.Path(), o.Depth, base)
			}
			return tw.Flush()
		},
	}
}
