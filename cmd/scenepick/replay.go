package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/scenepick/internal/input/key"
	"github.com/dshills/scenepick/internal/replay"
)

var errReplayFailed = errors.New("replay expectations failed")

func newReplayCmd(a *app) *cobra.Command {
	var (
		scenePath string
		action    string
	)

	cmd := &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Play scripted viewport input against a scene and check the selections",
		Long: `Runs each step of a replay script through a viewport and prints the
selection after every step. Steps with an expect list are checked; the
command fails when any expectation does not match.

The action modifier defaults to ctrl so scripts behave the same on every
platform.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := replay.Load(args[0])
			if err != nil {
				return err
			}
			path := scenePath
			if path == "" {
				path = sc.ScenePath()
			}
			if path == "" {
				return errors.New("no scene: set scene in the script or pass --scene")
			}
			world, err := a.loadScene(path)
			if err != nil {
				return err
			}

			opts := []replay.Option{
				replay.WithDragThreshold(a.cfg.Picking.DragThreshold),
				replay.WithLogger(a.log),
				replay.WithMetrics(a.metrics),
			}
			if action != "" {
				opts = append(opts, replay.WithActionModifier(key.ResolveAction(action)))
			}

			report, err := replay.NewRunner(opts...).Run(cmd.Context(), world, sc)
			printReport(cmd, report)
			if err != nil {
				return err
			}
			if !report.Passed() {
				return fmt.Errorf("%w: %d of %d steps", errReplayFailed, report.Failures, len(report.Steps))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scenePath, "scene", "", "scene file, overriding the one named in the script")
	cmd.Flags().StringVar(&action, "action", "", "action modifier (ctrl, meta, alt, auto)")
	return cmd
}

func printReport(cmd *cobra.Command, report replay.Report) {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STEP\tKIND\tSELECTION\tRESULT")
	for _, s := range report.Steps {
		result := "ok"
		switch {
		case s.Want == nil:
			result = "-"
		case !s.OK:
			result = "FAIL want [" + strings.Join(s.Want, " ") + "]"
		}
		fmt.Fprintf(tw, "%d\t%s\t[%s]\t%s\n", s.Index, s.Kind, strings.Join(s.Selection, " "), result)
	}
	_ = tw.Flush()
}
