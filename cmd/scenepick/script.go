package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/scenepick/internal/script"
	"github.com/dshills/scenepick/internal/selection"
)

func newScriptCmd(a *app) *cobra.Command {
	var (
		code    string
		timeout = script.DefaultTimeout
	)

	cmd := &cobra.Command{
		Use:   "script <scene.yaml> [file.lua]",
		Short: "Run a Lua script against a scene",
		Long: `Runs a sandboxed Lua script with the scene and selection tables and
prints the resulting selection. Pass the script as a file or inline with -e.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 2) == (code != "") {
				return errors.New("give exactly one of a script file or -e")
			}
			sc, err := a.loadScene(args[0])
			if err != nil {
				return err
			}
			store := selection.NewStore(
				selection.WithStoreLogger(a.log),
				selection.WithStoreMetrics(a.metrics),
			)

			rt := script.New(sc, store,
				script.WithOutput(cmd.OutOrStdout()),
				script.WithTimeout(timeout),
				script.WithLogger(a.log),
			)
			defer rt.Close()

			if code != "" {
				err = rt.DoString(cmd.Context(), code)
			} else {
				err = rt.DoFile(cmd.Context(), args[1])
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "selection %s\n", store.Current())
			return nil
		},
	}

	cmd.Flags().StringVarP(&code, "exec", "e", "", "inline Lua code")
	cmd.Flags().DurationVar(&timeout, "timeout", timeout, "maximum run time (0 disables)")
	return cmd
}
