package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write the effective configuration as YAML",
		Long: `Write the configuration in effect (defaults, config file and flags) to
path, or to the user config directory when path is omitted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			var err error
			if len(args) == 1 {
				path = args[0]
				err = a.cfg.SaveTo(path)
			} else {
				path, err = a.cfg.Save()
			}
			if err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
}
