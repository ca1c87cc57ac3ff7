package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/stlslice/internal/config"
	"github.com/Faultbox/stlslice/internal/logger"
)

// app carries the state shared by subcommands after flag parsing.
type app struct {
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "slicer",
		Short:         "Layered slicer for ASCII STL meshes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
				return err
			}
			a.cfg = cfg
			logger.Debug("configuration loaded",
				zap.String("config", config.ConfigPath(cmd.Flags())),
				zap.Float64("height", cfg.Slice.Height),
				zap.Float64("pitch", cfg.Slice.Pitch),
				zap.String("direction", cfg.Slice.Direction))
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			logger.Sync()
		},
	}
	config.BindGlobalFlags(root.PersistentFlags())

	root.AddCommand(
		newSliceCmd(a),
		newInfoCmd(a),
		newLayersCmd(a),
		newGenCmd(a),
		newInitConfigCmd(a),
	)
	return root
}
