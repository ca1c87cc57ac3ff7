package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/stlslice/internal/config"
	"github.com/Faultbox/stlslice/internal/export"
	"github.com/Faultbox/stlslice/internal/logger"
	"github.com/Faultbox/stlslice/internal/metrics"
	"github.com/Faultbox/stlslice/pkg/slicer"
)

func newSliceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slice <file.stl>",
		Short: "Slice a mesh and dump the layer stack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSlice(cmd, args[0])
		},
	}
	config.BindSliceFlags(cmd.Flags())
	config.BindOutputFlags(cmd.Flags())
	return cmd
}

// sliceFile loads path and slices it with the configured parameters.
func (a *app) sliceFile(ctx context.Context, path string, opts ...slicer.Option) (*slicer.Session, *slicer.Stack, *slicer.Report, error) {
	p, err := a.cfg.Slice.Params()
	if err != nil {
		return nil, nil, nil, err
	}
	s := slicer.NewSession(logger.Log)
	if err := s.Load(path); err != nil {
		return nil, nil, nil, err
	}
	opts = append(opts, slicer.WithWorkers(a.cfg.Slice.Workers))
	stack, rep, err := s.Slice(ctx, p, opts...)
	if err != nil {
		return nil, nil, nil, err
	}
	return s, stack, rep, nil
}

func (a *app) runSlice(cmd *cobra.Command, path string) error {
	format, err := export.ParseFormat(a.cfg.Output.Format)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var opts []slicer.Option
	var collector *metrics.Collector
	if a.cfg.Metrics.Textfile != "" {
		collector = metrics.New()
		opts = append(opts, slicer.WithObserver(collector))
	}

	s, stack, rep, err := a.sliceFile(ctx, path, opts...)
	if err != nil {
		logger.Error("slicing failed", zap.String("file", path), zap.Error(err))
		return err
	}

	for _, err := range multierr.Errors(rep.Err()) {
		logger.Warn("layer fault", zap.Error(err))
	}

	doc := export.NewDocument(stack, rep)
	if out := a.cfg.Output.Path; out != "" {
		if err := export.WriteFile(out, doc, format); err != nil {
			return err
		}
		if fi, err := os.Stat(out); err == nil {
			logger.Info("result written", zap.String("path", out), zap.String("size", humanize.Bytes(uint64(fi.Size()))))
		}
	} else if err := export.Write(cmd.OutOrStdout(), doc, format); err != nil {
		return err
	}

	if collector != nil {
		collector.RunDone(rep)
		if err := collector.WriteTextfile(a.cfg.Metrics.Textfile); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}

	printSummary(cmd.ErrOrStderr(), s.Mesh().Len(), rep)
	return nil
}

func printSummary(w io.Writer, triangles int, rep *slicer.Report) {
	fmt.Fprintf(w, "Sliced %s triangles into %s layers in %s\n",
		humanize.Comma(int64(triangles)),
		humanize.Comma(int64(rep.Count(slicer.Accepted))),
		rep.Duration.Round(time.Microsecond))
	if n := rep.Count(slicer.Empty); n > 0 {
		fmt.Fprintf(w, "  empty levels:     %d\n", n)
	}
	if n := rep.Count(slicer.Abandoned); n > 0 {
		fmt.Fprintf(w, "  abandoned levels: %d\n", n)
		for _, f := range rep.Faults() {
			fmt.Fprintf(w, "    #%d z=%s: %v\n", f.Index, humanize.Ftoa(f.Z), f.Err)
		}
	}
}
