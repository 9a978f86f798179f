package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"stacks/internal/logging"
	"stacks/internal/preflight"
	"stacks/internal/runlock"
	"stacks/internal/stacker"
)

type operation func(*stacker.Stacker, context.Context) (*stacker.Report, error)

func newStackCommand(ctx *commandContext, verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "stack",
		Short: "Move files into category folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.runStack(cmd, *verbose)
		},
	}
}

func newUnstackCommand(ctx *commandContext, verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "unstack",
		Short: "Move files out of category folders and remove the folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.runUnstack(cmd, *verbose)
		},
	}
}

func (c *commandContext) runStack(cmd *cobra.Command, verbose bool) error {
	return c.runOperation(cmd, "stack", (*stacker.Stacker).Stack, verbose)
}

func (c *commandContext) runUnstack(cmd *cobra.Command, verbose bool) error {
	return c.runOperation(cmd, "unstack", (*stacker.Stacker).Unstack, verbose)
}

func (c *commandContext) runOperation(cmd *cobra.Command, name string, op operation, verbose bool) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	s, err := c.newStacker(cmd)
	if err != nil {
		return err
	}
	logger, err := c.logger(cmd)
	if err != nil {
		return err
	}
	runCtx := runContext(cmd)
	logger = logging.WithContext(runCtx, logging.NewComponentLogger(logger, "cli"))

	if err := preflight.FirstFailure(preflight.RunAll(cfg, s.Root())); err != nil {
		return err
	}

	lock, err := runlock.Acquire(cfg.Paths.StateDir, s.Root())
	if err != nil {
		if errors.Is(err, runlock.ErrLocked) {
			logging.WarnWithContext(logger, "run lock held", "run_locked", "wait for the other stacks run to finish", logging.Error(err))
		}
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("release run lock failed", logging.Error(err))
		}
	}()

	start := time.Now()
	logger.Info("run started",
		logging.String("operation", name),
		logging.String("root", s.Root()),
		logging.String("lock", lock.Path()),
	)
	report, runErr := op(s, runCtx)
	out := cmd.OutOrStdout()
	renderReport(out, report, verbose, shouldColorize(out))
	logger.Info("run finished",
		logging.String("operation", name),
		logging.Int("moved", report.Moved()),
		logging.Int("failed", report.Failed()),
		logging.Duration("elapsed", time.Since(start)),
		logging.Bool("ok", runErr == nil),
	)
	return runErr
}
