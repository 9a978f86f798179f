package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// errArgumentMissing is returned after the usage error has been printed.
var errArgumentMissing = errors.New("argument missing")

// newRootCommand builds the command tree. The returned func closes the log
// file opened by the command that ran.
func newRootCommand() (*cobra.Command, func() error) {
	var (
		configFlag   string
		dirFlag      string
		logLevelFlag string
		stackFlag    bool
		unstackFlag  bool
		verboseFlag  bool
	)

	ctx := newCommandContext(&configFlag, &dirFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:           "stacks",
		Short:         "Sort desktop files into category folders and back",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.HasParent() || shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case len(args) > 0 || (!stackFlag && !unstackFlag):
				return argumentMissing(cmd)
			case stackFlag:
				return ctx.runStack(cmd, verboseFlag)
			default:
				return ctx.runUnstack(cmd, verboseFlag)
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&dirFlag, "dir", "d", "", "Directory to organize instead of the desktop")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Report every move, not only problems")
	rootCmd.Flags().BoolVar(&stackFlag, "stack", false, "Move desktop files into category folders")
	rootCmd.Flags().BoolVar(&unstackFlag, "unstack", false, "Move files out of category folders and remove them")
	rootCmd.MarkFlagsMutuallyExclusive("stack", "unstack")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		if cmd != rootCmd {
			return err
		}
		return argumentMissing(cmd)
	})

	rootCmd.AddCommand(newStackCommand(ctx, &verboseFlag))
	rootCmd.AddCommand(newUnstackCommand(ctx, &verboseFlag))
	rootCmd.AddCommand(newPlanCommand(ctx))
	rootCmd.AddCommand(newClassifyCommand(ctx))
	rootCmd.AddCommand(newFoldersCommand(ctx))
	rootCmd.AddCommand(newAppsCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd, ctx.closeLogger
}

func argumentMissing(cmd *cobra.Command) error {
	fmt.Fprintln(cmd.OutOrStdout(), "Error: Argument missing.")
	return errArgumentMissing
}
