package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stacks/internal/preflight"
	"stacks/internal/runlock"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that the target directory can be organized",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			target, err := ctx.targetDir()
			if err != nil {
				return err
			}
			provider, err := ctx.desktopProvider()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			lines := renderSectionHeader("stacks", colorize)

			configDetail := ctx.configPath
			if configDetail == "" {
				configDetail = "defaults"
			}
			lines = append(lines, renderStatusLine("Config", statusInfo, configDetail, colorize))

			results := preflight.RunAll(cfg, target)
			for _, r := range results {
				kind := statusOK
				if !r.Passed {
					kind = statusError
				}
				lines = append(lines, renderStatusLine(r.Name, kind, r.Detail, colorize))
			}

			if lockPath, err := runlock.Path(cfg.Paths.StateDir, target); err == nil {
				lines = append(lines, renderStatusLine("Run lock", statusInfo, lockPath, colorize))
			}

			folders := provider.SpecialFolders()
			lines = append(lines, renderStatusLine("Media folders", statusInfo,
				fmt.Sprintf("%s, %s, %s", folders.Music, folders.Pictures, folders.Videos), colorize))
			lines = append(lines, renderStatusLine("Content sniffing", statusInfo, yesNo(cfg.Classify.ContentSniffing), colorize))

			apps := len(provider.InstalledApps())
			appKind := statusOK
			if apps == 0 {
				appKind = statusWarn
			}
			lines = append(lines, renderStatusLine("Applications", appKind, fmt.Sprintf("%d installed", apps), colorize))

			fmt.Fprintln(out, strings.Join(lines, "\n"))
			return preflight.FirstFailure(results)
		},
	}
}
