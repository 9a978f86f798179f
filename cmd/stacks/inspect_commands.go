package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"stacks/internal/classify"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show what stack would do without moving anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.newStacker(cmd)
			if err != nil {
				return err
			}
			plan, err := s.Plan(runContext(cmd))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(plan.Moves) == 0 {
				fmt.Fprintf(out, "Nothing to stack in %s\n", s.Root())
				return nil
			}
			rows := make([][]string, 0, len(plan.Moves))
			for i, m := range plan.Moves {
				target := m.Target
				if m.Renamed {
					target += " (renamed)"
				}
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					m.Name,
					dashIfEmpty(m.Classification.MIMEType),
					string(m.Classification.Rule),
					target,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "File", "MIME", "Rule", "Destination"},
				rows,
				[]columnAlignment{alignRight},
			))
			if len(plan.NewFolders) > 0 {
				fmt.Fprintf(out, "New folders: %s\n", strings.Join(plan.NewFolders, ", "))
			}
			if len(plan.Blocked) > 0 {
				fmt.Fprintf(out, "Blocked by a file of the same name: %s\n", strings.Join(plan.Blocked, ", "))
			}
			if len(plan.Skipped) > 0 {
				fmt.Fprintf(out, "Left in place: %s\n", strings.Join(plan.Skipped, ", "))
			}
			return nil
		},
	}
}

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "classify FILE...",
		Short: "Explain which category each file belongs to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			classifier, err := ctx.classifier()
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(args))
			for _, arg := range args {
				c := classifier.Describe(arg)
				rows = append(rows, []string{
					filepath.Base(arg),
					dashIfEmpty(c.MIMEType),
					string(c.Source),
					string(c.Rule),
					c.Category,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"File", "MIME", "Source", "Rule", "Category"},
				rows,
				nil,
			))
			return nil
		},
	}
}

func newFoldersCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "folders",
		Short: "List the category folders unstack would empty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.newStacker(cmd)
			if err != nil {
				return err
			}
			manager := s.Folders()
			fixed := map[string]struct{}{}
			classifier, err := ctx.classifier()
			if err != nil {
				return err
			}
			for _, name := range classifier.FixedCategories() {
				fixed[name] = struct{}{}
			}

			var rows [][]string
			for _, name := range manager.Candidates() {
				if !manager.Exists(name) {
					continue
				}
				kind := "application"
				if _, ok := fixed[name]; ok {
					kind = "builtin"
				}
				rows = append(rows, []string{name, kind})
			}
			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintf(out, "No category folders in %s\n", s.Root())
				return nil
			}
			fmt.Fprintln(out, renderTable([]string{"Folder", "Kind"}, rows, nil))
			return nil
		},
	}
}

func newAppsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "apps",
		Short: "List installed applications and their category folder names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := ctx.desktopProvider()
			if err != nil {
				return err
			}
			apps := provider.InstalledApps()
			sort.Strings(apps)
			rows := make([][]string, 0, len(apps))
			for _, app := range apps {
				folder, ok := classify.AppCategory(app)
				if !ok {
					folder = "(unusable)"
				}
				rows = append(rows, []string{app, folder})
			}
			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No installed applications found")
				return nil
			}
			fmt.Fprintln(out, renderTable([]string{"Application", "Folder"}, rows, nil))
			return nil
		},
	}
}

func dashIfEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
