package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ovehbe/710Launcher-sub000/cli"
	"github.com/ovehbe/710Launcher-sub000/pkg/profiling"
	"github.com/ovehbe/710Launcher-sub000/version"
)

// NewRootCmd assembles launcherctl.
func NewRootCmd() *cobra.Command {
	rootCmd := cli.NewStandardCommand(
		"launcherctl",
		"Inspect and edit launcher icon theming",
	)

	rootCmd.AddCommand(NewPacksCmd())
	rootCmd.AddCommand(NewIconsCmd())
	rootCmd.AddCommand(NewResolveCmd())
	rootCmd.AddCommand(NewPickCmd())
	rootCmd.AddCommand(NewOverrideCmd())
	rootCmd.AddCommand(NewLabelCmd())
	rootCmd.AddCommand(NewBindCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewPathsCmd())
	rootCmd.AddCommand(cli.NewVersionCommand("launcherctl"))

	profiling.NewCobraProfiler().Attach(rootCmd)
	cli.SetVersionTemplate(rootCmd, version.GetInfo())
	cli.ApplyStyledHelpRecursive(rootCmd)
	return rootCmd
}
