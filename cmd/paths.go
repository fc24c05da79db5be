package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ovehbe/710Launcher-sub000/cli"
	"github.com/ovehbe/710Launcher-sub000/pkg/paths"
)

// PathsOutput represents the directories the launcher reads and writes.
type PathsOutput struct {
	ConfigDir string `json:"config_dir"`
	DataDir   string `json:"data_dir"`
	StateDir  string `json:"state_dir"`
	PacksDir  string `json:"packs_dir"`
	IconsDir  string `json:"icons_dir"`
	Store     string `json:"store"`
	Backend   string `json:"backend"`
}

func NewPathsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Print the directories used by the launcher",
		Long: `Print the directories used by the launcher as JSON.

The base directories follow the XDG Base Directory Specification and can be
moved together with LAUNCHER_HOME. packs_dir, icons_dir and store reflect the
effective configuration, including launcher.yml and LAUNCHER_* overrides.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), PathsOutput{
				ConfigDir: paths.ConfigDir(),
				DataDir:   paths.DataDir(),
				StateDir:  paths.StateDir(),
				PacksDir:  cfg.PacksDir,
				IconsDir:  cfg.IconsDir,
				Store:     cfg.Store.Path,
				Backend:   cfg.Store.Backend,
			})
		},
	}

	return cmd
}
