package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ovehbe/710Launcher-sub000/errors"
	"github.com/ovehbe/710Launcher-sub000/logging"
	"github.com/ovehbe/710Launcher-sub000/pkg/apps"
	"github.com/ovehbe/710Launcher-sub000/pkg/iconpack"
	"github.com/ovehbe/710Launcher-sub000/pkg/theming"
	"github.com/ovehbe/710Launcher-sub000/state"
	"github.com/ovehbe/710Launcher-sub000/tui/picker"
)

func NewPickCmd() *cobra.Command {
	var pack string
	var scopes []string
	cmd := &cobra.Command{
		Use:   "pick <package/activity>",
		Short: "Choose a custom icon interactively",
		Long: `Open a filterable list of every drawable a pack's appfilter names and pin
the chosen one as the app's icon. Without --pack the globally bound pack is
used.`,
		Example: `  launcherctl pick com.example/com.example.Main --pack com.example.pack --scope dock`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := apps.ParseIdentity(args[0])
			if err != nil {
				return err
			}
			return withEnv(cmd, func(env *launcherEnv) error {
				pkg := pack
				if pkg == "" {
					pkg = env.store.GetString(state.KeyIconPack, "")
				}
				if pkg == "" {
					return errors.New(errors.ErrCodeInvalidInput, "no pack given and none bound globally")
				}

				p := iconpack.NewPack(env.host)
				if !p.Load(pkg) {
					return p.LoadErr()
				}
				defer p.Clear()

				names := p.ListAllIconNames()
				if len(names) == 0 {
					return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("pack '%s' names no drawables", pkg)).
						WithDetail("package", pkg)
				}

				chosen, err := picker.Run(picker.Config{
					Title: id.Flatten(),
					Pack:  pkg,
					Names: names,
				})
				if err != nil {
					return err
				}
				if chosen == "" {
					logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout()).Info("Nothing chosen")
					return nil
				}

				if err := theming.NewEditor(env.store).SetOverride(id, chosen, toScopes(scopes)...); err != nil {
					return err
				}
				logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout()).
					Success(fmt.Sprintf("%s -> %s in %s", id.Flatten(), chosen, strings.Join(scopes, ", ")))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&pack, "pack", "p", "", "Pack to choose from (default: the global pack)")
	cmd.Flags().StringSliceVarP(&scopes, "scope", "s", []string{string(apps.ScopeGlobal)}, "Scopes to pin in (repeatable)")
	return cmd
}
