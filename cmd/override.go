package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ovehbe/710Launcher-sub000/logging"
	"github.com/ovehbe/710Launcher-sub000/pkg/apps"
	"github.com/ovehbe/710Launcher-sub000/pkg/iconpack"
	"github.com/ovehbe/710Launcher-sub000/pkg/theming"
)

func NewOverrideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "override",
		Short: "Pin, inspect or clear custom icons",
	}
	cmd.AddCommand(newOverrideSetCmd())
	cmd.AddCommand(newOverrideClearCmd())
	cmd.AddCommand(newOverrideShowCmd())
	return cmd
}

func toScopes(raw []string) []apps.Scope {
	scopes := make([]apps.Scope, 0, len(raw))
	for _, s := range raw {
		scopes = append(scopes, apps.Scope(s))
	}
	return scopes
}

func newOverrideSetCmd() *cobra.Command {
	var scopes []string
	cmd := &cobra.Command{
		Use:   "set <package/activity> <drawable>",
		Short: "Pin a drawable as an app's icon",
		Long: `Pin a drawable as an app's icon in one or more scopes. The drawable is
looked up in every loaded pack at resolution time, so it need not come from
the pack the scope is bound to.`,
		Example: `  launcherctl override set com.example/com.example.Main ic_mail --scope dock --scope all`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := apps.ParseIdentity(args[0])
			if err != nil {
				return err
			}
			return withEnv(cmd, func(env *launcherEnv) error {
				if err := theming.NewEditor(env.store).SetOverride(id, args[1], toScopes(scopes)...); err != nil {
					return err
				}
				env.logger.WithField("app", id.Flatten()).WithField("drawable", args[1]).Info("Custom icon pinned")
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s in %v\n", id.Flatten(), args[1], scopes)
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVarP(&scopes, "scope", "s", []string{string(apps.ScopeGlobal)}, "Scopes to pin in (repeatable)")
	return cmd
}

func newOverrideClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <package/activity>",
		Short: "Remove an app's custom icon from every scope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := apps.ParseIdentity(args[0])
			if err != nil {
				return err
			}
			return withEnv(cmd, func(env *launcherEnv) error {
				if err := theming.NewEditor(env.store).ClearOverride(id); err != nil {
					return err
				}
				logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout()).
					Success(fmt.Sprintf("Custom icon of %s cleared", id.Flatten()))
				return nil
			})
		},
	}
}

// OverrideOutput lists an app's pinned drawables by scope.
type OverrideOutput struct {
	App       string            `json:"app"`
	Overrides map[string]string `json:"overrides"`
}

func newOverrideShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <package/activity>",
		Short: "List an app's custom icons",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := apps.ParseIdentity(args[0])
			if err != nil {
				return err
			}
			return withEnv(cmd, func(env *launcherEnv) error {
				ed := theming.NewEditor(env.store)
				result := OverrideOutput{App: id.Flatten(), Overrides: map[string]string{}}
				scopes := ed.OverrideScopes(id)
				for _, scope := range scopes {
					if name, ok := ed.Override(id, scope); ok {
						result.Overrides[string(scope)] = name
					}
				}

				if ok, err := printJSON(cmd, result); ok {
					return err
				}
				if len(result.Overrides) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "%s has no custom icon\n", result.App)
					return nil
				}
				for _, scope := range scopes {
					if name, ok := result.Overrides[string(scope)]; ok {
						fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", scope, name)
					}
				}
				return nil
			})
		},
	}
}

func NewLabelCmd() *cobra.Command {
	var scopes []string
	cmd := &cobra.Command{
		Use:   "label <package/activity> [label]",
		Short: "Set or clear an app's custom label",
		Long: `Set an app's custom label in one or more scopes. Without a label the
custom label is removed and the app's own name shows again.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := apps.ParseIdentity(args[0])
			if err != nil {
				return err
			}
			label := ""
			if len(args) == 2 {
				label = args[1]
			}
			return withEnv(cmd, func(env *launcherEnv) error {
				return theming.NewEditor(env.store).SetLabel(id, label, toScopes(scopes)...)
			})
		},
	}
	cmd.Flags().StringSliceVarP(&scopes, "scope", "s", []string{string(apps.ScopeGlobal)}, "Scopes to label in (repeatable)")
	return cmd
}

func NewBindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bind <scope> [package]",
		Short: "Bind an icon pack to a scope",
		Long: `Bind an installed icon pack to a scope: __global__, all, dock, search or
any page id. Without a package the binding is removed.`,
		Example: `  launcherctl bind __global__ com.example.pack
  launcherctl bind custom_work com.example.other
  launcherctl bind dock`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope := apps.Scope(args[0])
			pkg := ""
			if len(args) == 2 {
				pkg = args[1]
			}
			return withEnv(cmd, func(env *launcherEnv) error {
				if pkg != "" {
					p := iconpack.NewPack(env.host)
					if !p.Load(pkg) {
						return p.LoadErr()
					}
					p.Clear()
				}
				if err := theming.NewEditor(env.store).BindPack(scope, pkg); err != nil {
					return err
				}
				pretty := logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout())
				if pkg == "" {
					pretty.Info(fmt.Sprintf("%s unbound", scope))
					return nil
				}
				pretty.Success(fmt.Sprintf("%s -> %s", scope, pkg))
				pretty.Field("key", theming.PackKey(scope))
				return nil
			})
		},
	}
	return cmd
}
