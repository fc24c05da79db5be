package cmd

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/ovehbe/710Launcher-sub000/logging"
	"github.com/ovehbe/710Launcher-sub000/pkg/apps"
	"github.com/ovehbe/710Launcher-sub000/pkg/profiling"
	"github.com/ovehbe/710Launcher-sub000/pkg/theming"
)

// ResolveOutput describes the icon an app resolves to.
type ResolveOutput struct {
	App      string `json:"app"`
	Scope    string `json:"scope"`
	Source   string `json:"source"`
	Pack     string `json:"pack,omitempty"`
	Drawable string `json:"drawable,omitempty"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Label    string `json:"label,omitempty"`
	Out      string `json:"out,omitempty"`
}

func NewResolveCmd() *cobra.Command {
	var scope, out string
	cmd := &cobra.Command{
		Use:   "resolve <package/activity>",
		Short: "Show which icon an app gets in a scope",
		Long: `Load every configured icon pack and resolve one app's icon the way the
launcher would: a pinned custom icon first, then the scope's pack, then the
fallback shape, then the raw icon. The source tells which step won.`,
		Example: `  launcherctl resolve com.android.chrome/com.google.android.apps.chrome.Main --scope dock
  launcherctl resolve com.example/com.example.Main --out icon.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := apps.ParseIdentity(args[0])
			if err != nil {
				return err
			}
			return withEnv(cmd, func(env *launcherEnv) error {
				engine, results, err := env.engine(cmd.Context())
				if err != nil {
					return err
				}
				warn := logging.NewPrettyLogger().WithWriter(cmd.ErrOrStderr())
				for _, r := range results {
					if r.Err != nil {
						warn.Warn(fmt.Sprintf("%s pack %s not loaded", r.Binding.Slot, r.Binding.PackageID), r.Err)
					}
				}

				sc := apps.Scope(scope)
				timer := profiling.Start("resolve " + id.Flatten())
				ic := engine.ResolveIcon(id, sc)
				timer.Stop()
				result := ResolveOutput{
					App:      id.Flatten(),
					Scope:    scope,
					Source:   string(ic.Source),
					Pack:     ic.Pack,
					Drawable: ic.Drawable,
					Label:    engine.ResolveLabel(id, sc, ""),
				}
				if ic.Image != nil {
					result.Width = ic.Image.Bounds().Dx()
					result.Height = ic.Image.Bounds().Dy()
				}

				if out != "" && ic.Image != nil {
					f, err := os.Create(out)
					if err != nil {
						return fmt.Errorf("failed to create %s: %w", out, err)
					}
					if err := png.Encode(f, ic.Image); err != nil {
						f.Close()
						return fmt.Errorf("failed to encode %s: %w", out, err)
					}
					if err := f.Close(); err != nil {
						return err
					}
					result.Out = out
				}

				if ok, err := printJSON(cmd, result); ok {
					return err
				}
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "%s in %s: %s", result.App, result.Scope, result.Source)
				if result.Pack != "" {
					fmt.Fprintf(w, " from %s", result.Pack)
				}
				if result.Drawable != "" {
					fmt.Fprintf(w, " (%s)", result.Drawable)
				}
				fmt.Fprintf(w, ", %dx%d\n", result.Width, result.Height)
				if result.Label != "" {
					fmt.Fprintf(w, "label: %s\n", result.Label)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&scope, "scope", "s", string(apps.ScopeGlobal), "Scope: a page id, dock, search or __global__")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the resolved icon as PNG")
	return cmd
}

// boundPacks lists configured bindings without loading anything.
func boundPacks(env *launcherEnv) []theming.Binding {
	return theming.NewLoader(env.store, env.host).Bindings()
}
