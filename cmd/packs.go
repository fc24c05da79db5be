package cmd

import (
	"fmt"
	"image/png"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/moby/patternmatcher"
	"github.com/spf13/cobra"

	"github.com/ovehbe/710Launcher-sub000/errors"
	"github.com/ovehbe/710Launcher-sub000/pkg/iconpack"
	"github.com/ovehbe/710Launcher-sub000/tui/theme"
)

// PackInfo is one row of `launcherctl packs`.
type PackInfo struct {
	iconpack.Descriptor
	Components int      `json:"components"`
	BoundTo    []string `json:"bound_to,omitempty"`
	Error      string   `json:"error,omitempty"`
}

func NewPacksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "packs",
		Short: "List installed icon packs",
		Long: `List icon packs answering any of the recognised marker actions, in
discovery order, with the number of components each maps and the scopes it
is bound to.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(env *launcherEnv) error {
				bound := make(map[string][]string)
				for _, b := range boundPacks(env) {
					bound[b.PackageID] = append(bound[b.PackageID], b.Slot.String())
				}

				var rows []PackInfo
				for _, d := range iconpack.NewCatalog(env.host).ListAvailablePacks() {
					row := PackInfo{Descriptor: d, BoundTo: bound[d.PackageID]}
					p := iconpack.NewPack(env.host)
					if p.Load(d.PackageID) {
						row.Components = p.Len()
					} else if err := p.LoadErr(); err != nil {
						row.Error = err.Error()
					}
					p.Clear()
					rows = append(rows, row)
				}

				if ok, err := printJSON(cmd, rows); ok {
					return err
				}
				return renderPacks(cmd, rows)
			})
		},
	}
	return cmd
}

func renderPacks(cmd *cobra.Command, rows []PackInfo) error {
	t := theme.DefaultTheme
	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(out, t.Muted.Render("No icon packs available"))
		return nil
	}

	width := 0
	for _, r := range rows {
		if len(r.PackageID) > width {
			width = len(r.PackageID)
		}
	}
	name := lipgloss.NewStyle().Bold(true).Width(width)
	for _, r := range rows {
		status := fmt.Sprintf("%d components", r.Components)
		if r.Error != "" {
			status = t.Error.Render("unreadable")
		}
		line := fmt.Sprintf("%s  %s  %s", name.Render(r.PackageID), r.Label, t.Muted.Render(status))
		if len(r.BoundTo) > 0 {
			line += "  " + t.Accent.Render("["+strings.Join(r.BoundTo, ", ")+"]")
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

func NewIconsCmd() *cobra.Command {
	var drawable, out string
	var match []string
	cmd := &cobra.Command{
		Use:   "icons <package>",
		Short: "List the drawable names of an icon pack",
		Example: `  # Every icon a pack offers
  launcherctl icons com.example.pack

  # Only calendar icons, without the dark variants
  launcherctl icons com.example.pack --match 'calendar*' --match '!*_dark'

  # Export one drawable
  launcherctl icons com.example.pack --drawable maps --out maps.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(env *launcherEnv) error {
				p := iconpack.NewPack(env.host)
				if !p.Load(args[0]) {
					return p.LoadErr()
				}
				defer p.Clear()

				if drawable != "" {
					img, err := p.Drawable(drawable)
					if err != nil {
						return err
					}
					if out == "" {
						fmt.Fprintf(cmd.OutOrStdout(), "%s: %dx%d\n", drawable, img.Bounds().Dx(), img.Bounds().Dy())
						return nil
					}
					f, err := os.Create(out)
					if err != nil {
						return fmt.Errorf("failed to create %s: %w", out, err)
					}
					defer f.Close()
					return png.Encode(f, img)
				}

				names, err := filterNames(p.ListAllIconNames(), match)
				if err != nil {
					return err
				}
				if ok, err := printJSON(cmd, names); ok {
					return err
				}
				for _, n := range names {
					fmt.Fprintln(cmd.OutOrStdout(), n)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&drawable, "drawable", "", "Load a single drawable by name")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the drawable as PNG")
	cmd.Flags().StringSliceVarP(&match, "match", "m", nil, "Glob filter on names; a leading ! excludes (repeatable, last match wins)")
	return cmd
}

// filterNames keeps the names matched by patterns, in .dockerignore style.
func filterNames(names, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return names, nil
	}
	pm, err := patternmatcher.New(patterns)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid --match pattern")
	}
	var out []string
	for _, n := range names {
		ok, err := pm.MatchesOrParentMatches(n)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid --match pattern")
		}
		if ok {
			out = append(out, n)
		}
	}
	return out, nil
}
