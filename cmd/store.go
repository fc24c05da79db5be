package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ovehbe/710Launcher-sub000/errors"
	"github.com/ovehbe/710Launcher-sub000/logging"
	"github.com/ovehbe/710Launcher-sub000/state"
)

// EntryOutput is one configuration entry as printed by `config get`.
type EntryOutput struct {
	Key   string      `json:"k"`
	Type  state.Tag   `json:"t"`
	Value interface{} `json:"v"`
	Set   bool        `json:"set"`
}

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read, write, export and import launcher settings",
	}
	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigUnsetCmd())
	cmd.AddCommand(newConfigExportCmd())
	cmd.AddCommand(newConfigImportCmd())
	cmd.AddCommand(newConfigSchemaCmd())
	return cmd
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [key...]",
		Short: "Print settings; with no key, every fixed and stored key",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(env *launcherEnv) error {
				keys := args
				if len(keys) == 0 {
					for _, e := range env.store.ExportSnapshot().Entries {
						keys = append(keys, e.K)
					}
				}

				var rows []EntryOutput
				for _, key := range keys {
					e, ok := env.store.Lookup(key)
					if !ok {
						return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("unknown key %q", key)).
							WithDetail("key", key)
					}
					rows = append(rows, EntryOutput{Key: key, Type: e.Type, Value: e.Value(), Set: env.store.Has(key)})
				}

				if ok, err := printJSON(cmd, rows); ok {
					return err
				}
				for _, r := range rows {
					e, _ := env.store.Lookup(r.Key)
					marker := " "
					if !r.Set {
						marker = "*"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s) = %s\n", marker, r.Key, r.Type, state.FormatValue(e))
				}
				return nil
			})
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	var typ string
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Write a setting",
		Long: `Write a setting. Fixed keys and keys already in the store keep their type;
new keys default to string unless --type is given. String sets are
comma-separated.`,
		Example: `  launcherctl config set iconShape squircle
  launcherctl config set pages frequent,favorites,all,custom_work
  launcherctl config set iconPack_custom_work com.example.pack --type s`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(env *launcherEnv) error {
				key, raw := args[0], args[1]
				tag, known := env.store.TypeOf(key)
				if !known {
					tag = state.TagString
				}
				if typ != "" {
					t, err := state.ParseTag(typ)
					if err != nil {
						return err
					}
					if known && t != tag {
						return errors.New(errors.ErrCodeInvalidInput,
							fmt.Sprintf("key %q holds type %q", key, tag)).WithDetail("key", key)
					}
					tag = t
				}

				e, err := state.ParseEntry(key, tag, raw)
				if err != nil {
					return err
				}
				if err := env.store.Put(e); err != nil {
					return err
				}
				logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout()).
					Success(fmt.Sprintf("%s = %s", key, state.FormatValue(e)))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&typ, "type", "t", "", "Entry type: s, i, l, f, b or set")
	return cmd
}

func newConfigUnsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <key...>",
		Short: "Remove settings; fixed keys return to their defaults",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(env *launcherEnv) error {
				return env.store.Remove(args...)
			})
		},
	}
}

func newConfigExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a versioned snapshot of every setting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, func(env *launcherEnv) error {
				data, err := env.store.MarshalSnapshot()
				if err != nil {
					return err
				}
				if out == "" || out == "-" {
					_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
					return err
				}
				if err := os.WriteFile(out, append(data, '\n'), 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", out, err)
				}
				logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout()).Path("Exported", out)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Destination file (default stdout)")
	return cmd
}

func newConfigImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace every setting with a snapshot",
		Long: `Replace every setting with the contents of an exported snapshot. The
document is validated first; if anything is wrong nothing changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read snapshot: %w", err)
			}

			return withEnv(cmd, func(env *launcherEnv) error {
				if err := env.store.ImportJSON(data); err != nil {
					return err
				}
				logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout()).
					Success(fmt.Sprintf("Imported %d settings", len(env.store.Keys())))
				return nil
			})
		},
	}
}

func newConfigSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the export document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := state.SnapshotSchema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}
