package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/quicktiles/pkg/settings"
)

// settingsCommand creates the settings management command.
func (c *CLI) settingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Read and write the grid settings",
		Long: `Read and write the grid settings.

Settings live in a TOML file (~/.config/quicktiles/settings.toml by default,
see --settings) or in a Redis hash (--settings-redis). Running layouts and
previews pick up changes as they are written.`,
	}

	cmd.AddCommand(c.settingsListCommand())
	cmd.AddCommand(c.settingsGetCommand())
	cmd.AddCommand(c.settingsSetCommand())
	cmd.AddCommand(c.settingsUnsetCommand())
	cmd.AddCommand(c.settingsWatchCommand())
	cmd.AddCommand(c.settingsPathCommand())

	return cmd
}

// withStore opens the settings store for the duration of fn.
func (c *CLI) withStore(ctx context.Context, fn func(settings.Store, settings.Theme) error) error {
	store, theme, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store, theme)
}

func (c *CLI) settingsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the grid settings and their effective values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(store settings.Store, theme settings.Theme) error {
				values, err := store.List(ctx)
				if err != nil {
					return err
				}
				snap, err := settings.Read(ctx, store, theme)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, settingsTable(settings.KnownKeys(theme), values))
				printNewline()
				printSnapshot(snap)

				extra := unknownKeys(values)
				if len(extra) > 0 {
					printNewline()
					printInfo("Other stored keys (ignored by the grid):")
					for _, k := range extra {
						printDetail("%s = %s", k, values[k])
					}
				}
				return nil
			})
		},
	}
}

// settingsTable renders the known keys with their stored values.
func settingsTable(keys []settings.KeyInfo, values map[string]string) string {
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		v, ok := values[k.Key]
		if !ok {
			v = "-"
		}
		rows = append(rows, []string{k.Key, v, k.Default, k.Description})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Key", "Value", "Default", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle.Foreground(colorCyan)
			case col == 1:
				return cellStyle.Foreground(colorWhite)
			default:
				return cellStyle.Foreground(colorDim)
			}
		}).
		Render()
}

// unknownKeys returns the sorted stored keys the grid does not read.
func unknownKeys(values map[string]string) []string {
	var keys []string
	for k := range values {
		if !settings.IsKnownKey(k) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

func (c *CLI) settingsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "get KEY",
		Short:             "Print a stored setting",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSettingKey,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(store settings.Store, theme settings.Theme) error {
				v, ok, err := store.Get(ctx, args[0])
				if err != nil {
					return err
				}
				if !ok {
					for _, k := range settings.KnownKeys(theme) {
						if k.Key == args[0] {
							fmt.Fprintln(cmd.OutOrStdout(), k.Default)
							return nil
						}
					}
					return fmt.Errorf("setting %q is not set", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), v)
				return nil
			})
		},
	}
}

func (c *CLI) settingsSetCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Write a setting",
		Example: `  quicktiles settings set quick_tiles_per_row 4
  quicktiles settings set quick_tiles_per_row_duplicate_landscape 0`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeSettingValue,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if err := settings.ValidateValue(key, value); err != nil {
				return err
			}
			if !settings.IsKnownKey(key) && !force {
				return fmt.Errorf("%q is not a grid setting (use --force to store it anyway)", key)
			}
			ctx := cmd.Context()
			return c.withStore(ctx, func(store settings.Store, _ settings.Theme) error {
				if err := store.Put(ctx, key, value); err != nil {
					return err
				}
				printSuccess("Set %s = %s", key, value)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "store keys the grid does not read")
	return cmd
}

func (c *CLI) settingsUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "unset KEY",
		Short:             "Remove a setting so the default applies",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSettingKey,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(store settings.Store, _ settings.Theme) error {
				if err := store.Delete(ctx, args[0]); err != nil {
					return err
				}
				printSuccess("Unset %s", args[0])
				return nil
			})
		},
	}
}

func (c *CLI) settingsWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print settings changes as they happen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(store settings.Store, theme settings.Theme) error {
				changes, err := store.Watch(ctx)
				if err != nil {
					return err
				}
				printInfo("Watching for settings changes (ctrl+c to stop)")
				for change := range changes {
					switch {
					case change.Key == "":
						snap, err := settings.Read(ctx, store, theme)
						if err != nil {
							loggerFromContext(ctx).Warn("re-read failed", "error", err)
							continue
						}
						printDetail("reloaded: %d columns, duplicate=%t", snap.Columns, snap.DuplicateColumnsInLandscape)
					case change.Deleted:
						printDetail("%s unset", change.Key)
					default:
						printDetail("%s = %s", change.Key, change.Value)
					}
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				return nil
			})
		},
	}
}

func (c *CLI) settingsPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.settingsPath
			if path == "" {
				p, err := settings.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
