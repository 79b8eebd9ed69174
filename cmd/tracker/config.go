package tracker

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/reidsolon/tracker/internal/calorie"
)

var settingsCmd = &cobra.Command{
	Use:     "settings",
	Aliases: []string{"config"},
	Short:   "Manage stored settings",
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			if err := repo.SetSetting(ctx, args[0], parseSettingValue(args[1])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])
			return nil
		})
	},
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			if _, ok := repo.Setting(args[0]); !ok {
				return fmt.Errorf("setting %q is not set", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), repo.SettingString(args[0]))
			return nil
		})
	},
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			settings := repo.Settings()
			keys := make([]string, 0, len(settings))
			for k := range settings {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			fmt.Fprintln(cmd.OutOrStdout(), "KEY\tVALUE")
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%v\n", k, settings[k])
			}
			return nil
		})
	},
}

var settingsUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCalories(cmd, func(ctx context.Context, repo *calorie.Repository) error {
			if err := repo.DeleteSetting(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsSetCmd, settingsGetCmd, settingsListCmd, settingsUnsetCmd)
}
