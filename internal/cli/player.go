package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player settings and achievements",
	}

	cmd.AddCommand(newPlayerLoginCmd())
	cmd.AddCommand(newPlayerSettingsCmd())
	cmd.AddCommand(newPlayerSetCmd())
	cmd.AddCommand(newPlayerPasswordCmd())
	cmd.AddCommand(newPlayerAchievementsCmd())

	return cmd
}

func newPlayerLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <player-id>",
		Short: "Save a player id for subsequent commands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.SavePlayerID(args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Playing as %s", args[0]))
			return nil
		},
	}
}

func newPlayerSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Show your settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Settings

			if err := client.Get("/api/v1/players/me/settings", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerSetCmd() *cobra.Command {
	var (
		statsPublic   string
		historyPublic string
		anonymous     string
	)

	parseBoolFlag := func(name, val string, patch map[string]bool) error {
		switch val {
		case "":
		case "true":
			patch[name] = true
		case "false":
			patch[name] = false
		default:
			return fmt.Errorf("--%s must be true or false", name)
		}
		return nil
	}

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := map[string]bool{}
			if err := parseBoolFlag("stats_public", statsPublic, patch); err != nil {
				return err
			}
			if err := parseBoolFlag("history_public", historyPublic, patch); err != nil {
				return err
			}
			if err := parseBoolFlag("anonymous_mode", anonymous, patch); err != nil {
				return err
			}
			if len(patch) == 0 {
				return fmt.Errorf("nothing to update")
			}

			var result Settings
			if err := client.Patch("/api/v1/players/me/settings", patch, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&statsPublic, "stats_public", "", "Make stats visible to others (true/false)")
	cmd.Flags().StringVar(&historyPublic, "history_public", "", "Make history visible to others (true/false)")
	cmd.Flags().StringVar(&anonymous, "anonymous_mode", "", "Record future games under your anonymous persona (true/false)")

	return cmd
}

func newPlayerPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "password <password>",
		Short: "Set the persona password guarding anonymous history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"password": args[0]}

			if err := client.Put("/api/v1/players/me/settings/persona-password", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Persona password updated")
			return nil
		},
	}
}

func newPlayerAchievementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "achievements",
		Short: "List your unlocked achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []UnlockedAchievement

			if err := client.Get("/api/v1/players/me/achievements", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
