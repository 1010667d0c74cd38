package cli

import (
	"github.com/spf13/cobra"
)

func newDailyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Daily challenge commands",
	}

	cmd.AddCommand(newDailyStatusCmd())
	cmd.AddCommand(newDailyStartCmd())

	return cmd
}

func newDailyStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show today's challenge and standings",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result DailyStatus

			if err := client.Get("/api/v1/daily", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newDailyStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start today's daily challenge game",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState

			if err := client.Post("/api/v1/daily/games", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
