package cli

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "History and leaderboard commands",
	}

	cmd.AddCommand(newHistoryListCmd())
	cmd.AddCommand(newHistoryStatsCmd())
	cmd.AddCommand(newHistoryLeaderboardCmd())
	cmd.AddCommand(newHistoryRecentCmd())

	return cmd
}

func historyQuery(anonymous bool, from, to string) string {
	q := url.Values{}
	if anonymous {
		q.Set("anonymous", "true")
	}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func newHistoryListCmd() *cobra.Command {
	var (
		player    string
		anonymous bool
		password  string
		from      string
		to        string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List finished games",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/players/%s/history%s", url.PathEscape(player), historyQuery(anonymous, from, to))

			var headers map[string]string
			if password != "" {
				headers = map[string]string{"X-Persona-Password": password}
			}

			var result []HistoryRecord
			if err := client.DoWithHeaders(http.MethodGet, path, nil, &result, headers); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&player, "player", "me", "Player to query (default: yourself)")
	cmd.Flags().BoolVar(&anonymous, "anonymous", false, "Query your anonymous persona's history")
	cmd.Flags().StringVar(&password, "password", "", "Persona password (required if one is set)")
	cmd.Flags().StringVar(&from, "from", "", "Only games on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Only games on or before this date (YYYY-MM-DD)")

	return cmd
}

func newHistoryStatsCmd() *cobra.Command {
	var (
		player    string
		anonymous bool
		password  string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/players/%s/stats%s", url.PathEscape(player), historyQuery(anonymous, "", ""))

			var headers map[string]string
			if password != "" {
				headers = map[string]string{"X-Persona-Password": password}
			}

			var result PlayerStats
			if err := client.DoWithHeaders(http.MethodGet, path, nil, &result, headers); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&player, "player", "me", "Player to query (default: yourself)")
	cmd.Flags().BoolVar(&anonymous, "anonymous", false, "Query your anonymous persona's stats")
	cmd.Flags().StringVar(&password, "password", "", "Persona password (required if one is set)")

	return cmd
}

func newHistoryLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the leaderboard for the current scope",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []LeaderboardEntry

			if err := client.Get("/api/v1/leaderboard", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newHistoryRecentCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the most recent finished games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []HistoryRecord

			path := fmt.Sprintf("/api/v1/leaderboard/recent?limit=%d", limit)
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of games to show")

	return cmd
}
