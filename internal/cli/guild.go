package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newGuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guild",
		Short: "Guild configuration",
	}

	cmd.AddCommand(newGuildChannelCmd())
	cmd.AddCommand(newGuildSetChannelCmd())

	return cmd
}

func newGuildChannelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "channel <guild-id>",
		Short: "Show the guild's game channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GuildChannel

			path := fmt.Sprintf("/api/v1/guilds/%s/channel", url.PathEscape(args[0]))
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGuildSetChannelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-channel <guild-id> <channel-id>",
		Short: "Bind the guild's game channel",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"channel_id": args[1]}
			var result GuildChannel

			path := fmt.Sprintf("/api/v1/guilds/%s/channel", url.PathEscape(args[0]))
			if err := client.Put(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
