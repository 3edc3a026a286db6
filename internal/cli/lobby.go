package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/battleshipgame-go/internal/protocol"
)

func newRoomsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rooms",
		Short: "List rooms waiting for a second player",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []protocol.RoomInfo

			if err := client.Get("/api/lobby", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the win leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []protocol.WinnerEntry

			if err := client.Get("/api/leaderboard", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
