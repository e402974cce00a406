package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Room management commands",
	}

	cmd.AddCommand(newRoomCreateCmd())
	cmd.AddCommand(newRoomListCmd())
	cmd.AddCommand(newRoomGetCmd())
	cmd.AddCommand(newRoomJoinCmd())
	cmd.AddCommand(newRoomLeaveCmd())
	cmd.AddCommand(newRoomSettingsCmd())

	return cmd
}

func newRoomCreateCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new room",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Room

			if err := client.Post("/api/v1/rooms", map[string]string{"host_name": name}, &result); err != nil {
				return err
			}

			if len(result.Players) > 0 {
				if err := cfg.SaveIdentity(result.ID, result.Players[0].ID); err != nil {
					return err
				}
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Your display name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newRoomListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List open rooms",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result RoomList

			if err := client.Get("/api/v1/rooms", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <code>",
		Short: "Get room details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.ToUpper(args[0])

			var result Room

			if err := client.Get(fmt.Sprintf("/api/v1/rooms/%s", code), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomJoinCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "join <code>",
		Short: "Join a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.ToUpper(args[0])

			var result Room

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/join", code), map[string]string{"player_name": name}, &result); err != nil {
				return err
			}

			// The joined player is the newest entry
			if len(result.Players) > 0 {
				joined := result.Players[len(result.Players)-1]
				if err := cfg.SaveIdentity(result.ID, joined.ID); err != nil {
					return err
				}
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Your display name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newRoomLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <code>",
		Short: "Leave a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.ToUpper(args[0])

			playerID, err := cfg.PlayerFor(code)
			if err != nil {
				return err
			}

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/leave", code), map[string]string{"player_id": playerID}, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Left room %s", code))
			return nil
		},
	}
}

func newRoomSettingsCmd() *cobra.Command {
	var (
		maxPlayers int
		difficulty string
		turnTime   int
	)

	cmd := &cobra.Command{
		Use:   "settings <code>",
		Short: "Update room settings (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.ToUpper(args[0])

			playerID, err := cfg.PlayerFor(code)
			if err != nil {
				return err
			}

			req := map[string]any{"requester_id": playerID}
			if cmd.Flags().Changed("max-players") {
				req["max_players"] = maxPlayers
			}
			if cmd.Flags().Changed("difficulty") {
				req["difficulty"] = difficulty
			}
			if cmd.Flags().Changed("turn-time") {
				req["turn_time_limit_seconds"] = turnTime
			}
			if len(req) == 1 {
				return fmt.Errorf("nothing to update; pass --max-players, --difficulty or --turn-time")
			}

			var result Settings

			if err := client.Patch(fmt.Sprintf("/api/v1/rooms/%s/settings", code), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxPlayers, "max-players", 0, "Player cap (2-6)")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Difficulty: easy, normal, hard")
	cmd.Flags().IntVar(&turnTime, "turn-time", 0, "Turn time limit in seconds")

	return cmd
}
