package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Match commands",
	}

	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameSubmitCmd())
	cmd.AddCommand(newGameSkipCmd())

	return cmd
}

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <code>",
		Short: "Start the match (host only, needs 2+ players)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.ToUpper(args[0])

			playerID, err := cfg.PlayerFor(code)
			if err != nil {
				return err
			}

			var result Room

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/start", code), map[string]string{"requester_id": playerID}, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameSubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit <code> <word>",
		Short: "Submit a word for the current pattern",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.ToUpper(args[0])
			word := args[1]

			playerID, err := cfg.PlayerFor(code)
			if err != nil {
				return err
			}

			var result SubmitResult

			req := map[string]string{"player_id": playerID, "word": word}
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/submit", code), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameSkipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "skip <code>",
		Short: "Skip your turn (costs a bubble)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.ToUpper(args[0])

			playerID, err := cfg.PlayerFor(code)
			if err != nil {
				return err
			}

			var result Room

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/skip", code), map[string]string{"player_id": playerID}, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
