package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "events <code>",
		Short: "Stream room snapshots over SSE",
		Long: `Connect to the room's SSE endpoint and stream snapshot events.

Events include:
  - snapshot: resynchronization frame sent on connect
  - player_joined / player_left: membership changed
  - settings_updated: host changed the settings
  - game_started: match started
  - word_accepted: a word scored, pattern and turn advanced
  - turn_skipped: turn skipped, water rose
  - game_over: match ended

Every event carries the full room state; apply the highest version seen.
Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.ToUpper(args[0])
			return streamEvents(code, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// SSEEvent represents a parsed SSE event
type SSEEvent struct {
	Time  time.Time `json:"time"`
	Event string    `json:"event"`
	Data  string    `json:"data"`
}

func streamEvents(roomID string, jsonOutput bool) error {
	url := strings.TrimSuffix(cfg.ServerURL, "/") + "/api/v1/rooms/" + roomID + "/events"

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	// Set up cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	req = req.WithContext(ctx)

	httpClient := &http.Client{
		Timeout: 0, // No timeout for SSE
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if !jsonOutput {
		fmt.Printf("Connected to room %s\n", roomID)
	}

	// Parse SSE stream
	scanner := bufio.NewScanner(resp.Body)
	var currentEvent string
	var dataLines []string

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "event: ") {
			currentEvent = strings.TrimPrefix(line, "event: ")
		} else if strings.HasPrefix(line, "data: ") {
			dataLines = append(dataLines, strings.TrimPrefix(line, "data: "))
		} else if line == "" {
			// End of event
			if currentEvent != "" {
				data := strings.Join(dataLines, "\n")
				printEvent(currentEvent, data, jsonOutput)
			}
			currentEvent = ""
			dataLines = nil
		}
	}

	if err := scanner.Err(); err != nil {
		// Context cancellation is expected
		if ctx.Err() != nil {
			if !jsonOutput {
				fmt.Println("\nDisconnected")
			}
			return nil
		}
		return fmt.Errorf("stream error: %w", err)
	}

	if !jsonOutput {
		fmt.Println("Disconnected")
	}
	return nil
}

func printEvent(event, data string, jsonOutput bool) {
	now := time.Now()

	if jsonOutput {
		evt := SSEEvent{
			Time:  now,
			Event: event,
			Data:  data,
		}
		jsonData, _ := json.Marshal(evt)
		fmt.Println(string(jsonData))
		return
	}

	timestamp := now.Format("2006-01-02 15:04:05")

	// Pull the interesting fields out of the snapshot for display
	var snapshot struct {
		Version int64 `json:"version"`
		Room    struct {
			Status     string  `json:"status"`
			Pattern    string  `json:"pattern"`
			WaterLevel float64 `json:"water_level"`
		} `json:"room"`
		Turn *struct {
			Word   string `json:"word"`
			Points int    `json:"points"`
		} `json:"turn"`
		Winner string `json:"winner"`
	}
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		fmt.Printf("[%s] %s\n", timestamp, event)
		return
	}

	line := fmt.Sprintf("[%s] %s v%d status=%s", timestamp, event, snapshot.Version, snapshot.Room.Status)
	if snapshot.Room.Pattern != "" {
		line += " pattern=" + snapshot.Room.Pattern
	}
	if snapshot.Room.Status == "playing" {
		line += fmt.Sprintf(" water=%.1f", snapshot.Room.WaterLevel)
	}
	if snapshot.Turn != nil && snapshot.Turn.Word != "" {
		line += fmt.Sprintf(" word=%s (+%d)", snapshot.Turn.Word, snapshot.Turn.Points)
	}
	if snapshot.Winner != "" {
		line += " winner=" + snapshot.Winner
	}
	fmt.Println(line)
}
