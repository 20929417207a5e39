package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var jsonOutput bool
	var username string

	cmd := &cobra.Command{
		Use:   "watch <room>",
		Short: "Join a room and stream its events",
		Long: `Connect to the game websocket, join the room, and print events
in real-time.

Events include:
  - playerJoined / playerLeft: Room roster changed
  - gameState: Session snapshot (the word is only sent to the drawer)
  - drawing: Canvas strokes from the drawer
  - newGuess: Incorrect guesses, forwarded as chat
  - correctGuess: A player guessed the word
  - systemMessage: Informational messages
  - roundEnd / newRound: Round transitions

The watcher joins the room as a regular player and counts towards the
round quorum, so prefer an idle room or an extra spectator name.

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchRoom(args[0], username, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")
	cmd.Flags().StringVar(&username, "username", "spectator", "Username to join the room as")

	return cmd
}

// wireEvent is the envelope format the server speaks
type wireEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// loggedEvent is the JSON-lines output shape
type loggedEvent struct {
	Time  time.Time       `json:"time"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func watchRoom(roomID, username string, jsonOutput bool) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, client.WebsocketURL(), nil)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	join := map[string]any{
		"event": "joinRoom",
		"data":  map[string]string{"roomId": roomID, "username": username},
	}
	if err := conn.WriteJSON(join); err != nil {
		return fmt.Errorf("failed to join room: %w", err)
	}

	if !jsonOutput {
		fmt.Printf("Connected to room %s as %s\n", roomID, username)
	}

	// Close the connection when interrupted so the read below unblocks
	go func() {
		<-ctx.Done()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		_ = conn.Close()
	}()

	for {
		var evt wireEvent
		if err := conn.ReadJSON(&evt); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				if !jsonOutput {
					fmt.Println("\nDisconnected")
				}
				return nil
			}
			return fmt.Errorf("stream error: %w", err)
		}
		printWireEvent(evt, jsonOutput)
	}
}

func printWireEvent(evt wireEvent, jsonOutput bool) {
	now := time.Now()

	if jsonOutput {
		data, _ := json.Marshal(loggedEvent{Time: now, Event: evt.Event, Data: evt.Data})
		fmt.Println(string(data))
		return
	}

	timestamp := now.Format("2006-01-02 15:04:05")
	// Truncate data if it's too long for display
	displayData := string(evt.Data)
	if len(displayData) > 100 {
		displayData = displayData[:100] + "..."
	}
	displayData = strings.ReplaceAll(displayData, "\n", " ")
	fmt.Printf("[%s] %s: %s\n", timestamp, evt.Event, displayData)
}
