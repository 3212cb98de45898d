package commands

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream live queue events",
	Long: `Connect to the modqueued WebSocket endpoint and print queue events
as they happen: new reviewables, performed actions, and pending counts.`,
	RunE: runWatch,
}

// wsEvent is the envelope for events from the server.
type wsEvent struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func runWatch(cmd *cobra.Command, args []string) error {
	wsURL := strings.TrimRight(serverAddr, "/")
	wsURL = strings.Replace(wsURL, "http://", "ws://", 1)
	wsURL = strings.Replace(wsURL, "https://", "wss://", 1)
	wsURL += "/ws"

	header := http.Header{}
	key := apiKey
	if key == "" {
		key = os.Getenv("MODQUEUE_API_KEY")
	}
	if key != "" {
		header.Set("Authorization", "Bearer "+key)
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", wsURL, err)
	}
	defer conn.Close()

	fmt.Printf("Watching %s (Ctrl-C to stop)...\n", wsURL)

	// Close the connection cleanly on interrupt.
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}

			var event wsEvent
			if err := json.Unmarshal(data, &event); err != nil {
				continue
			}

			if outputFormat == "json" {
				fmt.Println(string(data))
				continue
			}

			ts := time.Now().Format("15:04:05")
			fmt.Printf("[%s] %s %s\n", ts, event.Type,
				string(event.Payload))
		}
	}()

	select {
	case <-done:
		return nil

	case <-interrupt:
		_ = conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure, "",
			),
		)
		select {
		case <-done:
		case <-time.After(time.Second):
		}
		return nil
	}
}
