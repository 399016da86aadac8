package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/coder/websocket"
	"github.com/spf13/cobra"

	"aceguard-demo/store"
)

var watchURL string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the live event stream of a running server",
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchURL, "url", "", "Event stream URL (default ws://<server.events_addr>/ws)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	url := watchURL
	if url == "" {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		url = eventsURL(cfg.Server.EventsAddr)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	defer conn.CloseNow()

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s\n", url)
	err = followEvents(ctx, conn, cmd.OutOrStdout())
	if errors.Is(err, context.Canceled) {
		conn.Close(websocket.StatusNormalClosure, "")
		return nil
	}
	return err
}

// eventsURL turns a listen address such as ":8081" into a dialable URL
func eventsURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "ws://" + addr + "/ws"
}

// followEvents prints one line per received event until the stream ends
func followEvents(ctx context.Context, conn *websocket.Conn, out io.Writer) error {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		var e store.Event
		if err := json.Unmarshal(data, &e); err != nil {
			fmt.Fprintf(out, "invalid event: %v\n", err)
			continue
		}
		fmt.Fprintln(out, formatEvent(e))
	}
}

func formatEvent(e store.Event) string {
	ts := e.At.UTC().Format("15:04:05")
	switch e.Type {
	case store.EventScanCompleted:
		return fmt.Sprintf("%s %-18s %s: %d findings (%d high-risk), %d open gaps", ts, e.Type, e.Repository, e.Findings, e.HighRisk, e.OpenGaps)
	case store.EventGapMoved:
		return fmt.Sprintf("%s %-18s %s -> %s, %d open gaps", ts, e.Type, e.GapID, e.Status, e.OpenGaps)
	case store.EventClaimFiled:
		return fmt.Sprintf("%s %-18s %s for %s (%.0f EUR)", ts, e.Type, e.ClaimID, e.Repository, e.FineEUR)
	case store.EventRepositoryAdding, store.EventRepositoryAdded:
		return fmt.Sprintf("%s %-18s %s", ts, e.Type, e.Repository)
	default:
		return fmt.Sprintf("%s %s", ts, e.Type)
	}
}
