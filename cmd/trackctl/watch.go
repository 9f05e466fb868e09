package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/agritrace/supplytrace/internal/events"
	"github.com/agritrace/supplytrace/internal/model"
	"github.com/agritrace/supplytrace/internal/ui"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow product events in real time",
	Long: `Follow product events in real time.

By default the command follows the server's SSE stream. When the active
remote has a NATS URL configured (or --nats is given), events are
consumed straight from NATS instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, _ := cmd.Flags().GetString("product")
		statusOnly, _ := cmd.Flags().GetBool("status-only")
		natsURL, _ := cmd.Flags().GetString("nats")
		if natsURL == "" {
			natsURL = os.Getenv("TRACK_NATS_URL")
		}
		if natsURL == "" {
			natsURL = activeRemoteNATSURL()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if natsURL != "" {
			return watchNATS(ctx, natsURL, productID)
		}
		return watchSSE(ctx, productID, statusOnly)
	},
}

// watchSSE follows the server's SSE stream, printing each frame.
func watchSSE(ctx context.Context, productID string, statusOnly bool) error {
	var (
		ch  <-chan json.RawMessage
		err error
	)
	if statusOnly || productID != "" {
		ch, err = trackerClient.StreamStatus(ctx, productID)
	} else {
		ch, err = trackerClient.StreamProducts(ctx, nil)
	}
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case frame, ok := <-ch:
			if !ok {
				return nil
			}
			printFrame(frame)
		}
	}
}

// watchNATS consumes events straight from NATS, reconnecting forever.
func watchNATS(ctx context.Context, natsURL, productID string) error {
	sub, err := events.NewNATSSubscriber(natsURL,
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Printf("nats: disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			log.Printf("nats: reconnected")
		}),
	)
	if err != nil {
		return fmt.Errorf("connecting to NATS: %w", err)
	}
	defer sub.Close()

	ch, cancel, err := sub.Subscribe("supplytrace.>")
	if err != nil {
		return fmt.Errorf("subscribing to events: %w", err)
	}
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case data, ok := <-ch:
			if !ok {
				return nil
			}
			if productID != "" && !frameMentions(data, productID) {
				continue
			}
			printFrame(data)
		}
	}
}

// frameMentions reports whether the event payload concerns the product.
func frameMentions(data []byte, productID string) bool {
	var evt struct {
		ID        string         `json:"id"`
		ProductID string         `json:"productId"`
		Product   *model.Product `json:"product"`
	}
	if json.Unmarshal(data, &evt) != nil {
		return false
	}
	if evt.ProductID == productID || evt.ID == productID {
		return true
	}
	return evt.Product != nil && evt.Product.ID == productID
}

// printFrame renders one event payload, one line per event. Product
// broadcast frames carry the bare entity; NATS envelopes wrap it under
// a "product" key, and both shapes are handled here.
func printFrame(data []byte) {
	if jsonOutput {
		fmt.Println(string(data))
		return
	}

	var evt struct {
		Type      string         `json:"type"`
		Message   string         `json:"message"`
		Product   *model.Product `json:"product"`
		ProductID string         `json:"productId"`
		OldStatus string         `json:"oldStatus"`
		NewStatus string         `json:"newStatus"`
		Location  string         `json:"location"`
	}
	if err := json.Unmarshal(data, &evt); err != nil {
		fmt.Println(string(data))
		return
	}
	if evt.Type == "" && evt.NewStatus == "" && evt.Product == nil && evt.ProductID == "" {
		var p model.Product
		if err := json.Unmarshal(data, &p); err == nil && p.ID != "" {
			evt.Product = &p
		}
	}

	switch {
	case evt.Type == "connected":
		fmt.Println(ui.RenderMuted(evt.Message))
	case evt.NewStatus != "":
		fmt.Printf("%s  %s -> %s  %s\n",
			evt.ProductID,
			ui.RenderStatus(evt.OldStatus),
			ui.RenderStatus(evt.NewStatus),
			ui.RenderMuted(evt.Location),
		)
	case evt.Product != nil:
		fmt.Printf("%s  %s  %s  %s\n",
			evt.Product.ID,
			evt.Product.Name,
			ui.RenderStatus(evt.Product.Status),
			ui.RenderMuted(evt.Product.CurrentLocation),
		)
	case evt.ProductID != "":
		fmt.Printf("%s  deleted\n", evt.ProductID)
	default:
		fmt.Println(string(data))
	}
}

func init() {
	watchCmd.Flags().String("product", "", "only show events for this product ID")
	watchCmd.Flags().Bool("status-only", false, "follow the status-change stream only")
	watchCmd.Flags().String("nats", "", "consume events from this NATS URL instead of SSE")
}
