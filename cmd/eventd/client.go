package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/cuemby/eventchannel/api/proto"
	"github.com/cuemby/eventchannel/pkg/config"
	"github.com/cuemby/eventchannel/pkg/transport"
	"github.com/cuemby/eventchannel/pkg/types"
	"github.com/spf13/cobra"
)

func init() {
	for _, cmd := range []*cobra.Command{pushCmd, subscribeCmd, resetCmd, channelsCmd, watchCmd} {
		cmd.Flags().String("server", config.DefaultGRPCAddr, "eventd gRPC address")
	}

	pushCmd.Flags().String("channel", "", "Target channel (required)")
	_ = pushCmd.MarkFlagRequired("channel")

	subscribeCmd.Flags().String("channel", "", "Channel to subscribe to (required)")
	subscribeCmd.Flags().String("listen", "127.0.0.1:0", "Address of the local consumer endpoint")
	_ = subscribeCmd.MarkFlagRequired("channel")

	addResetFlags(resetCmd)
	_ = resetCmd.MarkFlagRequired("channel")
}

func addResetFlags(cmd *cobra.Command) {
	cmd.Flags().String("channel", "", "Channel whose failed events are reset (required)")
	cmd.Flags().String("since", "", "Only events last failed at or after this RFC3339 time")
	cmd.Flags().Int("max-retries", -1, "Only events that failed at most this many times")
	cmd.Flags().Int64("event-id", 0, "Reset this single event, ignoring the other filters")
}

func newClient(cmd *cobra.Command) (*transport.Client, error) {
	addr, _ := cmd.Flags().GetString("server")
	return transport.NewClient(addr)
}

// signalContext is cancelled on Ctrl+C or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

var pushCmd = &cobra.Command{
	Use:   "push [payload...]",
	Short: "Push events to a channel",
	Long: `Push one event per argument to a channel. Without arguments every
line read from standard input is pushed as one event.

Examples:
  eventd push --channel orders '{"id": 1}'
  cat events.jsonl | eventd push --channel orders`,
	RunE: func(cmd *cobra.Command, args []string) error {
		channelName, _ := cmd.Flags().GetString("channel")

		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		ctx, cancel := signalContext()
		defer cancel()

		supplier, err := c.ConnectSupplier(ctx, channelName)
		if err != nil {
			return fmt.Errorf("failed to connect to channel %s: %w", channelName, err)
		}
		defer func() { _ = supplier.Disconnect(context.Background()) }()

		count := 0
		push := func(payload string) error {
			if err := supplier.Push(ctx, payload); err != nil {
				return fmt.Errorf("failed to push event %d: %w", count+1, err)
			}
			count++
			return nil
		}

		if len(args) > 0 {
			for _, payload := range args {
				if err := push(payload); err != nil {
					return err
				}
			}
		} else {
			scanner := bufio.NewScanner(os.Stdin)
			scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
			for scanner.Scan() {
				if err := push(scanner.Text()); err != nil {
					return err
				}
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
		}

		fmt.Printf("✓ Pushed %d events to %s\n", count, channelName)
		return nil
	},
}

var subscribeCmd = &cobra.Command{
	Use:   "subscribe",
	Short: "Print events pushed to a channel",
	Long: `Subscribe to a channel and print every event pushed to it, one per
line, until interrupted.

eventd pushes events to a local endpoint opened by this command, so the
--listen address must be reachable from the server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		channelName, _ := cmd.Flags().GetString("channel")
		listen, _ := cmd.Flags().GetString("listen")

		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		ctx, cancel := signalContext()
		defer cancel()

		endpoint := transport.NewConsumerServer(func(_ context.Context, message string) error {
			fmt.Println(message)
			return nil
		}, cancel)
		if err := endpoint.Listen(listen); err != nil {
			return err
		}
		go func() { _ = endpoint.Serve() }()
		defer endpoint.Stop()

		connID, err := c.Subscribe(ctx, channelName, endpoint.Addr())
		if err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", channelName, err)
		}
		fmt.Fprintf(os.Stderr, "✓ Subscribed to %s (connection %s)\n", channelName, connID)

		<-ctx.Done()

		unsubCtx, unsubCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer unsubCancel()
		if err := c.Unsubscribe(unsubCtx, channelName, connID); err != nil {
			// Already detached by the server
			return nil
		}
		fmt.Fprintln(os.Stderr, "✓ Unsubscribed")
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset failed events of a persistent channel for retry",
	Long: `Move failed events of a persistent channel back to awaiting retry.

Examples:
  # Every failed event of the channel
  eventd reset --channel orders

  # Events that failed since a date, at most 3 times
  eventd reset --channel orders --since 2026-01-01T00:00:00Z --max-retries 3

  # One event
  eventd reset --channel orders --event-id 42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := resetRequest(cmd)
		if err != nil {
			return err
		}
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		n, err := c.Reset(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("failed to reset events: %w", err)
		}
		fmt.Printf("✓ Reset %d events of %s\n", n, req.ChannelName)
		return nil
	},
}

func resetRequest(cmd *cobra.Command) (types.ResetRequest, error) {
	req := types.ResetRequest{}
	req.ChannelName, _ = cmd.Flags().GetString("channel")

	if since, _ := cmd.Flags().GetString("since"); since != "" {
		t, err := time.Parse(time.RFC3339, since)
		if err != nil {
			return req, fmt.Errorf("invalid --since: %w", err)
		}
		req.DateFloor = &t
	}
	if maxRetries, _ := cmd.Flags().GetInt("max-retries"); maxRetries >= 0 {
		req.RetryCeiling = &maxRetries
	}
	if cmd.Flags().Changed("event-id") {
		id, _ := cmd.Flags().GetInt64("event-id")
		req.EventID = &id
	}
	return req, req.Validate()
}

var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "List channels",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		stats, err := c.ListChannels(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list channels: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tPERSISTENT\tQUEUED\tCONSUMERS\tSUPPLIERS")
		for _, s := range stats {
			fmt.Fprintf(w, "%s\t%t\t%d\t%d\t%d\n", s.Name, s.Persistent, s.QueueDepth, s.Consumers, s.Suppliers)
		}
		return w.Flush()
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream channel lifecycle events",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		ctx, cancel := signalContext()
		defer cancel()

		return c.Watch(ctx, func(ev *proto.LifecycleEvent) {
			fmt.Printf("%s  %-18s %-10s %s\n",
				ev.GetTimestamp().AsTime().Format(time.RFC3339Nano), ev.GetType(), ev.GetChannel(), ev.GetMessage())
		})
	},
}
