package transport

import (
	"context"
	"fmt"
	"io"

	"github.com/cuemby/eventchannel/api/proto"
	"github.com/cuemby/eventchannel/pkg/metrics"
	"github.com/cuemby/eventchannel/pkg/types"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Client wraps the broker gRPC service for producers, subscribers and the CLI
type Client struct {
	conn   *grpc.ClientConn
	client proto.BrokerServiceClient
}

// NewClient creates a client for the broker at addr
func NewClient(addr string) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}
	return &Client{
		conn:   conn,
		client: proto.NewBrokerServiceClient(conn),
	}, nil
}

// Close closes the connection
func (c *Client) Close() error {
	return c.conn.Close()
}

// Supplier is a connected producer session on one channel
type Supplier struct {
	client  *Client
	channel string
	id      string
}

// ConnectSupplier opens a producer session on channel
func (c *Client) ConnectSupplier(ctx context.Context, channel string) (*Supplier, error) {
	resp, err := c.client.ConnectSupplier(ctx, &proto.ConnectSupplierRequest{Channel: channel})
	if err != nil {
		return nil, err
	}
	return &Supplier{client: c, channel: channel, id: resp.GetConnectionId()}, nil
}

// ID returns the connection id assigned by the broker
func (s *Supplier) ID() string { return s.id }

// Push enqueues one payload on the channel
func (s *Supplier) Push(ctx context.Context, payload string) error {
	_, err := s.client.client.Push(ctx, &proto.PushRequest{
		Channel:      s.channel,
		ConnectionId: s.id,
		Payload:      payload,
	})
	return err
}

// Disconnect ends the producer session
func (s *Supplier) Disconnect(ctx context.Context) error {
	_, err := s.client.client.DisconnectSupplier(ctx, &proto.DisconnectSupplierRequest{
		Channel:      s.channel,
		ConnectionId: s.id,
	})
	return err
}

// Subscribe attaches the consumer endpoint at endpoint to channel and
// returns the connection id
func (c *Client) Subscribe(ctx context.Context, channel, endpoint string) (string, error) {
	resp, err := c.client.Subscribe(ctx, &proto.SubscribeRequest{Channel: channel, Endpoint: endpoint})
	if err != nil {
		return "", err
	}
	return resp.GetConnectionId(), nil
}

// Unsubscribe detaches a consumer
func (c *Client) Unsubscribe(ctx context.Context, channel, connID string) error {
	_, err := c.client.Unsubscribe(ctx, &proto.UnsubscribeRequest{Channel: channel, ConnectionId: connID})
	return err
}

// ListChannels returns a snapshot of every channel
func (c *Client) ListChannels(ctx context.Context) ([]metrics.ChannelStats, error) {
	resp, err := c.client.ListChannels(ctx, &proto.ListChannelsRequest{})
	if err != nil {
		return nil, err
	}

	stats := make([]metrics.ChannelStats, 0, len(resp.GetChannels()))
	for _, ch := range resp.GetChannels() {
		stats = append(stats, metrics.ChannelStats{
			Name:       ch.GetName(),
			Persistent: ch.GetPersistent(),
			QueueDepth: int(ch.GetQueueDepth()),
			Consumers:  int(ch.GetConsumers()),
			Suppliers:  int(ch.GetSuppliers()),
		})
	}
	return stats, nil
}

// Reset puts the failed events selected by req back into retry and returns
// how many were reset
func (c *Client) Reset(ctx context.Context, req types.ResetRequest) (int64, error) {
	resp, err := c.client.Reset(ctx, resetToProto(req))
	if err != nil {
		return 0, err
	}
	return resp.GetResetCount(), nil
}

// Watch streams lifecycle notifications to fn until ctx is done or the
// server ends the stream
func (c *Client) Watch(ctx context.Context, fn func(*proto.LifecycleEvent)) error {
	stream, err := c.client.Watch(ctx, &proto.WatchRequest{})
	if err != nil {
		return err
	}

	for {
		ev, err := stream.Recv()
		if err != nil {
			if err == io.EOF || ctx.Err() != nil {
				return nil
			}
			return err
		}
		fn(ev)
	}
}
