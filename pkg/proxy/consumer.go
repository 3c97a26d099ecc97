package proxy

import (
	"context"
)

// Consumer is the channel-side connection to one push consumer
type Consumer struct {
	base
}

// NewConsumer creates an unbound consumer proxy for owner
func NewConsumer(owner Owner) *Consumer {
	c := &Consumer{}
	c.init(owner, KindConsumer, c)
	return c
}

// Connect binds the proxy to a consumer peer
func (c *Consumer) Connect(peer ConsumerPeer) error {
	if peer == nil {
		return ErrNotConnected
	}
	return c.connect(peer)
}

// Push delivers one message to the bound peer
func (c *Consumer) Push(ctx context.Context, message string) error {
	peer, ok := c.currentPeer().(ConsumerPeer)
	if !ok || peer == nil {
		return ErrNotConnected
	}
	return peer.Push(ctx, message)
}
