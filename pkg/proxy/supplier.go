package proxy

import (
	"context"
)

// PushFunc enqueues a producer payload on the owning channel
type PushFunc func(ctx context.Context, payload string) error

// Supplier is the channel-side connection of one producer
type Supplier struct {
	base
	push PushFunc
}

// NewSupplier creates an unbound supplier proxy for owner. Pushes made
// through the proxy are handed to push.
func NewSupplier(owner Owner, push PushFunc) *Supplier {
	s := &Supplier{push: push}
	s.init(owner, KindSupplier, s)
	return s
}

// Connect binds the proxy to a producer peer
func (s *Supplier) Connect(peer Peer) error {
	return s.connect(peer)
}

// Push forwards a payload to the channel
func (s *Supplier) Push(ctx context.Context, payload string) error {
	if !s.Connected() {
		return ErrNotConnected
	}
	return s.push(ctx, payload)
}
