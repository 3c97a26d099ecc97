package proxy

import (
	"context"
	"errors"
	"net"
	"sync"
	"syscall"
	"time"

	"github.com/cuemby/eventchannel/pkg/log"
	"github.com/cuemby/eventchannel/pkg/metrics"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	// ErrAlreadyConnected is returned when a bound proxy is connected again
	ErrAlreadyConnected = errors.New("proxy already connected")

	// ErrNotConnected is returned when a proxy without a peer is used
	ErrNotConnected = errors.New("proxy not connected")

	// ErrDestroyed is returned when a destroyed proxy is connected
	ErrDestroyed = errors.New("proxy destroyed")

	// ErrPeerUnreachable marks errors that prove the remote peer is gone.
	// Transports wrap their connection-failure errors with it.
	ErrPeerUnreachable = errors.New("peer unreachable")
)

const (
	// DefaultProbeTimeout bounds a single liveness probe
	DefaultProbeTimeout = 10 * time.Second

	disconnectTimeout = 5 * time.Second
)

// Kind tells supplier and consumer proxies apart
type Kind string

const (
	KindSupplier Kind = "supplier"
	KindConsumer Kind = "consumer"
)

// Peer is the remote reference a proxy is bound to
type Peer interface {
	// Ping probes the remote endpoint
	Ping(ctx context.Context) error

	// Disconnect notifies the peer that the connection is being torn down
	Disconnect(ctx context.Context) error
}

// ConsumerPeer is a peer that accepts pushed events
type ConsumerPeer interface {
	Peer
	Push(ctx context.Context, message string) error
}

// Connection is the common view of supplier and consumer proxies
type Connection interface {
	ID() string
	Kind() Kind
	Connected() bool
	PeerDisconnected(ctx context.Context) bool
	Destroy(ctx context.Context)
	OnDetach(fn func())
}

// Owner is the channel a proxy belongs to
type Owner interface {
	Name() string
	RelaxLivenessChecks() bool

	// Attach is called once a peer is bound; an error rejects the connect
	Attach(conn Connection) error

	// Detach removes the connection from the owner's sets
	Detach(conn Connection)
}

// base holds the connection state shared by both proxy kinds
type base struct {
	id           string
	kind         Kind
	owner        Owner
	self         Connection
	probeTimeout time.Duration

	mu        sync.Mutex
	peer      Peer
	destroyed bool
	onDetach  []func()

	logger zerolog.Logger
}

func (b *base) init(owner Owner, kind Kind, self Connection) {
	b.id = uuid.New().String()
	b.kind = kind
	b.owner = owner
	b.self = self
	b.probeTimeout = DefaultProbeTimeout
	b.logger = log.WithConnection(owner.Name(), string(kind), b.id)
}

func (b *base) ID() string { return b.id }

func (b *base) Kind() Kind { return b.kind }

// Connected reports whether a peer is currently bound
func (b *base) Connected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.peer != nil
}

func (b *base) currentPeer() Peer {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.peer
}

func (b *base) connect(peer Peer) error {
	if peer == nil {
		return ErrNotConnected
	}

	b.mu.Lock()
	if b.destroyed {
		b.mu.Unlock()
		return ErrDestroyed
	}
	if b.peer != nil {
		b.mu.Unlock()
		return ErrAlreadyConnected
	}
	b.peer = peer
	b.mu.Unlock()

	if err := b.owner.Attach(b.self); err != nil {
		b.mu.Lock()
		b.peer = nil
		b.mu.Unlock()
		return err
	}

	b.logger.Info().Msg("Peer connected")
	return nil
}

// PeerDisconnected reports whether the remote peer is known to be gone.
// The check returns once ctx or the probe timeout expires, whichever is
// first, even if the peer's Ping ignores its context. Errors that are not
// connection failures, timeouts included, are treated as live.
func (b *base) PeerDisconnected(ctx context.Context) bool {
	if b.owner.RelaxLivenessChecks() {
		return false
	}

	peer := b.currentPeer()
	if peer == nil {
		return true
	}

	probeCtx, cancel := context.WithTimeout(ctx, b.probeTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- peer.Ping(probeCtx)
	}()

	var err error
	select {
	case err = <-done:
	case <-probeCtx.Done():
		err = probeCtx.Err()
	}
	if err == nil {
		return false
	}
	if IsConnectionFailure(err) {
		b.logger.Warn().Err(err).Msg("Peer unreachable")
		return true
	}

	b.logger.Debug().Err(err).Msg("Liveness probe indeterminate, assuming peer is alive")
	return false
}

// OnDetach registers fn to run once the connection has been torn down,
// whoever tore it down. fn runs at once if that already happened.
func (b *base) OnDetach(fn func()) {
	b.mu.Lock()
	if !b.destroyed {
		b.onDetach = append(b.onDetach, fn)
		b.mu.Unlock()
		return
	}
	b.mu.Unlock()
	fn()
}

// Destroy tears the connection down and notifies the peer. Safe to call
// more than once.
func (b *base) Destroy(ctx context.Context) {
	b.teardown(ctx, true)
}

// Disconnect tears the connection down at the peer's request; the peer is
// not notified back.
func (b *base) Disconnect(ctx context.Context) {
	b.teardown(ctx, false)
}

func (b *base) teardown(ctx context.Context, notify bool) {
	b.mu.Lock()
	if b.destroyed {
		b.mu.Unlock()
		return
	}
	b.destroyed = true
	peer := b.peer
	b.mu.Unlock()

	b.owner.Detach(b.self)

	if notify && peer != nil {
		nctx, cancel := context.WithTimeout(ctx, disconnectTimeout)
		if err := peer.Disconnect(nctx); err != nil {
			b.logger.Debug().Err(err).Msg("Disconnect notice failed")
		}
		cancel()
	}

	b.mu.Lock()
	b.peer = nil
	hooks := b.onDetach
	b.onDetach = nil
	b.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}

	b.logger.Info().Bool("notified", notify).Msg("Connection destroyed")
}

// DetachedPeer stands in for producers that expose no remote reference.
// It is always considered alive.
type DetachedPeer struct{}

func (DetachedPeer) Ping(context.Context) error { return nil }

func (DetachedPeer) Disconnect(context.Context) error { return nil }

// PruneStale destroys the connection when its peer is gone and reports
// whether it did
func PruneStale(ctx context.Context, conn Connection, channel string) bool {
	if !conn.PeerDisconnected(ctx) {
		return false
	}
	conn.Destroy(ctx)
	metrics.StalePeersPruned.WithLabelValues(channel, string(conn.Kind())).Inc()
	return true
}

// IsConnectionFailure classifies errors that prove a peer is unreachable
func IsConnectionFailure(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrPeerUnreachable) || errors.Is(err, net.ErrClosed) {
		return true
	}
	for _, errno := range []syscall.Errno{
		syscall.ECONNREFUSED,
		syscall.ECONNRESET,
		syscall.EHOSTUNREACH,
		syscall.ENETUNREACH,
		syscall.EPIPE,
	} {
		if errors.Is(err, errno) {
			return true
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}
	return false
}
