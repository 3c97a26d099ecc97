package policy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cuemby/eventchannel/pkg/log"
	"github.com/cuemby/eventchannel/pkg/metrics"
	"github.com/cuemby/eventchannel/pkg/types"
	"github.com/rs/zerolog"
)

// DefaultMaxPushWait bounds a single consumer push
const DefaultMaxPushWait = 300 * time.Second

// ErrPushTimeout is reported for a consumer that did not answer in time
var ErrPushTimeout = errors.New("consumer push timed out")

// Consumer is an attached consumer connection as seen by a policy
type Consumer interface {
	ID() string
	Push(ctx context.Context, message string) error
	PeerDisconnected(ctx context.Context) bool
	Destroy(ctx context.Context)
}

// ConsumerPolicy decides what counts as a delivery across consumers
type ConsumerPolicy interface {
	Deliver(ctx context.Context, consumers []Consumer, event *types.Event) types.Outcome
}

// OnlyOnce pushes an event to every live consumer and reports success when
// at least one of them accepted it
type OnlyOnce struct {
	channel     string
	maxPushWait time.Duration
	logger      zerolog.Logger
}

// NewOnlyOnce creates the only-once policy for a channel
func NewOnlyOnce(channel string, maxPushWait time.Duration) *OnlyOnce {
	if maxPushWait <= 0 {
		maxPushWait = DefaultMaxPushWait
	}
	return &OnlyOnce{
		channel:     channel,
		maxPushWait: maxPushWait,
		logger:      log.WithChannel("policy", channel),
	}
}

// Deliver fans the event out to the consumers sequentially. Each consumer
// gets one maxPushWait budget covering both its liveness check and its
// push, so a call never takes longer than maxPushWait per consumer.
// Consumers whose peer is gone are destroyed and skipped. The policy never
// mutates the event; the outcome carries the failure text for the queue to
// record.
func (p *OnlyOnce) Deliver(ctx context.Context, consumers []Consumer, event *types.Event) types.Outcome {
	live := 0
	delivered := false
	lastError := ""
	for _, c := range consumers {
		if ctx.Err() != nil {
			break
		}

		stale, err := p.deliverOne(ctx, c, event.Message)
		if stale {
			continue
		}
		live++
		if err == nil {
			delivered = true
			continue
		}

		p.logger.Warn().
			Err(err).
			Str("conn_id", c.ID()).
			Int64("event_id", event.ID).
			Msg("Consumer push failed")
		if !delivered {
			lastError = fmt.Sprintf("consumer %s: %v", c.ID(), err)
		}
	}

	switch {
	case delivered:
		return types.Outcome{Status: types.DeliverySuccessful}
	case ctx.Err() != nil:
		// Shutting down; leave the event for a later attempt
		return types.Outcome{Status: types.NoConsumersAvailable}
	case live == 0:
		return types.Outcome{Status: types.NoConsumersAvailable}
	default:
		return types.Outcome{Status: types.DeliveryFailed, LastError: lastError}
	}
}

// deliverOne checks one consumer and pushes to it under a single deadline.
// stale is true when the consumer was pruned instead.
func (p *OnlyOnce) deliverOne(ctx context.Context, c Consumer, message string) (stale bool, err error) {
	pushCtx, cancel := context.WithTimeout(ctx, p.maxPushWait)
	defer cancel()

	if c.PeerDisconnected(pushCtx) {
		p.logger.Info().Str("conn_id", c.ID()).Msg("Pruning stale consumer")
		c.Destroy(ctx)
		metrics.StalePeersPruned.WithLabelValues(p.channel, "consumer").Inc()
		return true, nil
	}
	return false, p.push(ctx, pushCtx, c, message)
}

// push runs one consumer push on its own goroutine and waits until pushCtx
// expires. The push receives pushCtx, so a consumer that honours it is
// cancelled; one that does not keeps running unobserved after the wait
// returns.
func (p *OnlyOnce) push(ctx, pushCtx context.Context, c Consumer, message string) error {
	timer := metrics.NewTimer()
	done := make(chan error, 1)
	go func() {
		done <- c.Push(pushCtx, message)
	}()

	select {
	case err := <-done:
		timer.ObserveDurationVec(metrics.PushDuration, p.channel)
		return err
	case <-pushCtx.Done():
		if err := ctx.Err(); err != nil {
			return err
		}
		metrics.PushTimeouts.WithLabelValues(p.channel).Inc()
		return fmt.Errorf("%w after %s", ErrPushTimeout, p.maxPushWait)
	}
}
