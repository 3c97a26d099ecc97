package channel

import (
	"context"
	"time"

	"github.com/cuemby/eventchannel/pkg/log"
	"github.com/rs/zerolog"
)

// storeErrorBackoff is how long the dispatcher waits after a store error
// before its next pass
const storeErrorBackoff = time.Second

// dispatcher is the single delivery goroutine of a channel
type dispatcher struct {
	channel      *Channel
	wakeInterval time.Duration

	notifyCh chan struct{}
	ctx      context.Context
	cancel   context.CancelFunc
	doneCh   chan struct{}

	logger zerolog.Logger
}

func newDispatcher(c *Channel, wakeInterval time.Duration) *dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &dispatcher{
		channel:      c,
		wakeInterval: wakeInterval,
		notifyCh:     make(chan struct{}, 1),
		ctx:          ctx,
		cancel:       cancel,
		doneCh:       make(chan struct{}),
		logger:       log.WithChannel("dispatcher", c.Name()),
	}
}

func (d *dispatcher) start() {
	go d.run()
}

// notify wakes the loop; pending wake-ups coalesce
func (d *dispatcher) notify() {
	select {
	case d.notifyCh <- struct{}{}:
	default:
	}
}

// stop cancels the loop and waits for it to exit
func (d *dispatcher) stop() {
	d.cancel()
	<-d.doneCh
}

func (d *dispatcher) run() {
	defer close(d.doneCh)

	ticker := time.NewTicker(d.wakeInterval)
	defer ticker.Stop()

	d.logger.Debug().Dur("wake_interval", d.wakeInterval).Msg("Dispatcher started")

	for {
		for !d.channel.ReadyToDeliverEvents() {
			if !d.wait(ticker) {
				d.logger.Debug().Msg("Dispatcher stopped")
				return
			}
		}

		if d.ctx.Err() != nil || d.channel.State() != StateActive {
			d.logger.Debug().Msg("Dispatcher stopped")
			return
		}

		if err := d.channel.ConsumerPush(d.ctx); err != nil {
			d.logger.Error().Err(err).Msg("Delivery pass failed")
			select {
			case <-time.After(storeErrorBackoff):
			case <-d.ctx.Done():
				return
			}
		}
	}
}

// wait blocks until an alert, the fallback tick or cancellation. It
// returns false when the loop must exit.
func (d *dispatcher) wait(ticker *time.Ticker) bool {
	select {
	case <-d.ctx.Done():
		return false
	case <-d.notifyCh:
	case <-ticker.C:
		// Missed wake-ups are recovered here; stale peers go at the same time
		d.channel.SweepStalePeers(d.ctx)
	}
	return d.ctx.Err() == nil && d.channel.State() == StateActive
}
