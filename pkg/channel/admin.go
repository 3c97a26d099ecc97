package channel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cuemby/eventchannel/pkg/events"
	"github.com/cuemby/eventchannel/pkg/metrics"
	"github.com/cuemby/eventchannel/pkg/queue"
	"github.com/cuemby/eventchannel/pkg/storage"
	"github.com/cuemby/eventchannel/pkg/types"
)

// DefaultAdminChannel is the name the admin channel is registered under
const DefaultAdminChannel = "admin"

// ErrInvalidCommand is returned for admin payloads that are not a valid
// reset command
var ErrInvalidCommand = errors.New("invalid reset command")

// Admin is a channel whose producer pushes are reset commands against the
// durable store. Nothing is ever queued on it, so it needs no consumers.
type Admin struct {
	*Channel

	store    storage.EventStore
	registry *Registry
}

// NewAdmin creates the admin channel. Target channels are looked up in
// registry to be woken after a reset.
func NewAdmin(name string, store storage.EventStore, registry *Registry, opts ...Option) (*Admin, error) {
	if store == nil {
		return nil, queue.ErrNoStore
	}
	if registry == nil {
		return nil, fmt.Errorf("%w: admin channel needs a registry", ErrInvalidConfig)
	}

	cfg := Config{Name: name, RelaxLivenessChecks: true}.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Admin{store: store, registry: registry}
	opts = append(opts, withIngest(a.ingest), withSelfConsuming())
	a.Channel = newChannel(cfg, queue.NewTransient(name), opts...)
	return a, nil
}

// ParseResetCommand decodes a JSON reset command
func ParseResetCommand(payload string) (types.ResetRequest, error) {
	var req types.ResetRequest

	dec := json.NewDecoder(strings.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return types.ResetRequest{}, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}
	if err := req.Validate(); err != nil {
		return types.ResetRequest{}, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}
	return req, nil
}

// Apply moves the failed events selected by req back to awaiting retry,
// wakes the target channel and returns how many events were reset
func (a *Admin) Apply(ctx context.Context, req types.ResetRequest) (int, error) {
	if a.State() != StateActive {
		return 0, ErrChannelUnavailable
	}

	n, err := queue.ResetFailed(a.store, req)
	if err != nil {
		return 0, fmt.Errorf("failed to reset events of channel %s: %w", req.ChannelName, err)
	}
	metrics.EventsReset.WithLabelValues(req.ChannelName).Add(float64(n))

	logEvent := a.logger.Info().
		Str("target", req.ChannelName).
		Int("reset", n)
	if req.EventID != nil {
		logEvent = logEvent.Int64("event_id", *req.EventID)
	}
	logEvent.Msg("Reset failed events")

	if a.events != nil {
		a.events.Publish(&events.Event{
			Type:     events.EventFailedEventsReset,
			Channel:  req.ChannelName,
			Message:  fmt.Sprintf("%d events reset", n),
			Metadata: map[string]string{"count": strconv.Itoa(n)},
		})
	}

	target, err := a.registry.Lookup(req.ChannelName)
	if err != nil {
		a.logger.Warn().Str("target", req.ChannelName).Msg("Reset target is not a live channel")
		return n, nil
	}
	target.Alert()
	return n, nil
}

func (a *Admin) ingest(ctx context.Context, payload string) error {
	req, err := ParseResetCommand(payload)
	if err != nil {
		a.logger.Warn().Err(err).Msg("Rejected admin payload")
		return err
	}
	_, err = a.Apply(ctx, req)
	return err
}
