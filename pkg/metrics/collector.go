package metrics

import (
	"time"
)

// ChannelStats is a point-in-time view of one channel
type ChannelStats struct {
	Name       string
	Persistent bool
	QueueDepth int
	Consumers  int
	Suppliers  int
}

// StatsSource lists the channels the collector samples
type StatsSource interface {
	Stats() []ChannelStats
}

// Collector periodically samples channel gauges
type Collector struct {
	source   StatsSource
	interval time.Duration
	stopCh   chan struct{}
	seen     map[string]struct{}
}

// NewCollector creates a new metrics collector
func NewCollector(source StatsSource) *Collector {
	return &Collector{
		source:   source,
		interval: 15 * time.Second,
		stopCh:   make(chan struct{}),
		seen:     make(map[string]struct{}),
	}
}

// Start begins collecting metrics
func (c *Collector) Start() {
	ticker := time.NewTicker(c.interval)
	go func() {
		// Collect immediately on start
		c.collect()

		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.stopCh:
				ticker.Stop()
				return
			}
		}
	}()
}

// Stop stops the collector
func (c *Collector) Stop() {
	close(c.stopCh)
}

func (c *Collector) collect() {
	stats := c.source.Stats()
	ChannelsTotal.Set(float64(len(stats)))

	current := make(map[string]struct{}, len(stats))
	for _, s := range stats {
		current[s.Name] = struct{}{}
		QueueDepth.WithLabelValues(s.Name).Set(float64(s.QueueDepth))
		ConsumersAttached.WithLabelValues(s.Name).Set(float64(s.Consumers))
		SuppliersAttached.WithLabelValues(s.Name).Set(float64(s.Suppliers))
	}

	// Drop series of channels removed since the last pass
	for name := range c.seen {
		if _, ok := current[name]; !ok {
			QueueDepth.DeleteLabelValues(name)
			ConsumersAttached.DeleteLabelValues(name)
			SuppliersAttached.DeleteLabelValues(name)
		}
	}
	c.seen = current
}
