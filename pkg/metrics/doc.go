/*
Package metrics provides Prometheus metrics and component health tracking
for the event channel server.

Metrics are package-level collectors registered at init and exposed on
/metrics through Handler. Gauges that describe channel state (queue depth,
attached proxies) are sampled by a Collector from any StatsSource, normally
the channel Registry. Counters and histograms on the delivery path are
updated inline by the channel and policy packages.

# Metrics Catalog

Channel:
  - eventchannel_channels_total
  - eventchannel_events_enqueued_total{channel}
  - eventchannel_queue_depth{channel}
  - eventchannel_consumers_attached{channel}
  - eventchannel_suppliers_attached{channel}

Delivery:
  - eventchannel_deliveries_total{channel,outcome}
  - eventchannel_consumer_push_duration_seconds{channel}
  - eventchannel_consumer_push_timeouts_total{channel}
  - eventchannel_stale_peers_pruned_total{channel,kind}

Durable store:
  - eventchannel_events_reset_total{channel}
  - eventchannel_store_errors_total{channel,operation}

API:
  - eventchannel_api_requests_total{method,status}
  - eventchannel_api_request_duration_seconds{method}

# Health

HealthChecker tracks named components. /health is unhealthy when any
component is; /ready additionally requires every critical component
(store, channels, grpc by default) to be registered and healthy.

# Usage

	timer := metrics.NewTimer()
	err := consumer.Push(ctx, ev.Message)
	timer.ObserveDurationVec(metrics.PushDuration, ev.ChannelName)

	collector := metrics.NewCollector(registry)
	collector.Start()
	defer collector.Stop()
*/
package metrics
