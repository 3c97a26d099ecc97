/*
Package transport exposes event channels over gRPC.

Both services are generated from api/proto/eventchannel.proto.

eventchannel.v1.BrokerService, served by eventd:
  - ConnectSupplier, Push, DisconnectSupplier for producers
  - Subscribe, Unsubscribe for consumers
  - ListChannels, Reset and the Watch stream for operators

eventchannel.v1.ConsumerService, served by every subscriber:
  - Deliver receives one pushed event
  - Disconnect tells the subscriber it was detached

Requests name the target channel and, after connecting, the proxy
connection id the broker returned. A session is forgotten as soon as its
proxy is detached, whether by the client, a stale-peer prune or the
channel being destroyed.

A subscriber runs a ConsumerServer and passes its address to Subscribe.
The broker dials it back as a RemoteConsumer, which probes liveness with
the standard gRPC health service and pushes through a circuit breaker.
An Unavailable status is treated as proof that the consumer is gone;
every other error leaves it attached.
*/
package transport
