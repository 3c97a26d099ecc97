/*
Package server assembles a running eventd process.

New opens the bbolt store under the data directory, creates every channel
listed in the configuration plus the admin channel, and prepares the gRPC
API and the HTTP health and metrics endpoints. Start binds both listeners
and begins serving. Stop reverses this: the gRPC API stops, every channel
is destroyed (its dispatcher stopped and its connections torn down), the
HTTP server and background workers stop and the store is closed.

Readiness is gated on three components: the store (probed every 30s),
the channels and the gRPC server.
*/
package server
