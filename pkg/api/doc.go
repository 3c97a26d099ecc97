/*
Package api provides the operational HTTP endpoints of eventd and the gRPC
interceptors that instrument its API.

# Endpoints

	GET /health   liveness; 503 when any registered component is unhealthy
	GET /ready    readiness; 503 until the store, channels and gRPC
	              components all report healthy
	GET /metrics  Prometheus exposition

Both JSON endpoints reject other methods with 405.

# Interceptors

MetricsUnaryInterceptor and MetricsStreamInterceptor count every call by
method and status code and observe its duration:

	eventchannel_api_requests_total{method,status}
	eventchannel_api_request_duration_seconds{method}
*/
package api
