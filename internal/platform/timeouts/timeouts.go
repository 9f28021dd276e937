// Package timeouts defines shared timeout constants for the jweb processes.
package timeouts

import "time"

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long servers wait for in-flight requests during
// graceful shutdown.
const Shutdown = 5 * time.Second

// HealthProbe caps a single gRPC health check round trip.
const HealthProbe = time.Second

// WebSocketIdle closes AJAX websocket connections that stay silent this long.
const WebSocketIdle = 2 * time.Minute
