// Package server manages the lifecycle of the transport servers: creation,
// startup, signal-driven graceful shutdown.
package server
