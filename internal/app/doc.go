// Package app wires the application together: configuration, logging,
// metrics, the dataset service and the HTTP server, plus lifecycle
// management with graceful shutdown.
package app
