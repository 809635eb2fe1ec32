// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines
// the configuration structure and the derived values it needs: listen
// address, upload body limit and graceful shutdown deadline.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings and by the start command to configure Fiber.
package server
