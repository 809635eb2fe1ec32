// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance for the command line (console
// encoding, colored levels when the terminal allows it) and for the HTTP
// server (json encoding), and integrates with the Fiber web framework.
//
// # Verbosity
//
// The CLI -v flag is repeatable. Each occurrence lowers the minimum level:
// info by default, debug with -v, trace with -vv. Trace sits one step below
// debug and is used for per-node traversal logs (every visited mission table,
// every discovered stock livery).
//
// # Color
//
// Color is one of auto, always or never. Auto enables colored level names
// only when stderr is a terminal.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID from a Fiber context and attaches it
// to the log entry, so all logs of a request can be correlated.
//
// # Usage
//
//	cfg := logger.Config{Level: "info", Format: "console", Color: "auto"}
//	log, _ := logger.New(cfg.WithVerbosity(2))
//	logger.Trace(log, "Searching", zap.String("path", "blue.country.1"))
package logger
