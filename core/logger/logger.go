package logger

import (
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TraceLevel is one step more verbose than debug.
const TraceLevel = zapcore.DebugLevel - 1

// ParseLevel parses a level name, accepting "trace" on top of zap's names.
func ParseLevel(s string) (zapcore.Level, error) {
	if strings.EqualFold(s, "trace") {
		return TraceLevel, nil
	}
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(s)
	if err != nil {
		return lvl, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}

// New creates a new zap logger based on the configuration.
func New(cfg *Config) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	mode, err := ParseColorMode(cfg.Color)
	if err != nil {
		return nil, err
	}

	var config zap.Config

	if level <= zapcore.DebugLevel {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}
	config.Level = zap.NewAtomicLevelAt(level)

	// Set format based on configuration
	if cfg.Format == "json" {
		config.Encoding = "json"
		config.EncoderConfig.EncodeLevel = levelEncoder(false)
	} else {
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = levelEncoder(mode.Enabled(os.Stderr))
		config.DisableStacktrace = true
	}

	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.MessageKey = "message"

	return config.Build()
}

func levelEncoder(color bool) zapcore.LevelEncoder {
	return func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		switch {
		case l == TraceLevel && color:
			enc.AppendString("\x1b[35mTRACE\x1b[0m")
		case l == TraceLevel:
			enc.AppendString("TRACE")
		case color:
			zapcore.CapitalColorLevelEncoder(l, enc)
		default:
			zapcore.CapitalLevelEncoder(l, enc)
		}
	}
}

// Trace logs a message at TraceLevel.
func Trace(l *zap.Logger, msg string, fields ...zap.Field) {
	if ce := l.Check(TraceLevel, msg); ce != nil {
		ce.Write(fields...)
	}
}

// WithRayID returns a logger with the ray_id field set from the Fiber context.
func WithRayID(l *zap.Logger, c *fiber.Ctx) *zap.Logger {
	rid := c.Locals("ray_id")
	if str, ok := rid.(string); ok && str != "" {
		return l.With(zap.String("ray_id", str))
	}
	return l
}
