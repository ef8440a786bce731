// Package telemetry provides an opt-in diagnostic hook for encode/decode
// calls: a correlation ID derived from the call's inputs, logged at debug
// level. It never affects wire bytes and is off by default — it exists
// purely so a caller debugging a large encode/decode session can
// correlate log lines across goroutines or retries.
package telemetry

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/ashgrove-oss/valuewire/internal/hash"
)

// Logger wraps an optional *slog.Logger. A nil Logger makes every method a
// no-op, so call sites never need a conditional.
type Logger struct {
	logger *slog.Logger
}

// NewLogger wraps l. Passing nil yields a Logger whose methods are no-ops.
func NewLogger(l *slog.Logger) *Logger {
	return &Logger{logger: l}
}

// CorrelationID derives a short, stable hex ID for a value of the given
// kind and byte length, for tying together the debug lines of a single
// encode or decode call.
func CorrelationID(kind string, length int) string {
	id := hash.ID(kind + ":" + strconv.Itoa(length))
	return strconv.FormatUint(id, 16)
}

// EncodeStart logs the beginning of an encode call, if logging is enabled.
func (l *Logger) EncodeStart(ctx context.Context, corrID string, kind string) {
	if l == nil || l.logger == nil {
		return
	}

	l.logger.DebugContext(ctx, "encode start", "corr_id", corrID, "kind", kind)
}

// EncodeDone logs the end of an encode call, if logging is enabled.
func (l *Logger) EncodeDone(ctx context.Context, corrID string, bytesWritten int, err error) {
	if l == nil || l.logger == nil {
		return
	}

	if err != nil {
		l.logger.DebugContext(ctx, "encode failed", "corr_id", corrID, "error", err)
		return
	}

	l.logger.DebugContext(ctx, "encode done", "corr_id", corrID, "bytes", bytesWritten)
}

// DecodeStart logs the beginning of a decode call, if logging is enabled.
func (l *Logger) DecodeStart(ctx context.Context, corrID string, inputLen int) {
	if l == nil || l.logger == nil {
		return
	}

	l.logger.DebugContext(ctx, "decode start", "corr_id", corrID, "input_bytes", inputLen)
}

// DecodeDone logs the end of a decode call, if logging is enabled.
func (l *Logger) DecodeDone(ctx context.Context, corrID string, err error) {
	if l == nil || l.logger == nil {
		return
	}

	if err != nil {
		l.logger.DebugContext(ctx, "decode failed", "corr_id", corrID, "error", err)
		return
	}

	l.logger.DebugContext(ctx, "decode done", "corr_id", corrID)
}
