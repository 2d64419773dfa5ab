package logger

import (
	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/influxdata/stopwatch"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// TraceIDKey is the logging context key used for identifying unique traces.
	TraceIDKey = "trace_id"

	// OperationNameKey is the logging context key used for identifying name of an operation.
	OperationNameKey = "op_name"

	// OperationEventKey is the logging context key used for identifying a notable
	// event during the course of an operation.
	OperationEventKey = "op_event"

	// OperationElapsedKey is the logging context key used for identifying elapsed time for performing an operation.
	OperationElapsedKey = "op_elapsed"

	eventStart = "start"
	eventEnd   = "end"
)

// TraceID returns a field for tracking the trace identifier.
func TraceID(id string) zapcore.Field {
	return zap.String(TraceIDKey, id)
}

// OperationName returns a field for tracking the name of an operation.
func OperationName(name string) zapcore.Field {
	return zap.String(OperationNameKey, name)
}

// OperationElapsed returns a field for tracking the duration of an operation.
func OperationElapsed(sw *stopwatch.Stopwatch) zapcore.Field {
	return zap.Duration(OperationElapsedKey, sw.Elapsed())
}

// OperationEventStart returns a field for tracking the start of an operation.
func OperationEventStart() zapcore.Field {
	return zap.String(OperationEventKey, eventStart)
}

// OperationEventEnd returns a field for tracking the end of an operation.
func OperationEventEnd() zapcore.Field {
	return zap.String(OperationEventKey, eventEnd)
}

// NewOperation uses the exiting log to create a new logger with context
// containing a trace id and the operation. Prior to returning, a standardized message
// is logged indicating the operation has started. The returned function should be
// called when the operation concludes in order to log a corresponding message which
// includes an elapsed time and that the operation has ended.
func NewOperation(log *zap.Logger, msg, name string, fields ...zapcore.Field) (*zap.Logger, func()) {
	return newOperation(nil, log, msg, name, fields...)
}

func newOperation(clk clock.Clock, log *zap.Logger, msg, name string, fields ...zapcore.Field) (*zap.Logger, func()) {
	f := []zapcore.Field{TraceID(uuid.NewString()), OperationName(name)}
	if len(fields) > 0 {
		f = append(f, fields...)
	}

	sw := stopwatch.StartNew(stopwatch.WithClock(clk))
	log = log.With(f...)
	log.Info(msg+" (start)", OperationEventStart())

	return log, func() {
		sw.Stop()
		log.Info(msg+" (end)", OperationEventEnd(), OperationElapsed(sw))
	}
}
