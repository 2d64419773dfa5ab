package logger

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestConfig_New(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{format: "", want: "lvl=info msg=hello run=1"},
		{format: "auto", want: "lvl=info msg=hello run=1"},
		{format: "logfmt", want: "lvl=info msg=hello run=1"},
		{format: "json", want: `"lvl":"info","ts":`},
		{format: "console", want: "info\thello"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			c := NewConfig()
			c.Format = tt.format

			log, err := c.New(&buf)
			require.NoError(t, err)
			log.Info("hello", zap.Int("run", 1))
			log.Debug("hidden")

			assert.Contains(t, buf.String(), tt.want)
			assert.NotContains(t, buf.String(), "hidden")
		})
	}
}

func TestConfig_NewUnknownFormat(t *testing.T) {
	c := Config{Format: "xml"}
	_, err := c.New(&bytes.Buffer{})
	require.EqualError(t, err, "unknown logging format: xml")
}

func TestConfig_NewDurationEncoding(t *testing.T) {
	var buf bytes.Buffer
	c := Config{Format: "logfmt", Level: zapcore.DebugLevel}
	log, err := c.New(&buf)
	require.NoError(t, err)

	log.Debug("timed", zap.Duration("elapsed", 1500*time.Microsecond))
	assert.Contains(t, buf.String(), "elapsed=1.500ms")
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

func TestFromContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	log := zap.NewExample()
	ctx := NewContextWithLogger(context.Background(), log)
	assert.Same(t, log, FromContext(ctx))
}

func TestNewOperation(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	mock := clock.NewMock()

	log, done := newOperation(mock, zap.New(core), "Timing command", "run_command", zap.String("cmd", "true"))
	log.Info("inside")
	mock.Add(250 * time.Millisecond)
	done()

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)

	start, inside, end := entries[0].ContextMap(), entries[1].ContextMap(), entries[2].ContextMap()
	assert.Equal(t, "Timing command (start)", entries[0].Message)
	assert.Equal(t, "Timing command (end)", entries[2].Message)

	assert.Equal(t, eventStart, start[OperationEventKey])
	assert.Equal(t, eventEnd, end[OperationEventKey])
	assert.Equal(t, "run_command", inside[OperationNameKey])
	assert.Equal(t, "true", inside["cmd"])
	assert.NotEmpty(t, start[TraceIDKey])
	assert.Equal(t, start[TraceIDKey], end[TraceIDKey])
	assert.Equal(t, 250*time.Millisecond, end[OperationElapsedKey])
}
