package stopwatch_test

import (
	"math"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/influxdata/stopwatch"
	"github.com/influxdata/stopwatch/kit/platform/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopwatch_Mul(t *testing.T) {
	sw := stopwatch.FromDuration(1500 * time.Millisecond)

	got, err := sw.Mul(3)
	require.NoError(t, err)
	assert.Equal(t, 4500*time.Millisecond, got.Elapsed())
	assert.False(t, got.IsRunning())
	assert.Equal(t, 1500*time.Millisecond, sw.Elapsed(), "receiver must not change")

	got, err = sw.Mul(0)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), got.Elapsed())

	_, err = sw.Mul(math.MaxInt64)
	require.Error(t, err)
	assert.Equal(t, errors.EUnprocessableEntity, errors.ErrorCode(err))
	assert.Equal(t, "stopwatch.Mul", errors.ErrorOp(err))

	_, err = sw.Mul(-1)
	assert.Equal(t, errors.EUnprocessableEntity, errors.ErrorCode(err))
}

func TestStopwatch_Div(t *testing.T) {
	sw := stopwatch.FromDuration(10 * time.Second)

	got, err := sw.Div(4)
	require.NoError(t, err)
	assert.Equal(t, 2500*time.Millisecond, got.Elapsed())

	for _, n := range []int64{0, -2} {
		_, err := sw.Div(n)
		require.Error(t, err)
		assert.Equal(t, errors.EInvalid, errors.ErrorCode(err))
	}
}

func TestStopwatch_Rem(t *testing.T) {
	sw := stopwatch.FromDuration(2750 * time.Millisecond)

	got, err := sw.Rem(time.Second)
	require.NoError(t, err)
	assert.Equal(t, 750*time.Millisecond, got.Elapsed())

	_, err = sw.Rem(0)
	assert.Equal(t, errors.EInvalid, errors.ErrorCode(err))
}

func TestStopwatch_Shifts(t *testing.T) {
	sw := stopwatch.FromDuration(3 * time.Second)

	got, err := sw.Shl(2)
	require.NoError(t, err)
	assert.Equal(t, 12*time.Second, got.Elapsed())

	assert.Equal(t, 1500*time.Millisecond, sw.Shr(1).Elapsed())
	assert.Equal(t, time.Duration(0), sw.Shr(64).Elapsed())

	_, err = sw.Shl(40)
	require.Error(t, err)
	assert.Equal(t, errors.EUnprocessableEntity, errors.ErrorCode(err))

	got, err = stopwatch.New().Shl(100)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), got.Elapsed())
}

func TestStopwatch_ArithmeticUsesCurrentElapsedAndClock(t *testing.T) {
	mock := clock.NewMock()
	sw := stopwatch.StartNew(stopwatch.WithClock(mock))
	mock.Add(time.Second)

	doubled, err := sw.Mul(2)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, doubled.Elapsed())
	assert.False(t, doubled.IsRunning())
	assert.True(t, sw.IsRunning())

	// the derived stopwatch reads from the same clock
	doubled.Start()
	mock.Add(time.Second)
	assert.Equal(t, 3*time.Second, doubled.Elapsed())
}
