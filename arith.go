package stopwatch

import (
	"fmt"
	"time"

	"github.com/influxdata/stopwatch/kit/platform/errors"
)

// The arithmetic helpers operate on the elapsed time at the moment they are
// called and return a new stopped stopwatch sharing the receiver's clock. The
// receiver is left untouched.

func (s *Stopwatch) derive(d time.Duration) *Stopwatch {
	return FromDuration(d, WithClock(s.clock))
}

func errOutOfRange(op string, d time.Duration, by interface{}) error {
	return &errors.Error{
		Code: errors.EUnprocessableEntity,
		Op:   op,
		Msg:  fmt.Sprintf("elapsed time %s by %v is out of range", d, by),
	}
}

// Mul returns a stopwatch holding the elapsed time multiplied by n.
func (s *Stopwatch) Mul(n int64) (*Stopwatch, error) {
	d := s.Elapsed()
	if n < 0 {
		return nil, errOutOfRange("stopwatch.Mul", d, n)
	}
	if n != 0 && d > maxDuration/time.Duration(n) {
		return nil, errOutOfRange("stopwatch.Mul", d, n)
	}
	return s.derive(d * time.Duration(n)), nil
}

// Div returns a stopwatch holding the elapsed time divided by n, truncated
// toward zero.
func (s *Stopwatch) Div(n int64) (*Stopwatch, error) {
	if n <= 0 {
		return nil, &errors.Error{
			Code: errors.EInvalid,
			Op:   "stopwatch.Div",
			Msg:  fmt.Sprintf("divisor must be positive, got %d", n),
		}
	}
	return s.derive(s.Elapsed() / time.Duration(n)), nil
}

// Rem returns a stopwatch holding the remainder of the elapsed time divided by m.
func (s *Stopwatch) Rem(m time.Duration) (*Stopwatch, error) {
	if m <= 0 {
		return nil, &errors.Error{
			Code: errors.EInvalid,
			Op:   "stopwatch.Rem",
			Msg:  fmt.Sprintf("modulus must be positive, got %s", m),
		}
	}
	return s.derive(s.Elapsed() % m), nil
}

// Shl returns a stopwatch holding the elapsed nanoseconds shifted left by n bits.
func (s *Stopwatch) Shl(n uint) (*Stopwatch, error) {
	d := s.Elapsed()
	if d == 0 {
		return s.derive(0), nil
	}
	if n >= 63 || d > maxDuration>>n {
		return nil, errOutOfRange("stopwatch.Shl", d, n)
	}
	return s.derive(d << n), nil
}

// Shr returns a stopwatch holding the elapsed nanoseconds shifted right by n bits.
func (s *Stopwatch) Shr(n uint) *Stopwatch {
	return s.derive(s.Elapsed() >> n)
}
