package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"
)

type levelValue zapcore.Level

func newLevelValue(val zapcore.Level, p *zapcore.Level) *levelValue {
	*p = val
	return (*levelValue)(p)
}

func (l *levelValue) String() string {
	return zapcore.Level(*l).String()
}

func (l *levelValue) Set(s string) error {
	var level zapcore.Level
	if err := level.Set(s); err != nil {
		return fmt.Errorf("unknown log level; supported levels are debug, info, warn, error")
	}
	*l = levelValue(level)
	return nil
}

func (l *levelValue) Type() string {
	return "Log-Level"
}

// LevelVar defines a zapcore.Level flag with specified name, default value, and usage string.
// The argument p points to a zapcore.Level variable in which to store the value of the flag.
func LevelVar(fs *pflag.FlagSet, p *zapcore.Level, name string, value zapcore.Level, usage string) {
	fs.Var(newLevelValue(value, p), name, usage)
}

// Choice is a string flag restricted to a fixed set of values.
type Choice struct {
	Value   string
	Allowed []string
}

// NewChoice returns a Choice defaulting to the first allowed value.
func NewChoice(allowed ...string) *Choice {
	c := &Choice{Allowed: allowed}
	if len(allowed) > 0 {
		c.Value = allowed[0]
	}
	return c
}

func (c *Choice) String() string {
	return c.Value
}

func (c *Choice) Set(s string) error {
	for _, a := range c.Allowed {
		if s == a {
			c.Value = s
			return nil
		}
	}
	return fmt.Errorf("unsupported value %q; supported values are %s", s, strings.Join(c.Allowed, ", "))
}

func (c *Choice) Type() string {
	return "string"
}
