package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger represents a component for writing messages to log. Its level can
// be changed at runtime with Reload.
type Logger struct {
	*zap.Logger
	lvl zap.AtomicLevel
}

// Prm groups Logger's parameters.
//
// Successful passing non-empty parameters to the NewLogger (if returned error
// is nil) means they are correct and can be used.
type Prm struct {
	level    zapcore.Level
	encoding string
}

// Supported encodings.
const (
	EncodingConsole = "console"
	EncodingJSON    = "json"
)

// SetLevelString sets the minimum logging level. Default is "info".
//
// Returns an error if s is not a string representation of a supporting
// logging level.
//
// Supports the following values:
//   - "debug"
//   - "info"
//   - "warn"
//   - "error"
//   - "dpanic"
//   - "panic"
//   - "fatal"
func (p *Prm) SetLevelString(s string) error {
	return p.level.UnmarshalText([]byte(s))
}

// SetEncoding sets output format. Default is "console".
func (p *Prm) SetEncoding(s string) error {
	switch s {
	case "", EncodingConsole, EncodingJSON:
		p.encoding = s
		return nil
	default:
		return fmt.Errorf("unsupported log encoding %q", s)
	}
}

// NewLogger constructs a new zap logger instance. Constructing with nil
// parameters is safe: default values will be used then.
//
// Logger is built from production logging configuration with:
//   - parameterized level;
//   - console or JSON encoding;
//   - ISO8601 time encoding.
//
// Logger records a stack trace for all messages at or above fatal level.
func NewLogger(prm *Prm) (*Logger, error) {
	if prm == nil {
		prm = new(Prm)
	}

	lvl := zap.NewAtomicLevelAt(prm.level)

	c := zap.NewProductionConfig()
	c.Level = lvl
	c.Encoding = EncodingConsole
	if prm.encoding != "" {
		c.Encoding = prm.encoding
	}
	c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	lZap, err := c.Build(
		zap.AddStacktrace(zap.NewAtomicLevelAt(zap.FatalLevel)),
	)
	if err != nil {
		return nil, err
	}

	return &Logger{Logger: lZap, lvl: lvl}, nil
}

// Reload applies level from prm to the running logger. Encoding can not be
// changed at runtime.
func (l *Logger) Reload(prm Prm) {
	l.lvl.SetLevel(prm.level)
}

// Level returns current logging level.
func (l *Logger) Level() zapcore.Level {
	return l.lvl.Level()
}
