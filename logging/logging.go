// Package logging provides the structured logger passed into planners.
// It is a trimmed port of go.viam.com/rdk/logging: a small Logger interface
// backed by zap, with per-component Subloggers so a planner run's log lines
// can be told apart from another's. The gRPC debug-context plumbing and the
// cloud log-forwarding appender that the original carries are not relevant
// to a library with no wire protocol, and are not ported.
package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// Logger is the structured logging interface every planner and helper
// accepts. It intentionally mirrors zap's SugaredLogger method set closely
// enough that AsZap()'s result can be used as a drop-in when a caller wants
// the full zap API.
type Logger interface {
	Debugf(template string, args ...interface{})
	Debugw(msg string, keysAndValues ...interface{})
	Infof(template string, args ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnf(template string, args ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorf(template string, args ...interface{})
	Errorw(msg string, keysAndValues ...interface{})

	// Sublogger returns a Logger whose name is "parent.name", used to tag
	// log lines with the planner instance that produced them.
	Sublogger(name string) Logger

	// AsZap exposes the underlying sugared logger for callers that need it.
	AsZap() *zap.SugaredLogger
}

type impl struct {
	name string
	zl   *zap.SugaredLogger
}

// NewLogger returns an info-level logger that writes to stderr.
func NewLogger(name string) Logger {
	zl, err := zap.NewProduction()
	if err != nil {
		zl = zap.NewNop()
	}
	return &impl{name: name, zl: zl.Sugar().Named(name)}
}

// NewDebugLogger returns a debug-level logger that writes to stderr.
func NewDebugLogger(name string) Logger {
	zl, err := zap.NewDevelopment()
	if err != nil {
		zl = zap.NewNop()
	}
	return &impl{name: name, zl: zl.Sugar().Named(name)}
}

// NewTestLogger returns a debug-level logger that writes through t.Log, so
// output is only shown for failing (or -v) tests.
func NewTestLogger(tb testing.TB) Logger {
	zl := zaptest.NewLogger(tb, zaptest.Level(zap.DebugLevel))
	return &impl{name: "", zl: zl.Sugar()}
}

func (l *impl) Debugf(template string, args ...interface{})      { l.zl.Debugf(template, args...) }
func (l *impl) Debugw(msg string, kv ...interface{})              { l.zl.Debugw(msg, kv...) }
func (l *impl) Infof(template string, args ...interface{})       { l.zl.Infof(template, args...) }
func (l *impl) Infow(msg string, kv ...interface{})               { l.zl.Infow(msg, kv...) }
func (l *impl) Warnf(template string, args ...interface{})       { l.zl.Warnf(template, args...) }
func (l *impl) Warnw(msg string, kv ...interface{})                { l.zl.Warnw(msg, kv...) }
func (l *impl) Errorf(template string, args ...interface{})      { l.zl.Errorf(template, args...) }
func (l *impl) Errorw(msg string, kv ...interface{})               { l.zl.Errorw(msg, kv...) }

func (l *impl) Sublogger(name string) Logger {
	newName := name
	if l.name != "" {
		newName = l.name + "." + name
	}
	return &impl{name: newName, zl: l.zl.Named(name)}
}

func (l *impl) AsZap() *zap.SugaredLogger {
	return l.zl
}
