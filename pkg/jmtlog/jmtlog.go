// Package jmtlog provides the structured logger shared by the core
// packages. Consumers embedding the core should not see log output by
// default; SetLogger swaps in a real sink (e.g. a production zap.Logger)
// when the host application wants diagnostics.
package jmtlog

import "go.uber.org/zap"

var logger = zap.NewNop().Sugar()

// SetLogger replaces the package-level logger. Passing nil restores the
// no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		logger = zap.NewNop().Sugar()
		return
	}
	logger = l.Sugar()
}

// L returns the current package-level logger.
func L() *zap.SugaredLogger {
	return logger
}
