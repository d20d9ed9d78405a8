package monitoring

import "go.uber.org/zap"

// Logf is the package-level diagnostic logger for state changes. It defaults
// to a zap production logger at info level but may be replaced by SetLogger.
// Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = defaultLogger().Infof

// Warnf reports rejected input and other recoverable failures.
var Warnf func(format string, v ...interface{}) = defaultLogger().Warnf

var base *zap.SugaredLogger

func defaultLogger() *zap.SugaredLogger {
	if base != nil {
		return base
	}
	l, err := zap.NewProduction()
	if err != nil {
		l = zap.NewNop()
	}
	base = l.Sugar()
	return base
}

// SetLogger replaces the info logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	Logf = orNop(f)
}

// SetWarnLogger replaces the warning logger. Passing nil will set a no-op logger.
func SetWarnLogger(f func(format string, v ...interface{})) {
	Warnf = orNop(f)
}

// UseZap routes both loggers through l. Passing nil mutes them.
func UseZap(l *zap.Logger) {
	if l == nil {
		SetLogger(nil)
		SetWarnLogger(nil)
		return
	}
	s := l.Sugar()
	Logf = s.Infof
	Warnf = s.Warnf
}

func orNop(f func(format string, v ...interface{})) func(format string, v ...interface{}) {
	if f == nil {
		return func(string, ...interface{}) {}
	}
	return f
}
