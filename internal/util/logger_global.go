package util

import (
	"sync"
)

var (
	globalLogger LoggerInterface
	loggerMu     sync.RWMutex
)

// InitLogger installs the global logger. A file that cannot be opened falls
// back to console-only logging when debugToConsole is set.
func InitLogger(logLevel, logFile string, format LogFormat, debugToConsole bool) error {
	logger, err := NewLogger(logLevel, logFile, format, debugToConsole)
	if err != nil {
		if !debugToConsole {
			return err
		}
		logger, _ = NewLogger(logLevel, "", format, true)
		logger.Warnf("Logging to console only: %v", err)
	}
	SetLogger(logger)
	return nil
}

// SetLogger replaces the global logger, closing the previous one.
func SetLogger(logger LoggerInterface) {
	loggerMu.Lock()
	prev := globalLogger
	globalLogger = logger
	loggerMu.Unlock()

	if prev != nil {
		_ = prev.Close()
	}
}

func current() LoggerInterface {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return globalLogger
}

// LogWith returns a child of the global logger carrying fields. Without a
// global logger the child discards everything.
func LogWith(fields ...Field) LoggerInterface {
	if l := current(); l != nil {
		return l.With(fields...)
	}
	return &Logger{fields: make(map[string]interface{})}
}

func LogInfo(msg string, fields ...Field) {
	if l := current(); l != nil {
		l.Info(msg, fields...)
	}
}

func LogInfof(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.Infof(format, args...)
	}
}

func LogDebug(msg string, fields ...Field) {
	if l := current(); l != nil {
		l.Debug(msg, fields...)
	}
}

func LogDebugf(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.Debugf(format, args...)
	}
}

func LogWarn(msg string, fields ...Field) {
	if l := current(); l != nil {
		l.Warn(msg, fields...)
	}
}

func LogWarnf(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.Warnf(format, args...)
	}
}

func LogError(msg string, fields ...Field) {
	if l := current(); l != nil {
		l.Error(msg, fields...)
	}
}

func LogErrorf(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.Errorf(format, args...)
	}
}
