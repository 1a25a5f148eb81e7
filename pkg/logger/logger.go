package logger

import (
	"go.uber.org/zap"
)

var log = zap.NewNop().Sugar()

// Init builds the process-wide logger. Production uses the JSON encoder,
// everything else the human readable development encoder.
func Init(environment string) {
	var cfg zap.Config
	if environment == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		l = zap.NewNop()
	}

	log = l.Sugar()
}

// Use replaces the underlying logger, mostly for tests (zaptest.NewLogger).
func Use(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	log = l.WithOptions(zap.AddCallerSkip(1)).Sugar()
}

func Debug(msg string, keysAndValues ...interface{}) {
	log.Debugw(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...interface{}) {
	log.Infow(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...interface{}) {
	log.Warnw(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...interface{}) {
	log.Errorw(msg, keysAndValues...)
}

func Fatal(msg string, keysAndValues ...interface{}) {
	log.Fatalw(msg, keysAndValues...)
}

// Sync flushes buffered entries, call it before exit.
func Sync() error {
	return log.Sync()
}
