package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// level is shared by every logger so that SetDebug takes effect on
// loggers already built at package init, not only on ones created
// afterwards.
var level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

// SetDebug flips the shared level of all loggers. Called once at
// startup from config; the PEERWATCH_DEBUG env var forces it on.
func SetDebug(enabled bool) {
	if enabled {
		level.SetLevel(zapcore.DebugLevel)
	} else {
		level.SetLevel(zapcore.InfoLevel)
	}
}

type Logger struct {
	*zap.Logger
}

func (l *Logger) init() error {
	var err error
	if _, debug := os.LookupEnv("PEERWATCH_DEBUG"); debug {
		level.SetLevel(zapcore.DebugLevel)
		zapConfig := zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapConfig.Level = level
		l.Logger, err = zapConfig.Build()
	} else {
		zapConfig := zap.NewProductionConfig()
		zapConfig.Level = level
		l.Logger, err = zapConfig.Build()
	}
	return err
}

// New takes in a package name to initialize the new Logger in.
func New(pkg string) *Logger {
	Log := &Logger{}
	if err := Log.init(); err != nil {
		panic(err)
	}

	Log.Logger = Log.Logger.With(
		zap.String("package", pkg),
	)

	return Log
}
