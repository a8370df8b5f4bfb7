// Package logging builds the process's zap.Logger and owns the single
// process-wide diagnostic-to-stderr toggle.
package logging

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a logger whose level comes from LOG_LEVEL and whose
// encoding/destination come from ENV: "prod" writes JSON to a
// rotating file only, anything else writes a readable console
// encoding to both stdout and the rotating file. When
// GDBWIRE_DEBUG_TO_STDERR is set, a second core additionally mirrors
// warnings and above to stderr regardless of ENV.
func New() (*zap.Logger, error) {
	level := levelFromEnv(os.Getenv("LOG_LEVEL"))
	env := strings.ToLower(os.Getenv("ENV"))

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	var encoder zapcore.Encoder
	if env == "prod" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	rotating := &lumberjack.Logger{
		Filename:   "gdbmi.log",
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}

	var sink zapcore.WriteSyncer
	if env == "prod" {
		sink = zapcore.AddSync(rotating)
	} else {
		sink = zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout), zapcore.AddSync(rotating))
	}

	core := zapcore.NewCore(encoder, sink, level)

	if DebugToStderrEnabled() {
		stderrCore := zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(os.Stderr),
			zap.WarnLevel,
		)
		core = zapcore.NewTee(core, stderrCore)
	}

	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)), nil
}

func levelFromEnv(raw string) zapcore.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	case "dpanic":
		return zap.DPanicLevel
	case "panic":
		return zap.PanicLevel
	case "fatal":
		return zap.FatalLevel
	default:
		return zap.InfoLevel
	}
}

var (
	debugToStderrOnce sync.Once
	debugToStderr     bool
)

// DebugToStderrEnabled reports whether GDBWIRE_DEBUG_TO_STDERR is set
// in the process environment. The variable is read once on first call
// and the result is cached for the lifetime of the process, per the
// single-threaded, read-once contract of the flag it backs.
func DebugToStderrEnabled() bool {
	debugToStderrOnce.Do(func() {
		_, debugToStderr = os.LookupEnv("GDBWIRE_DEBUG_TO_STDERR")
	})
	return debugToStderr
}
