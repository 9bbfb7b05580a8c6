package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures New.
type Options struct {
	// Level is debug, info, warn or error; empty means info
	Level string

	// File appends log output to a file instead of Output
	File string

	// Format is "json" or "console"; empty picks json for files and
	// console otherwise
	Format string

	// Output is used when File is empty; nil means stderr
	Output io.Writer
}

// ParseLevel maps a level name to a zap level.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// New builds a logger. An unknown level falls back to info and is reported
// through the returned logger once it exists. The returned func flushes the
// logger and closes the log file; it is safe to call when no file is open.
func New(opts Options) (*zap.Logger, func(), error) {
	level, levelErr := ParseLevel(opts.Level)

	format := opts.Format
	if format == "" {
		format = "console"
		if opts.File != "" {
			format = "json"
		}
	}

	var encoder zapcore.Encoder
	switch format {
	case "json":
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	case "console":
		encoder = zapcore.NewConsoleEncoder(developmentEncoderConfig())
	default:
		return nil, nil, fmt.Errorf("unknown log format %q", format)
	}

	closeSink := func() {}
	var sink zapcore.WriteSyncer
	switch {
	case opts.File != "":
		ws, closeFile, err := zap.Open(opts.File)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		sink, closeSink = ws, closeFile
	case opts.Output != nil:
		sink = zapcore.AddSync(opts.Output)
	default:
		sink = zapcore.Lock(os.Stderr)
	}

	log := zap.New(zapcore.NewCore(encoder, sink, zap.NewAtomicLevelAt(level)), zap.AddCaller())
	if levelErr != nil {
		log.Warn("falling back to info level", zap.Error(levelErr))
	}

	cleanup := func() {
		_ = log.Sync()
		closeSink()
	}
	return log, cleanup, nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}

func developmentEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}
