// Package lgr builds the zap logger used by the commands.
package lgr

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

func newEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// ParseFormat accepts "console" or "json" in any case.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(s); f {
	case FormatConsole, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("invalid log format %q, must be %q or %q", s, FormatConsole, FormatJSON)
	}
}

// New returns a logger writing entries at level or above to w.
func New(w io.Writer, level zapcore.Level, format string) (*zap.Logger, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}

	var enc zapcore.Encoder
	if f == FormatJSON {
		enc = zapcore.NewJSONEncoder(newEncoderConfig())
	} else {
		cfg := newEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.CallerKey = zapcore.OmitKey
		enc = zapcore.NewConsoleEncoder(cfg)
	}
	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), zap.NewAtomicLevelAt(level))
	return zap.New(core), nil
}
