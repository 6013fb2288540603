// Package logger builds the session's zap logger. stdout belongs to the
// lessons, so records only ever go to a rotating JSON file.
package logger

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/xid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options holds configuration for the logger.
type Options struct {
	// LogFilePath is where records are written. Empty disables logging.
	LogFilePath string
	// Level is the minimum level written to the file.
	Level zapcore.Level
	// MaxSizeMB rotates the file once it grows past this size.
	MaxSizeMB int
	// MaxBackups is how many rotated files are kept.
	MaxBackups int
	// TimestampFormat defaults to time.RFC3339.
	TimestampFormat string
}

// DefaultOptions logs debug and up, rotating at 5 MB with three backups.
func DefaultOptions() Options {
	return Options{
		Level:           zapcore.DebugLevel,
		MaxSizeMB:       5,
		MaxBackups:      3,
		TimestampFormat: time.RFC3339,
	}
}

// New returns a logger whose records carry a fresh session id. Without a
// file path the logger discards everything.
func New(opts Options) (*zap.Logger, error) {
	if opts.LogFilePath == "" {
		return zap.NewNop(), nil
	}
	if opts.TimestampFormat == "" {
		opts.TimestampFormat = time.RFC3339
	}

	sink := &lumberjack.Logger{
		Filename:   opts.LogFilePath,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
	}
	// lumberjack opens lazily; fail now rather than on the first record.
	if _, err := sink.Write(nil); err != nil {
		return nil, errors.Wrapf(err, "failed to open log file %s", opts.LogFilePath)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(opts.TimestampFormat)
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(sink), opts.Level)
	return zap.New(core).With(zap.String("session", xid.New().String())), nil
}
