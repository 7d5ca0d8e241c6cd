package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileConfig enables an additional rotating log file.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type options struct {
	file    *FileConfig
	outputs []string
}

// Option customizes the logger built by New.
type Option func(*options)

// WithFile duplicates every entry into a rotating file. An empty path disables it.
func WithFile(cfg FileConfig) Option {
	return func(o *options) {
		if strings.TrimSpace(cfg.Path) == "" {
			return
		}
		o.file = &cfg
	}
}

// WithOutput replaces the default stdout destination, e.g. with "stderr" when stdout carries data.
func WithOutput(paths ...string) Option {
	return func(o *options) {
		if len(paths) == 0 {
			return
		}
		o.outputs = paths
	}
}

func New(json bool, debug bool, opts ...Option) (*zap.Logger, error) {
	o := options{outputs: []string{"stdout"}}
	for _, opt := range opts {
		opt(&o)
	}

	level := zapcore.InfoLevel
	encoding := "console"

	if json {
		encoding = "json"
	}

	if debug {
		level = zapcore.DebugLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		MessageKey: "step",

		LevelKey:    "level",
		EncodeLevel: zapcore.LowercaseLevelEncoder,

		TimeKey:    "time",
		EncodeTime: zapcore.RFC3339TimeEncoder,

		CallerKey:    "caller",
		EncodeCaller: zapcore.ShortCallerEncoder,
	}

	cfg := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      o.outputs,
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    encoderConfig,
	}

	var buildOpts []zap.Option
	if o.file != nil {
		fileCore := newFileCore(*o.file, encoderConfig, cfg.Level)
		buildOpts = append(buildOpts, zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, fileCore)
		}))
	}

	logger, err := cfg.Build(buildOpts...)
	if err != nil {
		return nil, err
	}
	defer logger.Sync()

	return logger, nil
}

// Files are always written as JSON so they stay machine readable regardless of the console format.
func newFileCore(cfg FileConfig, encoderConfig zapcore.EncoderConfig, level zapcore.LevelEnabler) zapcore.Core {
	writer := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}

	return zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(writer), level)
}
