package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls how the process logger is built.
type Options struct {
	Mode       string // "production" or "development"
	Level      string
	Filename   string // rotated JSON log file, empty disables file output
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New builds a zap logger writing to stdout and, when Filename is set, to a
// lumberjack-rotated file.
func New(opts Options) (*zap.Logger, error) {
	var zapConfig zap.Config
	if opts.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	if opts.Level != "" {
		level, err := zap.ParseAtomicLevel(opts.Level)
		if err != nil {
			return nil, err
		}
		zapConfig.Level = level
	}
	zapConfig.OutputPaths = []string{"stdout"}

	if opts.Filename == "" {
		return zapConfig.Build(zap.AddCaller())
	}

	rotator := &lumberjack.Logger{
		Filename:   opts.Filename,
		MaxSize:    orDefault(opts.MaxSizeMB, 64),
		MaxBackups: orDefault(opts.MaxBackups, 7),
		MaxAge:     orDefault(opts.MaxAgeDays, 7),
	}

	core := zapcore.NewTee(
		zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(rotator),
			zapConfig.Level,
		),
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.AddSync(os.Stdout),
			zapConfig.Level,
		),
	)
	return zap.New(core, zap.AddCaller()), nil
}

// Init builds the logger and installs it as the zap global.
func Init(opts Options) (*zap.Logger, error) {
	l, err := New(opts)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(l)
	return l, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
