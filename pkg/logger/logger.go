package logger

import (
	"fmt"

	"github.com/GlebRadaev/prizepool/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var logLvlMap = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
}

// encoderConfig is colored and human-timed on a terminal, ISO8601 and
// lowercase levels for log shippers.
func encoderConfig(format string) (zapcore.EncoderConfig, error) {
	ec := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	switch format {
	case FormatConsole:
		ec.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05 02-01-2006")
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	case FormatJSON:
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		ec.EncodeLevel = zapcore.LowercaseLevelEncoder
	default:
		return ec, fmt.Errorf("unsupported log format: %s", format)
	}
	return ec, nil
}

func InitLogger(conf *config.Config) error {
	lvl, ok := logLvlMap[conf.LogLvl]
	if !ok {
		return fmt.Errorf("unsupported log lvl: %s", conf.LogLvl)
	}
	format := conf.LogFormat
	if format == "" {
		format = FormatConsole
	}
	ec, err := encoderConfig(format)
	if err != nil {
		return err
	}

	logger, err := zap.Config{
		Level:             zap.NewAtomicLevelAt(lvl),
		Encoding:          format,
		EncoderConfig:     ec,
		DisableStacktrace: lvl > zapcore.DebugLevel,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
	}.Build()
	if err != nil {
		return fmt.Errorf("unable to create zap logger, error: %w", err)
	}

	zap.ReplaceGlobals(logger.Named("prizepool").With(zap.String("payment_mode", conf.PaymentMode)))
	return nil
}
