package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	debugLvl = "debug"
	infoLvl  = "info"
	warnLvl  = "warn"
	errorLvl = "error"
)

type Logger interface {
	Debug(msg string, msgArgs ...any)
	Info(msg string, msgArgs ...any)
	Warn(msg string)
	Error(msg string, msgArgs ...any)
}

// ZLBasedLogger - 'Zerolog' based implementation of Logger interface.
type ZLBasedLogger struct {
	logger *zerolog.Logger
}

// NewLogger falls back to info when lvl is not a known level.
func NewLogger(lvl string, out io.Writer) *ZLBasedLogger {
	level, err := ParseLevel(lvl)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		CallerWithSkipFrameCount(3).
		Logger()

	return &ZLBasedLogger{
		logger: &logger,
	}
}

func ParseLevel(lvl string) (zerolog.Level, error) {
	switch strings.ToLower(lvl) {
	case errorLvl:
		return zerolog.ErrorLevel, nil
	case warnLvl:
		return zerolog.WarnLevel, nil
	case infoLvl:
		return zerolog.InfoLevel, nil
	case debugLvl:
		return zerolog.DebugLevel, nil
	}
	return zerolog.NoLevel, fmt.Errorf("unknown log level %q, use debug, info, warn or error", lvl)
}

// Output returns the sink logs are written to: a rotated file when logFile is set,
// stderr otherwise. Stdout is left to the report.
func Output(logFile string) io.WriteCloser {
	if logFile == "" {
		return nopCloser{os.Stderr}
	}
	return &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func (l *ZLBasedLogger) Debug(msg string, msgArgs ...any) {
	l.logger.Debug().Msgf(msg, msgArgs...)
}

func (l *ZLBasedLogger) Info(msg string, msgArgs ...any) {
	l.logger.Info().Msgf(msg, msgArgs...)
}

func (l *ZLBasedLogger) Warn(msg string) {
	l.logger.Warn().Msg(msg)
}

func (l *ZLBasedLogger) Error(msg string, msgArgs ...any) {
	l.logger.Error().Msgf(msg, msgArgs...)
}
