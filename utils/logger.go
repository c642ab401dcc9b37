package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/rs/zerolog"
)

var (
	Logger      = zerolog.New(os.Stdout).With().Timestamp().Logger()
	errorLogger *zerolog.Logger
	panicLogger *zerolog.Logger
)

// InitLogger пишет логи в консоль, ошибки и паники дополнительно в logs/*.log
func InitLogger(logsDir string) error {
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %v", err)
	}

	errorLogFile, err := os.OpenFile(filepath.Join(logsDir, "errors.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open error log file: %v", err)
	}

	panicLogFile, err := os.OpenFile(filepath.Join(logsDir, "panics.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open panic log file: %v", err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02 15:04:05"}
	Logger = zerolog.New(console).With().Timestamp().Logger()

	errLog := zerolog.New(io.MultiWriter(console, errorLogFile)).With().Timestamp().Logger()
	panicLog := zerolog.New(io.MultiWriter(console, panicLogFile)).With().Timestamp().Logger()
	errorLogger = &errLog
	panicLogger = &panicLog

	return nil
}

func LogError(err error, context string) {
	l := errorLogger
	if l == nil {
		l = &Logger
	}

	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file = "unknown"
		line = 0
	}

	l.Error().Err(err).Str("caller", fmt.Sprintf("%s:%d", filepath.Base(file), line)).Msg(context)
}

func LogPanic(recovered interface{}, context string) {
	l := panicLogger
	if l == nil {
		l = &Logger
	}

	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file = "unknown"
		line = 0
	}

	l.Error().Interface("panic", recovered).Str("caller", fmt.Sprintf("%s:%d", filepath.Base(file), line)).Msg(context)
}
