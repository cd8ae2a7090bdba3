package logging

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-resty/resty/v2"
)

type restyLogger struct {
	logger *slog.Logger
}

// Resty adapts a slog logger to the resty client logger
func Resty(logger *slog.Logger) resty.Logger {
	return restyLogger{logger: logger.With("component", "resty")}
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error(message(format, v))
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn(message(format, v))
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug(message(format, v))
}

func message(format string, v []interface{}) string {
	return strings.TrimSpace(fmt.Sprintf(format, v...))
}
