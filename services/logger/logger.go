package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Level định nghĩa các mức độ log
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	ErrorLevel
)

// ParseLevel đọc mức log từ chuỗi cấu hình, mặc định Info
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return DebugLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Logger interface định nghĩa các phương thức logging
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
	Debug(format string, v ...interface{})
	WithField(key string, value interface{}) Logger
}

// LogrusLogger implement Logger bằng logrus
type LogrusLogger struct {
	entry *logrus.Entry
}

// NewLogrusLogger tạo logger ghi ra stdout
func NewLogrusLogger(level Level) *LogrusLogger {
	return NewLogrusLoggerTo(os.Stdout, level)
}

// NewLogrusLoggerTo tạo logger ghi ra w, định dạng JSON
func NewLogrusLoggerTo(w io.Writer, level Level) *LogrusLogger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.JSONFormatter{})
	switch level {
	case DebugLevel:
		l.SetLevel(logrus.DebugLevel)
	case ErrorLevel:
		l.SetLevel(logrus.ErrorLevel)
	default:
		l.SetLevel(logrus.InfoLevel)
	}
	return &LogrusLogger{entry: logrus.NewEntry(l)}
}

func (l *LogrusLogger) Info(format string, v ...interface{}) {
	l.entry.Infof(format, v...)
}

func (l *LogrusLogger) Error(format string, v ...interface{}) {
	l.entry.Errorf(format, v...)
}

func (l *LogrusLogger) Debug(format string, v ...interface{}) {
	l.entry.Debugf(format, v...)
}

func (l *LogrusLogger) WithField(key string, value interface{}) Logger {
	return &LogrusLogger{entry: l.entry.WithField(key, value)}
}

// Discard dùng trong test
func Discard() Logger {
	return NewLogrusLoggerTo(io.Discard, ErrorLevel)
}
