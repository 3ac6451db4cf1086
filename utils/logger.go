package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

var (
	isVerbose bool
	logger    = newLogger()
)

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000000",
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

func SetVerbose(verbose bool) {
	isVerbose = verbose
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
}

func IsVerbose() bool {
	return isVerbose
}

// Logger exposes the shared logger for callers that need structured fields.
func Logger() *logrus.Logger {
	return logger
}

// WithFields returns an entry carrying the given fields.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return logger.WithFields(fields)
}

func Verbose(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

func Info(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

func Warn(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

func Error(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}
