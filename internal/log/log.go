// Package log holds the shared logger.
package log

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var logger *logrus.Logger

func init() {
	logger = logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		SetLevel(level)
	}
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

// GetLogger returns the shared logger instance
func GetLogger() *logrus.Logger {
	return logger
}

// SetLevel sets the shared logger's level from a name such as DEBUG or warn.
// Unknown names leave the level unchanged and report false.
func SetLevel(name string) bool {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		logger.SetLevel(logrus.DebugLevel)
	case "INFO":
		logger.SetLevel(logrus.InfoLevel)
	case "WARN", "WARNING":
		logger.SetLevel(logrus.WarnLevel)
	case "ERROR":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		return false
	}
	return true
}
