package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds the service logger. Production (ENVIRONMENT=production) emits
// JSON for log aggregation; everything else gets the readable text formatter.
func New() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if strings.ToLower(os.Getenv("ENVIRONMENT")) == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// WithSession returns a logger with conversation context fields attached.
func WithSession(logger *logrus.Logger, sessionID string, userID int64) *logrus.Entry {
	return logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"user_id":    userID,
	})
}
