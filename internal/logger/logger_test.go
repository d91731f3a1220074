package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerProductionUsesJSON(t *testing.T) {
	log := NewLogger("info", "production")

	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewLoggerDevelopmentUsesText(t *testing.T) {
	// The formatter keys off the configured environment, not the
	// ENVIRONMENT variable.
	t.Setenv("ENVIRONMENT", "production")

	log := NewLogger("debug", "development")

	require.IsType(t, &logrus.TextFormatter{}, log.Formatter)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestNewLoggerInvalidLevelDefaultsToInfo(t *testing.T) {
	log := NewLogger("chatty", "development")

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}
