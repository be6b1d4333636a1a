package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "inv.log")

	logger, closer, err := New("debug", path)
	require.NoError(t, err)

	logger.WithField("key", "computers").Warn("stored value is corrupt, using default")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "stored value is corrupt")
	assert.Contains(t, string(data), "key=computers")
}

func TestNew_Level(t *testing.T) {
	logger, _, err := New("warn", "")
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())

	_, _, err = New("chatty", "")
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	assert.NotPanics(t, func() { logger.Info("dropped") })
}
