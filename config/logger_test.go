package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLogger(t *testing.T) {
	for _, env := range []string{"production", "development", "", "staging"} {
		t.Run("env "+env, func(t *testing.T) {
			logger, err := setLogger(env)
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestInitLoggerInstallsGlobal(t *testing.T) {
	logger := InitLogger()
	assert.NotNil(t, logger)
	logger.Sugar().Debugw("logger smoke test", "ok", true)
}
