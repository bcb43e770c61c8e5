package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sass-calc/internal/calculator/models"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"HOST", "PORT", "CALC_PRECISION", "CALC_UNIT", "CALC_THEME",
		"BASE_FONT_SIZE", "VIEWPORT_WIDTH", "VIEWPORT_HEIGHT", "HISTORY_LIMIT", "HISTORY_STORE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:3000", cfg.Addr())
	assert.Equal(t, models.DefaultSettings(), cfg.Settings)
	assert.Equal(t, models.DefaultConversionContext(), cfg.Conversion)
	assert.Equal(t, 50, cfg.HistoryLimit)
	assert.Equal(t, HistoryStoreMemory, cfg.HistoryStore)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("CALC_PRECISION", "6")
	t.Setenv("CALC_UNIT", "percent")
	t.Setenv("CALC_THEME", "light")
	t.Setenv("BASE_FONT_SIZE", "18")
	t.Setenv("HISTORY_STORE", "sqlite")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, models.Settings{Precision: 6, Unit: models.UnitPercent, Theme: models.ThemeLight}, cfg.Settings)
	assert.Equal(t, 18.0, cfg.Conversion.BaseFontSize)
	assert.Equal(t, HistoryStoreSQLite, cfg.HistoryStore)
}

func TestLoadRejectsInvalidPrecision(t *testing.T) {
	t.Setenv("CALC_PRECISION", "3")

	_, err := Load()
	assert.ErrorIs(t, err, models.ErrInvalidSettings)
}

func TestLoadRejectsUnknownStore(t *testing.T) {
	t.Setenv("HISTORY_STORE", "redis")

	_, err := Load()
	assert.Error(t, err)
}

func TestGetEnvAsIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("TEST_INT_BAD", "abc")
	assert.Equal(t, 7, getEnvAsInt("TEST_INT_BAD", 7))
}

func TestGetEnvAsFloat(t *testing.T) {
	t.Setenv("TEST_FLOAT", "12.5")
	assert.Equal(t, 12.5, getEnvAsFloat("TEST_FLOAT", 1))
	assert.Equal(t, 1.0, getEnvAsFloat("TEST_FLOAT_MISSING", 1))
}

func TestGetEnvAsList(t *testing.T) {
	t.Setenv("TEST_LIST", " http://localhost:5173, ,http://127.0.0.1:5173")
	assert.Equal(t, []string{"http://localhost:5173", "http://127.0.0.1:5173"}, getEnvAsList("TEST_LIST"))
	assert.Nil(t, getEnvAsList("TEST_LIST_MISSING"))
}
