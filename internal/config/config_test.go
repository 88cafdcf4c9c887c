package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, 8*60, cfg.OpenMinutes)
	assert.Equal(t, 19*60, cfg.CloseMinutes)
	assert.Equal(t, 60, cfg.SlotStepMinutes)
	assert.Equal(t, 8.0, cfg.MinRescheduleNoticeHours)
}

func TestGetEnvMinutes_ClockFormat(t *testing.T) {
	t.Setenv("STUDIO_OPEN", "09:30")

	m, err := getEnvMinutes("STUDIO_OPEN", 0)

	assert.NoError(t, err)
	assert.Equal(t, 9*60+30, m)
}

func TestGetEnvMinutes_PlainMinutes(t *testing.T) {
	t.Setenv("STUDIO_OPEN", "570")

	m, err := getEnvMinutes("STUDIO_OPEN", 0)

	assert.NoError(t, err)
	assert.Equal(t, 570, m)
}

func TestGetEnvMinutes_Invalid(t *testing.T) {
	t.Setenv("STUDIO_OPEN", "25:99")

	_, err := getEnvMinutes("STUDIO_OPEN", 0)
	assert.Error(t, err)
}

func TestLoad_RejectsInvertedWindow(t *testing.T) {
	t.Setenv("STUDIO_OPEN", "19:00")
	t.Setenv("STUDIO_CLOSE", "08:00")

	_, err := Load()
	assert.Error(t, err)
}
