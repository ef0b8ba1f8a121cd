package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/wordcycle/internal/cycle"
	"codeberg.org/snonux/wordcycle/internal/domain"
	"codeberg.org/snonux/wordcycle/internal/settings"
)

func TestUpdateSettings_AppliesTimers(t *testing.T) {
	h := seeded(t, "猫,ねこ,cat", "犬,いぬ,dog")
	h.sched.Advance(3 * time.Second)
	require.Equal(t, cycle.StageMeaning, h.s.Display().Stage)

	p, err := settings.ParsePatch("1", "2", false)
	require.NoError(t, err)
	cfg, err := h.s.UpdateSettings(p)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.ShowMeaningTimer)
	assert.False(t, cfg.AlwaysOnTop)

	assert.Equal(t, cycle.StageWord, h.s.Display().Stage, "settings change restarts the word")
	h.sched.Advance(time.Second)
	assert.Equal(t, cycle.StageMeaning, h.s.Display().Stage)

	saved := loadConfig(t, h.dataDir)
	assert.Equal(t, 1, saved.ShowMeaningTimer)
	assert.Equal(t, 2, saved.NextWordTimer)
	assert.False(t, saved.AlwaysOnTop)
}

func TestUpdateSettings_RejectsInvalidPatch(t *testing.T) {
	h := seeded(t, "猫,ねこ,cat")
	bad := -1
	good := 9

	_, err := h.s.UpdateSettings(settings.Patch{ShowMeaningTimer: &good, NextWordTimer: &bad})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 3, h.s.Config().ShowMeaningTimer)
	assert.Equal(t, 3*time.Second, h.s.engine.Timings().ShowMeaning)
	assert.Equal(t, 3, loadConfig(t, h.dataDir).ShowMeaningTimer)
}

func TestUpdateSettings_WhilePaused(t *testing.T) {
	h := seeded(t, "猫,ねこ,cat")
	h.s.Pause()
	zero := 0

	_, err := h.s.UpdateSettings(settings.Patch{ShowMeaningTimer: &zero})
	require.NoError(t, err)
	assert.True(t, h.s.Paused())
	assert.Equal(t, 0, h.sched.Pending())
}

func TestUpdateSettings_RejectsOversizedTimer(t *testing.T) {
	h := seeded(t, "猫,ねこ,cat")
	huge := int(int64(settings.MaxTimer) + 1)

	_, err := h.s.UpdateSettings(settings.Patch{ShowMeaningTimer: &huge})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 3*time.Second, h.s.engine.Timings().ShowMeaning)

	h.sched.Tick()
	assert.Equal(t, cycle.StageWord, h.s.Display().Stage, "no immediate transition")
	assert.Equal(t, 3, loadConfig(t, h.dataDir).ShowMeaningTimer)
}
