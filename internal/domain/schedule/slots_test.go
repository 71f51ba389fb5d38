package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func studioRanges(t *testing.T) []WorkingRange {
	t.Helper()
	ranges, err := ParseWorkingRanges("10:00-14:00,17:00-22:00")
	require.NoError(t, err)
	return ranges
}

// Wednesday.
var testDay = time.Date(2026, 3, 4, 0, 0, 0, 0, time.Local)

func TestGenerateSlots_StudioDay(t *testing.T) {
	slots := GenerateSlots(testDay, studioRanges(t), 60)

	require.Len(t, slots, 9)

	want := []string{"10:00", "11:00", "12:00", "13:00", "17:00", "18:00", "19:00", "20:00", "21:00"}
	for i, s := range slots {
		assert.Equal(t, want[i], s.Start.Format("15:04"))
		assert.Equal(t, time.Hour, s.End.Sub(s.Start))
	}
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	ranges := studioRanges(t)

	first := GenerateSlots(testDay, ranges, 60)
	second := GenerateSlots(testDay, ranges, 60)

	assert.Equal(t, first, second)
}

func TestGenerateSlots_NoRanges(t *testing.T) {
	assert.Empty(t, GenerateSlots(testDay, nil, 60))
}

func TestGenerateSlots_InvalidSlotLength(t *testing.T) {
	assert.Empty(t, GenerateSlots(testDay, studioRanges(t), 0))
	assert.Empty(t, GenerateSlots(testDay, studioRanges(t), -30))
}

func TestGenerateSlots_SlotsNeverMergeAcrossRanges(t *testing.T) {
	slots := GenerateSlots(testDay, studioRanges(t), 90)

	for _, s := range slots {
		// No slot may start in the 14:00-17:00 gap.
		h := s.Start.Hour()
		assert.False(t, h >= 14 && h < 17, "slot starting at %s falls into the break", s.Start.Format("15:04"))
	}
}

func TestFilterElapsed(t *testing.T) {
	slots := GenerateSlots(testDay, studioRanges(t), 60)

	now := time.Date(2026, 3, 4, 12, 30, 0, 0, time.Local)
	kept := FilterElapsed(slots, now)

	require.Len(t, kept, 6)
	assert.Equal(t, "13:00", kept[0].Start.Format("15:04"))
}

func TestFilterElapsed_SlotStartingNowIsElapsed(t *testing.T) {
	slots := GenerateSlots(testDay, studioRanges(t), 60)

	now := time.Date(2026, 3, 4, 13, 0, 0, 0, time.Local)
	kept := FilterElapsed(slots, now)

	for _, s := range kept {
		assert.True(t, s.Start.After(now))
	}
	require.Len(t, kept, 5)
}
