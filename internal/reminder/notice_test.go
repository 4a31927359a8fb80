package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStreakMilestone(t *testing.T) {
	tests := []struct {
		current int
		want    int
	}{
		{0, 5}, {4, 5}, {5, 10}, {9, 10}, {14, 15}, {19, 20}, {20, 25}, {24, 25}, {25, 30},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NextStreakMilestone(tt.current), "current=%d", tt.current)
	}
}

func TestCompose(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	at := time.Date(2025, 5, 1, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		p             Progress
		wantKind      NoticeKind
		wantRemaining int
	}{
		{"goal met", Progress{CompletedToday: 4, CurrentStreak: 2, ActiveToday: true}, NoticeGoalMet, 0},
		{"at risk", Progress{CompletedToday: 0, CurrentStreak: 6, StreakAtRisk: true}, NoticeStreakAtRisk, 3},
		{"milestone", Progress{CompletedToday: 0, CurrentStreak: 9}, NoticeMilestone, 3},
		{"nudge", Progress{CompletedToday: 1, CurrentStreak: 2, ActiveToday: true}, NoticeDailyNudge, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Compose(eightPM(), tt.p, now)
			require.NoError(t, err)
			require.NotNil(t, n)
			assert.Equal(t, tt.wantKind, n.Kind)
			assert.Equal(t, tt.wantRemaining, n.Remaining)
			assert.True(t, n.At.Equal(at))
			assert.NotEmpty(t, n.Message)
		})
	}
}

func TestCompose_MilestoneCarriesTarget(t *testing.T) {
	n, err := Compose(eightPM(), Progress{CurrentStreak: 4}, time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, NoticeMilestone, n.Kind)
	assert.Equal(t, 5, n.NextMilestone)
}

func TestCompose_Disabled(t *testing.T) {
	s := eightPM()
	s.Enabled = false
	n, err := Compose(s, Progress{}, time.Now())
	require.NoError(t, err)
	assert.Nil(t, n)
}
