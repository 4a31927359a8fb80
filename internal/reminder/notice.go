package reminder

import (
	"fmt"
	"time"
)

// NoticeKind is what a reminder is about.
type NoticeKind string

const (
	NoticeGoalMet      NoticeKind = "goal-met"
	NoticeStreakAtRisk NoticeKind = "streak-at-risk"
	NoticeMilestone    NoticeKind = "milestone-ahead"
	NoticeDailyNudge   NoticeKind = "daily-nudge"
)

// Progress is the learner's day so far, as known at compose time.
type Progress struct {
	CompletedToday int
	CurrentStreak  int
	ActiveToday    bool

	// StreakAtRisk is true when the streak ends unless there is activity today.
	StreakAtRisk bool
}

// Notice is a reminder ready for delivery.
type Notice struct {
	Kind          NoticeKind `json:"kind"`
	At            time.Time  `json:"at"`
	Remaining     int        `json:"remaining"`
	CurrentStreak int        `json:"current_streak"`
	NextMilestone int        `json:"next_milestone,omitempty"`
	Message       string     `json:"message"`
}

// NextStreakMilestone returns the next streak milestone above current:
// 5, 10, 15, 20 and every 5 after that.
func NextStreakMilestone(current int) int {
	for _, t := range []int{5, 10, 15, 20} {
		if t > current {
			return t
		}
	}
	return ((current / 5) + 1) * 5
}

// milestoneWindow is how close a streak must be to a milestone to mention it.
const milestoneWindow = 1

// Compose schedules the next reminder and picks its content. It returns nil
// when reminders are disabled.
//
// Priority: goal already met, streak at risk, milestone one day away,
// plain nudge.
func Compose(s Settings, p Progress, now time.Time) (*Notice, error) {
	at, err := NextTrigger(s, now)
	if err != nil || at == nil {
		return nil, err
	}

	n := &Notice{
		At:            *at,
		Remaining:     max(s.DailyGoal-p.CompletedToday, 0),
		CurrentStreak: p.CurrentStreak,
	}
	next := NextStreakMilestone(p.CurrentStreak)

	switch {
	case n.Remaining == 0:
		n.Kind = NoticeGoalMet
		n.Message = fmt.Sprintf("Daily goal of %d done. Nice work.", s.DailyGoal)
	case p.StreakAtRisk && !p.ActiveToday:
		n.Kind = NoticeStreakAtRisk
		n.Message = fmt.Sprintf("Your %d-day streak ends today. %d to go.", p.CurrentStreak, n.Remaining)
	case !p.ActiveToday && next-p.CurrentStreak <= milestoneWindow:
		n.Kind = NoticeMilestone
		n.NextMilestone = next
		n.Message = fmt.Sprintf("One more day to a %d-day streak.", next)
	default:
		n.Kind = NoticeDailyNudge
		n.Message = fmt.Sprintf("%d left for today. About %d minutes.", n.Remaining, s.StudyDurationMinutes)
	}
	return n, nil
}
