package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studycore/internal/config"
	"github.com/abhisek/studycore/internal/errs"
	"github.com/abhisek/studycore/internal/mission"
	"github.com/abhisek/studycore/internal/proficiency"
	"github.com/abhisek/studycore/internal/reminder"
	"github.com/abhisek/studycore/internal/review"
	"github.com/abhisek/studycore/internal/store"
	"github.com/abhisek/studycore/internal/streak"
	"github.com/abhisek/studycore/internal/weakness"
)

var t0 = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, mutate ...func(*config.Config)) (*Service, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "engine.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"
	for _, m := range mutate {
		m(&cfg)
	}
	svc, err := NewService(st, cfg, nil)
	require.NoError(t, err)
	return svc, st
}

func importConcepts(t *testing.T, svc *Service, concepts ...weakness.Concept) {
	t.Helper()
	_, err := svc.ImportConcepts(context.Background(), concepts)
	require.NoError(t, err)
}

func TestNewService_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Ladder = []int{3, 1}
	_, err := NewService(nil, cfg, nil)
	assert.True(t, errors.Is(err, errs.ErrInvalidInput), "err = %v", err)
}

func TestImportConcepts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	n, err := svc.ImportConcepts(ctx, []weakness.Concept{
		{ID: "fractions", Name: "Fractions", SuccessRate: 40},
		{ID: "decimals", Name: "Decimals"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = svc.RecordPractice(ctx, "fractions", review.OutcomePass, t0)
	require.NoError(t, err)

	// Re-import renames but keeps practice history.
	n, err = svc.ImportConcepts(ctx, []weakness.Concept{{ID: "fractions", Name: "Fractions II", SuccessRate: 5}})
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	concepts, err := svc.Concepts(ctx)
	require.NoError(t, err)
	require.Len(t, concepts, 2)
	f := concepts[1]
	assert.Equal(t, "Fractions II", f.Name)
	assert.Equal(t, 100.0, f.SuccessRate)
	require.NotNil(t, f.LastPracticedAt)
	assert.True(t, f.LastPracticedAt.Equal(t0))

	_, err = svc.ImportConcepts(ctx, []weakness.Concept{{ID: "x"}, {ID: "x"}})
	assert.True(t, errors.Is(err, errs.ErrInvalidInput))
	_, err = svc.ImportConcepts(ctx, []weakness.Concept{{ID: "y", SuccessRate: 101}})
	assert.True(t, errors.Is(err, errs.ErrInvalidInput))
	_, err = svc.ImportConcepts(ctx, []weakness.Concept{{ID: ""}})
	assert.True(t, errors.Is(err, errs.ErrInvalidInput))
}

func TestRecordPractice_FirstThenAdvance(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	importConcepts(t, svc, weakness.Concept{ID: "a", Name: "A"})

	res, err := svc.RecordPractice(ctx, "a", review.OutcomeFail, t0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Event.Sequence)
	assert.Equal(t, 0.0, res.Concept.SuccessRate)
	assert.Equal(t, 0, res.Schedule.IntervalIndex)
	assert.Equal(t, t0.AddDate(0, 0, 1), res.Schedule.DueAt, "first practice starts the ladder")
	assert.Equal(t, streak.TransitionFirst, res.Transition)
	assert.Equal(t, 1, res.Streak.CurrentStreak)

	next := t0.AddDate(0, 0, 1)
	res, err = svc.RecordPractice(ctx, "a", review.OutcomePass, next)
	require.NoError(t, err)
	assert.Equal(t, 50.0, res.Concept.SuccessRate)
	assert.Equal(t, 1, res.Schedule.IntervalIndex)
	assert.Equal(t, next.AddDate(0, 0, 3), res.Schedule.DueAt)
	assert.Equal(t, streak.TransitionExtended, res.Transition)
	assert.Equal(t, 2, res.Streak.CurrentStreak)

	// Same day: streak unchanged, schedule still advances.
	res, err = svc.RecordPractice(ctx, "a", review.OutcomePass, next.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, streak.TransitionSameDay, res.Transition)
	assert.Equal(t, 2, res.Streak.CurrentStreak)
	assert.Equal(t, 2, res.Schedule.IntervalIndex)
	assert.InDelta(t, 66.67, res.Concept.SuccessRate, 0.01)
}

func TestRecordPractice_SuccessWindow(t *testing.T) {
	svc, _ := newTestService(t, func(c *config.Config) { c.SuccessWindow = 2 })
	ctx := context.Background()
	importConcepts(t, svc, weakness.Concept{ID: "a"})

	outcomes := []review.Outcome{review.OutcomePass, review.OutcomePass, review.OutcomeFail, review.OutcomeFail}
	var res *PracticeResult
	for i, o := range outcomes {
		var err error
		res, err = svc.RecordPractice(ctx, "a", o, t0.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}
	assert.Equal(t, 0.0, res.Concept.SuccessRate, "only the last two events count")
}

func TestRecordPractice_UnknownConceptWritesNothing(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	_, err := svc.RecordPractice(ctx, "ghost", review.OutcomePass, t0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrUnknownReference))

	events, err := st.Repos().Events.QueryPractice(ctx, store.QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, events)
	state, err := st.Repos().Streak.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, state.LastActiveDate)
}

func TestRecordPractice_InvalidInput(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for name, call := range map[string]func() error{
		"empty concept": func() error { _, err := svc.RecordPractice(ctx, "", review.OutcomePass, t0); return err },
		"bad outcome":   func() error { _, err := svc.RecordPractice(ctx, "a", "maybe", t0); return err },
		"zero time":     func() error { _, err := svc.RecordPractice(ctx, "a", review.OutcomePass, time.Time{}); return err },
	} {
		t.Run(name, func(t *testing.T) {
			assert.True(t, errors.Is(call(), errs.ErrInvalidInput))
		})
	}
}

func TestRecordPractice_Backdated(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	importConcepts(t, svc, weakness.Concept{ID: "a"})

	later := t0.AddDate(0, 0, 2)
	_, err := svc.RecordPractice(ctx, "a", review.OutcomePass, later)
	require.NoError(t, err)

	res, err := svc.RecordPractice(ctx, "a", review.OutcomeFail, t0)
	require.NoError(t, err, "backdated practice is still recorded")
	assert.True(t, res.Concept.LastPracticedAt.Equal(later), "last practiced never moves back")
	assert.Equal(t, 1, res.Streak.CurrentStreak)
	require.NotNil(t, res.Streak.LastActiveDate)
	assert.Equal(t, streak.DateOf(later, time.UTC), *res.Streak.LastActiveDate)
	assert.Equal(t, 50.0, res.Concept.SuccessRate)
}

func TestRecordActivity(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	st, tr, err := svc.RecordActivity(ctx, t0)
	require.NoError(t, err)
	assert.Equal(t, streak.TransitionFirst, tr)

	st, tr, err = svc.RecordActivity(ctx, t0.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.Equal(t, streak.TransitionReset, tr)
	assert.Equal(t, 1, st.CurrentStreak)
	assert.Equal(t, 1, st.LongestStreak)
	assert.Equal(t, 2, st.TotalActiveDays)

	_, _, err = svc.RecordActivity(ctx, t0)
	assert.True(t, errors.Is(err, errs.ErrOrderingViolation))

	view, err := svc.Streak(ctx, t0.AddDate(0, 0, 4))
	require.NoError(t, err)
	assert.Equal(t, 1, view.Current)
	assert.True(t, view.AtRisk)

	view, err = svc.Streak(ctx, t0.AddDate(0, 0, 6))
	require.NoError(t, err)
	assert.Equal(t, 0, view.Current)
	assert.False(t, view.AtRisk)
}

func TestRecordActivity_UsesConfiguredZone(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Skip("tzdata not available")
	}
	svc, _ := newTestService(t, func(c *config.Config) { c.Timezone = "Asia/Kolkata" })
	ctx := context.Background()

	// 20:00 UTC is 01:30 the next day in Kolkata.
	at := time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC)
	st, _, err := svc.RecordActivity(ctx, at)
	require.NoError(t, err)
	require.NotNil(t, st.LastActiveDate)
	assert.Equal(t, streak.NewDate(2025, 6, 11), *st.LastActiveDate)
	assert.Equal(t, loc.String(), svc.Location().String())
}

var questions = []proficiency.Question{
	{ID: "q1", Tier: proficiency.TierNovice, Points: 1, CorrectOptionIndex: 0},
	{ID: "q2", Tier: proficiency.TierNovice, Points: 1, CorrectOptionIndex: 1},
	{ID: "q3", Tier: proficiency.TierAdvanced, Points: 1, CorrectOptionIndex: 2},
}

func TestSubmitAssessmentAndCurrentTier(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tier, ok, err := svc.CurrentTier(ctx, questions)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, proficiency.TierNovice, tier)

	responses := []proficiency.Response{
		{QuestionID: "q1", SelectedOptionIndex: 0},
		{QuestionID: "q2", SelectedOptionIndex: 1},
		{QuestionID: "q3", SelectedOptionIndex: 0},
		{QuestionID: "q9", SelectedOptionIndex: 0},
	}
	a, err := svc.SubmitAssessment(ctx, responses, questions, t0)
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.InDelta(t, 66.67, a.Percentage, 0.01)
	assert.Equal(t, proficiency.TierAdvanced, a.Tier)
	assert.Equal(t, []string{"q9"}, a.Ignored)

	tier, ok, err = svc.CurrentTier(ctx, nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, proficiency.TierAdvanced, tier)

	// A heavier q3 drops the same answers to 2/6.
	revised := append([]proficiency.Question(nil), questions...)
	revised[2].Points = 4
	tier, ok, err = svc.CurrentTier(ctx, revised)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, proficiency.TierElementary, tier)

	_, err = svc.SubmitAssessment(ctx, []proficiency.Response{{QuestionID: "q1"}, {QuestionID: "q1"}}, questions, t0)
	assert.True(t, errors.Is(err, errs.ErrInvalidInput))
}

func TestRoutineAndReminder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	got, err := svc.Routine(ctx)
	require.NoError(t, err)
	assert.Equal(t, reminder.DefaultSettings(), got)

	err = svc.UpdateRoutine(ctx, reminder.Settings{DailyGoal: 0, ReminderTime: reminder.Clock{Hour: 8}})
	assert.True(t, errors.Is(err, errs.ErrInvalidInput))

	settings := reminder.Settings{DailyGoal: 2, ReminderTime: reminder.Clock{Hour: 8, Minute: 30}, Enabled: true, StudyDurationMinutes: 10}
	require.NoError(t, svc.UpdateRoutine(ctx, settings))

	importConcepts(t, svc, weakness.Concept{ID: "a"})
	_, err = svc.RecordPractice(ctx, "a", review.OutcomePass, t0)
	require.NoError(t, err)

	// 09:00 is past 08:30, so the next trigger is tomorrow.
	n, err := svc.NextReminder(ctx, t0)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, time.Date(2025, 6, 11, 8, 30, 0, 0, time.UTC), n.At)
	assert.Equal(t, 1, n.Remaining)
	assert.Equal(t, 1, n.CurrentStreak)

	_, err = svc.RecordPractice(ctx, "a", review.OutcomePass, t0.Add(time.Hour))
	require.NoError(t, err)
	n, err = svc.NextReminder(ctx, t0.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, reminder.NoticeGoalMet, n.Kind)
	assert.Equal(t, 0, n.Remaining)

	settings.Enabled = false
	require.NoError(t, svc.UpdateRoutine(ctx, settings))
	n, err = svc.NextReminder(ctx, t0)
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestDashboard(t *testing.T) {
	svc, _ := newTestService(t, func(c *config.Config) { c.MissionLimit = 2 })
	ctx := context.Background()

	stale := t0.AddDate(0, 0, -10)
	recent := t0.AddDate(0, 0, -1)
	importConcepts(t, svc,
		weakness.Concept{ID: "strong", SuccessRate: 95, LastPracticedAt: &recent},
		weakness.Concept{ID: "stale", SuccessRate: 90, LastPracticedAt: &stale},
		weakness.Concept{ID: "shaky", SuccessRate: 60, LastPracticedAt: &recent},
	)

	// Two reviews: "strong" due now, "stale" due in the future.
	_, err := svc.RecordPractice(ctx, "strong", review.OutcomePass, t0.AddDate(0, 0, -2))
	require.NoError(t, err)
	_, err = svc.RecordPractice(ctx, "stale", review.OutcomePass, t0.Add(-time.Hour))
	require.NoError(t, err)

	_, err = svc.SubmitAssessment(ctx, []proficiency.Response{
		{QuestionID: "q1", SelectedOptionIndex: 0},
		{QuestionID: "q2", SelectedOptionIndex: 1},
		{QuestionID: "q3", SelectedOptionIndex: 0},
	}, questions, t0)
	require.NoError(t, err)

	missions := []mission.Mission{
		{ID: "m-strong", ConceptID: "strong", Tier: proficiency.TierAdvanced},
		{ID: "m-other", ConceptID: "unknown", Tier: proficiency.TierAdvanced},
		{ID: "m-shaky", ConceptID: "shaky", Tier: proficiency.TierAdvanced},
		{ID: "m-novice", ConceptID: "shaky", Tier: proficiency.TierNovice},
	}

	d, err := svc.Dashboard(ctx, t0, missions, questions)
	require.NoError(t, err)

	assert.True(t, d.Assessed)
	assert.Equal(t, proficiency.TierAdvanced, d.Tier)

	require.Len(t, d.Weak, 3)
	assert.Equal(t, "shaky", d.Weak[0].Concept.ID)
	assert.Equal(t, weakness.UrgencyMedium, d.Weak[0].Urgency)

	require.Len(t, d.Due, 1)
	assert.Equal(t, "strong", d.Due[0].ConceptID)

	ids := make([]string, len(d.Missions.Missions))
	for i, m := range d.Missions.Missions {
		ids[i] = m.ID
	}
	assert.Equal(t, []string{"m-shaky", "m-strong"}, ids)

	assert.Equal(t, 1, d.Progress, "only one practice happened on t0's day")
	assert.Equal(t, 1, d.Streak.Current)
	require.NotNil(t, d.Reminder)
	assert.Equal(t, 2, d.Reminder.Remaining)

	due, err := svc.DueReviews(ctx, t0)
	require.NoError(t, err)
	assert.Equal(t, d.Due, due)

	q, err := svc.Missions(ctx, t0, missions, questions)
	require.NoError(t, err)
	assert.Equal(t, d.Missions, q)

	weak, err := svc.Weak(ctx, t0)
	require.NoError(t, err)
	assert.Equal(t, d.Weak, weak)
}
