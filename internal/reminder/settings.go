package reminder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/studycore/internal/errs"
)

// Clock is a local wall-clock time of day.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM" in 24-hour form.
func ParseClock(s string) (Clock, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Clock{}, errs.Invalid("reminder_time", "%q is not HH:MM", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return Clock{}, errs.Invalid("reminder_time", "%q has a bad hour", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return Clock{}, errs.Invalid("reminder_time", "%q has a bad minute", s)
	}
	c := Clock{Hour: h, Minute: m}
	if err := c.Validate(); err != nil {
		return Clock{}, err
	}
	return c, nil
}

// Validate checks the hour and minute ranges.
func (c Clock) Validate() error {
	if c.Hour < 0 || c.Hour > 23 {
		return errs.Invalid("reminder_time", "hour %d out of range 0-23", c.Hour)
	}
	if c.Minute < 0 || c.Minute > 59 {
		return errs.Invalid("reminder_time", "minute %d out of range 0-59", c.Minute)
	}
	return nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(b []byte) error {
	parsed, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Settings is the learner's study routine.
type Settings struct {
	DailyGoal            int   `json:"daily_goal" yaml:"daily_goal" validate:"gt=0"`
	ReminderTime         Clock `json:"reminder_time" yaml:"reminder_time"`
	Enabled              bool  `json:"enabled" yaml:"enabled"`
	StudyDurationMinutes int   `json:"study_duration_minutes" yaml:"study_duration_minutes" validate:"gte=0"`
}

// DefaultSettings is the routine a new learner starts with.
func DefaultSettings() Settings {
	return Settings{
		DailyGoal:            3,
		ReminderTime:         Clock{Hour: 19, Minute: 0},
		Enabled:              true,
		StudyDurationMinutes: 15,
	}
}

// Validate rejects non-positive goals, negative durations and impossible
// reminder times.
func (s Settings) Validate() error {
	if err := errs.ValidateStruct(s); err != nil {
		return err
	}
	return s.ReminderTime.Validate()
}
