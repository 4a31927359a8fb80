package review

import "github.com/abhisek/studycore/internal/errs"

// Ladder is the expanding review interval schedule in days. Index 0 is the
// first interval after a fresh start or a failed review.
type Ladder []int

// DefaultLadder is the standard 1/3/7/14 day schedule.
var DefaultLadder = Ladder{1, 3, 7, 14}

// Validate rejects empty ladders and ladders with non-positive or
// shrinking intervals.
func (l Ladder) Validate() error {
	if len(l) == 0 {
		return errs.Invalid("ladder", "must not be empty")
	}
	for i, d := range l {
		if d <= 0 {
			return errs.Invalid("ladder", "interval %d is %d days, must be positive", i, d)
		}
		if i > 0 && d < l[i-1] {
			return errs.Invalid("ladder", "interval %d (%d days) is shorter than interval %d (%d days)", i, d, i-1, l[i-1])
		}
	}
	return nil
}

// MaxIndex is the highest index that has its own interval.
func (l Ladder) MaxIndex() int {
	return len(l) - 1
}

// Clamp pins index into [0, MaxIndex].
func (l Ladder) Clamp(index int) int {
	if index < 0 {
		return 0
	}
	if index > l.MaxIndex() {
		return l.MaxIndex()
	}
	return index
}

// IntervalDays returns the interval for index. Indices past the end repeat
// the last interval.
func (l Ladder) IntervalDays(index int) int {
	return l[l.Clamp(index)]
}
