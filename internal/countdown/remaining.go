package countdown

import (
	"fmt"
	"time"

	"github.com/fastygo/todo/domain"
)

// Labels shown instead of a countdown.
const (
	ExpiredLabel = "expired"
	InvalidLabel = "invalid deadline"
	PendingLabel = "calculating..."
)

const day = 24 * time.Hour

// Breakdown is a positive duration split into whole units, largest first.
type Breakdown struct {
	Days    int64
	Hours   int64
	Minutes int64
	Seconds int64
}

// Split truncates d to whole seconds and decomposes it.
func Split(d time.Duration) Breakdown {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return Breakdown{
		Days:    total / 86400,
		Hours:   total % 86400 / 3600,
		Minutes: total % 3600 / 60,
		Seconds: total % 60,
	}
}

// TotalSeconds reconstitutes the number of whole seconds.
func (b Breakdown) TotalSeconds() int64 {
	return b.Days*86400 + b.Hours*3600 + b.Minutes*60 + b.Seconds
}

func (b Breakdown) String() string {
	return fmt.Sprintf("%d day(s) %d hour(s) %d minute(s) %d second(s)", b.Days, b.Hours, b.Minutes, b.Seconds)
}

// Until returns the countdown label from now to deadline.
func Until(deadline, now time.Time) string {
	diff := deadline.Sub(now)
	if diff <= 0 {
		return ExpiredLabel
	}
	return Split(diff).String()
}

// Remaining parses deadline and returns its countdown label at now.
// Unparseable deadlines yield InvalidLabel.
func Remaining(deadline string, now time.Time, loc *time.Location) string {
	at, err := domain.ParseDeadline(deadline, loc)
	if err != nil {
		return InvalidLabel
	}
	return Until(at, now)
}

// DaysUntil floors the difference between deadline and now to whole days, so a
// deadline half a day in the past is -1 and 7.9 days ahead is 7.
func DaysUntil(deadline, now time.Time) int64 {
	ms := deadline.Sub(now).Milliseconds()
	const dayMs = int64(day / time.Millisecond)
	days := ms / dayMs
	if ms < 0 && ms%dayMs != 0 {
		days--
	}
	return days
}

// Status classifies a task for display.
type Status string

const (
	StatusCompleted    Status = "completed"
	StatusExpired      Status = "expired"
	StatusNearDeadline Status = "near-deadline"
	StatusNormal       Status = "normal"
	StatusInvalid      Status = "invalid"
)

// Classify places a task into a display status. A task is near its deadline when
// it is due within windowDays whole days.
func Classify(task domain.Task, now time.Time, loc *time.Location, windowDays int) Status {
	if task.Completed {
		return StatusCompleted
	}
	at, err := domain.ParseDeadline(task.Deadline, loc)
	if err != nil {
		return StatusInvalid
	}
	if !at.After(now) {
		return StatusExpired
	}
	if days := DaysUntil(at, now); days >= 0 && days < int64(windowDays) {
		return StatusNearDeadline
	}
	return StatusNormal
}
