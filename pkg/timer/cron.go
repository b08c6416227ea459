package timer

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vnykmshr/goasync/pkg/common/validation"
)

// cronParser accepts six-field expressions with a seconds column, e.g.
// "*/5 * * * * *" for every five seconds.
var cronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Cron returns a Delay that resolves at the next activation of the cron
// expression, evaluated in loc (nil means time.Local). Each call covers a
// single activation; schedule the next one by calling Cron again after the
// delay resolves.
func Cron(expr string, loc *time.Location) (*Delay, error) {
	if err := validation.ValidateNotEmpty("timer", "cron", expr); err != nil {
		return nil, err
	}

	schedule, err := cronParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression: %w", err)
	}

	if loc == nil {
		loc = time.Local
	}

	d := NewDelay(schedule.Next(time.Now().In(loc)))
	d.source = "cron"
	return d, nil
}
