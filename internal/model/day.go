package model

import "time"

// Day is a day-granularity date, stored as the number of days since the Unix
// epoch. Start and end dates use Day rather than timestamps so that date
// arithmetic (deadlines, streaks, expected progress) is integer math.
type Day int64

const secondsPerDay = 24 * 60 * 60

// DayOf truncates a point in time to its UTC calendar day.
func DayOf(t time.Time) Day {
	return Day(t.UTC().Unix() / secondsPerDay)
}

// Time returns midnight UTC of the day.
func (d Day) Time() time.Time {
	return time.Unix(int64(d)*secondsPerDay, 0).UTC()
}

// Format renders the day as YYYY-MM-DD.
func (d Day) Format() string {
	return d.Time().Format("2006-01-02")
}

// ParseDay parses a YYYY-MM-DD string into a Day.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return 0, err
	}
	return DayOf(t), nil
}
