package scheduling

import "time"

// LocalDate возвращает полночь календарного дня t в часовом поясе loc
func LocalDate(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	y, m, d := local.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DayBounds возвращает [начало, конец) календарного дня date в часовом поясе loc
func DayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
