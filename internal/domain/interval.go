package domain

import "time"

// Interval полуоткрытый интервал [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// IsValid returns true when Start < End
func (i Interval) IsValid() bool {
	return i.Start.Before(i.End)
}

// Overlaps строгая проверка пересечения полуоткрытых интервалов.
// Касание концами (10:00-11:00 и 11:00-12:00) пересечением не считается.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// Duration returns End - Start
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}
