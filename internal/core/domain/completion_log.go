package domain

import "slices"

// CompletionLog maps a date key to the ids of the habits completed that day.
// A day never lists the same id twice.
type CompletionLog map[string][]string

func (l CompletionLog) Has(date, habitID string) bool {
	return slices.Contains(l[date], habitID)
}

// Toggle flips habitID's membership for date and reports whether it is now completed.
func (l CompletionLog) Toggle(date, habitID string) bool {
	ids := l[date]
	if idx := slices.Index(ids, habitID); idx >= 0 {
		remaining := slices.Delete(slices.Clone(ids), idx, idx+1)
		if len(remaining) == 0 {
			delete(l, date)
		} else {
			l[date] = remaining
		}
		return false
	}

	l[date] = append(slices.Clone(ids), habitID)
	return true
}

// CountAmong counts the ids completed on date that are members of live.
// Orphans left behind by deleted habits are ignored.
func (l CompletionLog) CountAmong(date string, live map[string]struct{}) int {
	n := 0
	for _, id := range l[date] {
		if _, ok := live[id]; ok {
			n++
		}
	}
	return n
}

func (l CompletionLog) Clone() CompletionLog {
	out := make(CompletionLog, len(l))
	for date, ids := range l {
		out[date] = slices.Clone(ids)
	}
	return out
}
