package domain

import "time"

// StreakLookbackDays caps how far back a streak can reach.
const StreakLookbackDays = 365

// CalculateStreak counts the consecutive completed days for habitID ending
// today. Day 0 is today: a missing completion today yields 0. The scan never
// looks further back than StreakLookbackDays.
func CalculateStreak(log CompletionLog, habitID string, today time.Time) int {
	streak := 0
	for i := 0; i < StreakLookbackDays; i++ {
		if !log.Has(DateKey(DaysBefore(today, i)), habitID) {
			break
		}
		streak++
	}
	return streak
}
