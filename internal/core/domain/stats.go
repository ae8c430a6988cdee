package domain

import "math"

// WeekLength is the number of days covered by the weekly views, today included.
const WeekLength = 7

// TopHabitsLimit bounds the leaderboard in WeeklySummary.
const TopHabitsLimit = 3

type TodayProgress struct {
	Date            string  `json:"date"`
	Completed       int     `json:"completed"`
	Total           int     `json:"total"`
	Percentage      int     `json:"percentage"`
	CompletedHabits []Habit `json:"completed_habits"`
	RemainingHabits []Habit `json:"remaining_habits"`
}

type DayProgress struct {
	Date       string `json:"date"`
	Weekday    string `json:"weekday"`
	Completed  int    `json:"completed"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
}

type WeeklySummary struct {
	Days              []DayProgress `json:"days"`
	AverageCompletion int           `json:"average_completion"`
	TopHabits         []Habit       `json:"top_habits"`
}

// Percentage returns round(100 * completed / total), or 0 when total is 0.
func Percentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(100*completed) / float64(total)))
}
