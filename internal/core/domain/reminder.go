package domain

import (
	"fmt"
	"time"
)

// Reminder is the plan handed to the notification collaborator. Delivery is not our concern.
type Reminder struct {
	Key        string    `json:"key"`
	At         time.Time `json:"at"`
	HabitNames []string  `json:"habit_names"`
	Message    string    `json:"message"`
}

func ReminderMessage(habitNames []string) string {
	if len(habitNames) == 1 {
		return fmt.Sprintf("Don't forget: %s", habitNames[0])
	}
	return fmt.Sprintf("Don't forget your %d habits today!", len(habitNames))
}

// PlanReminder decides what the daily reminder should be for the given
// remaining habits. It returns nil when the reminder must be cancelled.
func PlanReminder(key string, now time.Time, settings Settings, remaining []Habit) (*Reminder, error) {
	if !settings.NotificationsEnabled || len(remaining) == 0 {
		return nil, nil
	}

	at, err := NextReminderAt(now, settings.NotificationTime)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(remaining))
	for _, h := range remaining {
		names = append(names, h.Name)
	}

	return &Reminder{
		Key:        key,
		At:         at,
		HabitNames: names,
		Message:    ReminderMessage(names),
	}, nil
}
