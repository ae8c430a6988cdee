package domain

import (
	"fmt"
	"regexp"
	"time"
)

var ErrInvalidReminder = fmt.Errorf("%w: invalid reminder format (must be HH:MM 24h)", ErrValidation)

var reminderRegex = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]$`)

const DefaultNotificationTime = "18:00"

type Settings struct {
	ProfilePicture       *string `json:"profile_picture"`
	NotificationsEnabled bool    `json:"notifications_enabled"`
	NotificationTime     string  `json:"notification_time"`
}

func DefaultSettings() Settings {
	return Settings{
		NotificationsEnabled: true,
		NotificationTime:     DefaultNotificationTime,
	}
}

func ValidateReminderTime(hhmm string) error {
	if !reminderRegex.MatchString(hhmm) {
		return ErrInvalidReminder
	}
	return nil
}

// NextReminderAt returns the next instant, strictly after now, at which the
// daily HH:MM reminder fires in now's location.
func NextReminderAt(now time.Time, hhmm string) (time.Time, error) {
	if err := ValidateReminderTime(hhmm); err != nil {
		return time.Time{}, err
	}

	clock, _ := time.Parse("15:04", hhmm)
	y, m, d := now.Date()
	next := time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, now.Location())
	if !next.After(now) {
		next = time.Date(y, m, d+1, clock.Hour(), clock.Minute(), 0, 0, now.Location())
	}
	return next, nil
}

func (s Settings) Clone() Settings {
	out := s
	if s.ProfilePicture != nil {
		uri := *s.ProfilePicture
		out.ProfilePicture = &uri
	}
	return out
}
