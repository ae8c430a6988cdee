package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ErrValidation is wrapped by every input error the store rejects before mutating state.
var ErrValidation = errors.New("validation error")

var (
	ErrHabitNameEmpty    = fmt.Errorf("%w: habit name cannot be empty", ErrValidation)
	ErrHabitNameTooLong  = fmt.Errorf("%w: habit name is too long (max %d chars)", ErrValidation, MaxNameLen)
	ErrHabitEmojiTooLong = fmt.Errorf("%w: habit emoji is too long (max %d bytes)", ErrValidation, MaxEmojiLen)
	ErrHabitNotFound     = errors.New("habit not found")
)

const (
	DefaultEmoji = "📝"
	MaxNameLen   = 50
	MaxEmojiLen  = 16
)

type Habit struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Emoji      string `json:"emoji"`
	Streak     int    `json:"streak"`
	BestStreak int    `json:"best_streak"`
	CreatedAt  string `json:"created_at"`
}

func validateAndNormalize(name, emoji string) (string, string, error) {
	trimmedName := strings.TrimSpace(name)
	if trimmedName == "" {
		return "", "", ErrHabitNameEmpty
	}
	if utf8.RuneCountInString(trimmedName) > MaxNameLen {
		return "", "", ErrHabitNameTooLong
	}

	trimmedEmoji := strings.TrimSpace(emoji)
	if trimmedEmoji == "" {
		trimmedEmoji = DefaultEmoji
	}
	if len(trimmedEmoji) > MaxEmojiLen {
		return "", "", ErrHabitEmojiTooLong
	}

	return trimmedName, trimmedEmoji, nil
}

// NewHabit builds a habit created on the calendar day of today.
func NewHabit(name, emoji string, today time.Time) (*Habit, error) {
	cleanName, cleanEmoji, err := validateAndNormalize(name, emoji)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate habit id: %w", err)
	}

	return &Habit{
		ID:        id.String(),
		Name:      cleanName,
		Emoji:     cleanEmoji,
		CreatedAt: DateKey(today),
	}, nil
}

// Update changes the display fields only; streak counters are owned by the completion log.
func (h *Habit) Update(name, emoji string) error {
	cleanName, cleanEmoji, err := validateAndNormalize(name, emoji)
	if err != nil {
		return err
	}

	h.Name = cleanName
	h.Emoji = cleanEmoji
	return nil
}

// UpdateStreak records a freshly computed streak. BestStreak never decreases.
func (h *Habit) UpdateStreak(current int) {
	if current < 0 {
		current = 0
	}
	h.Streak = current
	if current > h.BestStreak {
		h.BestStreak = current
	}
}
