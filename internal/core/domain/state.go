package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"
)

// StateFormatVersion tags every encoded State record.
const StateFormatVersion = 1

var ErrUnsupportedStateVersion = errors.New("unsupported state record version")

// State is the full record owned by a habit store.
type State struct {
	Habits      []Habit       `json:"habits"`
	Completions CompletionLog `json:"completions"`
	Settings    Settings      `json:"settings"`
}

func NewState() *State {
	return &State{
		Habits:      []Habit{},
		Completions: CompletionLog{},
		Settings:    DefaultSettings(),
	}
}

// NewSeededState returns the starter record shown on a fresh install.
func NewSeededState(today time.Time) (*State, error) {
	s := NewState()
	for _, starter := range []struct{ name, emoji string }{
		{"Drink 8 Glasses Water", "💧"},
		{"Exercise 30 mins", "💪"},
	} {
		h, err := NewHabit(starter.name, starter.emoji, today)
		if err != nil {
			return nil, err
		}
		s.Habits = append(s.Habits, *h)
	}
	return s, nil
}

func (s *State) Clone() *State {
	return &State{
		Habits:      slices.Clone(s.Habits),
		Completions: s.Completions.Clone(),
		Settings:    s.Settings.Clone(),
	}
}

func (s *State) HabitIndex(id string) int {
	return slices.IndexFunc(s.Habits, func(h Habit) bool { return h.ID == id })
}

type stateRecord struct {
	Version int    `json:"version"`
	State   *State `json:"state"`
}

func EncodeState(s *State) ([]byte, error) {
	data, err := json.Marshal(stateRecord{Version: StateFormatVersion, State: s})
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return data, nil
}

func DecodeState(data []byte) (*State, error) {
	var rec stateRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode state: %w", err)
	}
	if rec.Version != StateFormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedStateVersion, rec.Version)
	}

	s := rec.State
	if s == nil {
		s = NewState()
	}
	if s.Habits == nil {
		s.Habits = []Habit{}
	}
	if s.Completions == nil {
		s.Completions = CompletionLog{}
	}
	if s.Settings.NotificationTime == "" {
		s.Settings.NotificationTime = DefaultNotificationTime
	}
	return s, nil
}
