package services

import (
	"context"

	"github.com/comitanigiacomo/kanso-habit-store/internal/core/domain"
)

// HabitService resolves the caller's store and forwards to it.
type HabitService struct {
	stores *StoreRegistry
}

func NewHabitService(stores *StoreRegistry) *HabitService {
	return &HabitService{
		stores: stores,
	}
}

type CreateHabitInput struct {
	UserID string
	Name   string
	Emoji  string
}

type UpdateHabitInput struct {
	ID     string
	UserID string
	Name   string
	Emoji  string
}

type ToggleInput struct {
	HabitID string
	UserID  string
	// Date defaults to the store's current day when empty.
	Date string
}

type ToggleResult struct {
	HabitID    string `json:"habit_id"`
	Date       string `json:"date"`
	Completed  bool   `json:"completed"`
	Streak     int    `json:"streak"`
	BestStreak int    `json:"best_streak"`
}

type StreakView struct {
	HabitID    string `json:"habit_id"`
	Streak     int    `json:"streak"`
	BestStreak int    `json:"best_streak"`
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	store, err := s.stores.ForUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	id, err := store.AddHabit(input.Name, input.Emoji)
	if err != nil {
		return nil, err
	}

	habit, ok := store.Habit(id)
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	return &habit, nil
}

func (s *HabitService) List(ctx context.Context, userID string) ([]domain.Habit, error) {
	store, err := s.stores.ForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return store.Habits(), nil
}

// Update edits name and emoji. The store ignores unknown ids; the service
// reports them as ErrHabitNotFound so API clients can tell the difference.
func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) (*domain.Habit, error) {
	store, err := s.stores.ForUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := store.EditHabit(input.ID, input.Name, input.Emoji); err != nil {
		return nil, err
	}

	habit, ok := store.Habit(input.ID)
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	return &habit, nil
}

// Delete is idempotent: deleting an unknown habit succeeds.
func (s *HabitService) Delete(ctx context.Context, id string, userID string) error {
	store, err := s.stores.ForUser(ctx, userID)
	if err != nil {
		return err
	}

	store.DeleteHabit(id)
	return nil
}

func (s *HabitService) Toggle(ctx context.Context, input ToggleInput) (*ToggleResult, error) {
	store, err := s.stores.ForUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if _, ok := store.Habit(input.HabitID); !ok {
		return nil, domain.ErrHabitNotFound
	}

	date := input.Date
	if date == "" {
		date = domain.DateKey(store.today())
	}

	completed, err := store.ToggleCompletion(input.HabitID, date)
	if err != nil {
		return nil, err
	}

	habit, ok := store.Habit(input.HabitID)
	if !ok {
		return nil, domain.ErrHabitNotFound
	}

	return &ToggleResult{
		HabitID:    habit.ID,
		Date:       date,
		Completed:  completed,
		Streak:     habit.Streak,
		BestStreak: habit.BestStreak,
	}, nil
}

func (s *HabitService) Streak(ctx context.Context, userID, habitID string) (*StreakView, error) {
	store, err := s.stores.ForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, ok := store.Habit(habitID); !ok {
		return nil, domain.ErrHabitNotFound
	}

	return &StreakView{
		HabitID:    habitID,
		Streak:     store.StreakOf(habitID),
		BestStreak: store.BestStreakOf(habitID),
	}, nil
}
