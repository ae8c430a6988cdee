package services

import (
	"context"

	"github.com/comitanigiacomo/kanso-habit-store/internal/core/domain"
)

type StatsService struct {
	stores *StoreRegistry
}

func NewStatsService(stores *StoreRegistry) *StatsService {
	return &StatsService{
		stores: stores,
	}
}

func (s *StatsService) GetTodayProgress(ctx context.Context, userID string) (*domain.TodayProgress, error) {
	store, err := s.stores.ForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	progress := store.TodayProgress()
	return &progress, nil
}

func (s *StatsService) GetWeeklyStats(ctx context.Context, userID string) (*domain.WeeklySummary, error) {
	store, err := s.stores.ForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := store.WeeklySummary()
	return &summary, nil
}
