package services_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habit-store/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-store/internal/core/services"
)

var fixedNow = time.Date(2024, time.January, 15, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func daysAgo(n int) string {
	return domain.DateKey(domain.DaysBefore(fixedNow, n))
}

type recordingPersister struct {
	mu        sync.Mutex
	snapshots []*domain.State
}

func (p *recordingPersister) Enqueue(key string, state *domain.State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snapshots = append(p.snapshots, state)
}

func (p *recordingPersister) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.snapshots)
}

func (p *recordingPersister) last() *domain.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshots[len(p.snapshots)-1]
}

func newTestStore(opts ...services.StoreOption) *services.HabitStore {
	return services.NewHabitStore("habit-storage:test", nil, append([]services.StoreOption{services.WithClock(fixedClock)}, opts...)...)
}

func TestHabitStore_AddEditDelete(t *testing.T) {
	t.Parallel()

	t.Run("Success: Add Appends In Order", func(t *testing.T) {
		t.Parallel()
		store := newTestStore()

		a, err := store.AddHabit("Read", "📚")
		require.NoError(t, err)
		b, err := store.AddHabit("Walk", "")
		require.NoError(t, err)

		habits := store.Habits()
		require.Len(t, habits, 2)
		assert.Equal(t, a, habits[0].ID)
		assert.Equal(t, b, habits[1].ID)
		assert.Equal(t, "2024-01-15", habits[0].CreatedAt)
		assert.Equal(t, domain.DefaultEmoji, habits[1].Emoji)
	})

	t.Run("Fail: Invalid Name Changes Nothing", func(t *testing.T) {
		t.Parallel()
		persister := &recordingPersister{}
		store := newTestStore(services.WithPersister(persister))

		_, err := store.AddHabit("  ", "🔥")

		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Empty(t, store.Habits())
		assert.Zero(t, persister.count())
	})

	t.Run("Success: Edit Keeps Streaks", func(t *testing.T) {
		t.Parallel()
		store := newTestStore()
		id, _ := store.AddHabit("Read", "📚")
		_, _ = store.ToggleToday(id)

		require.NoError(t, store.EditHabit(id, "Read more", "📖"))

		h, ok := store.Habit(id)
		require.True(t, ok)
		assert.Equal(t, "Read more", h.Name)
		assert.Equal(t, "📖", h.Emoji)
		assert.Equal(t, 1, h.Streak)
		assert.Equal(t, 1, h.BestStreak)
	})

	t.Run("Success: Edit Unknown Is A No-Op", func(t *testing.T) {
		t.Parallel()
		persister := &recordingPersister{}
		store := newTestStore(services.WithPersister(persister))

		assert.NoError(t, store.EditHabit("missing", "Name", ""))
		assert.Zero(t, persister.count())
	})

	t.Run("Success: Delete Keeps Orphans And Progress Works", func(t *testing.T) {
		t.Parallel()
		store := newTestStore()
		keep, _ := store.AddHabit("Keep", "")
		gone, _ := store.AddHabit("Gone", "")
		_, _ = store.ToggleCompletion(gone, daysAgo(0))
		_, _ = store.ToggleCompletion(gone, daysAgo(1))
		_, _ = store.ToggleCompletion(keep, daysAgo(1))

		store.DeleteHabit(gone)
		store.DeleteHabit("missing")

		assert.Len(t, store.Habits(), 1)
		assert.True(t, store.Completions().Has(daysAgo(0), gone), "orphan entries stay in the log")

		var week []domain.DayProgress
		assert.NotPanics(t, func() { week = store.WeeklyProgress() })
		require.Len(t, week, domain.WeekLength)
		assert.Equal(t, 0, week[6].Completed, "orphans never count")
		assert.Equal(t, 1, week[5].Completed)
		assert.Equal(t, 100, week[5].Percentage)
		assert.Equal(t, 0, store.TodayProgress().Completed)
	})
}

func TestHabitStore_Streaks(t *testing.T) {
	t.Parallel()

	t.Run("Success: Toggle Today Twice", func(t *testing.T) {
		t.Parallel()
		store := newTestStore()
		id, _ := store.AddHabit("Drink Water", "💧")

		completed, err := store.ToggleToday(id)
		require.NoError(t, err)
		assert.True(t, completed)
		assert.Equal(t, 1, store.StreakOf(id))
		assert.Equal(t, 1, store.BestStreakOf(id))

		completed, err = store.ToggleToday(id)
		require.NoError(t, err)
		assert.False(t, completed)
		assert.Equal(t, 0, store.StreakOf(id))
		assert.Equal(t, 1, store.BestStreakOf(id))

		h, _ := store.Habit(id)
		assert.Equal(t, 0, h.Streak)
	})

	t.Run("Success: Gap Today Breaks The Streak", func(t *testing.T) {
		t.Parallel()
		store := newTestStore()
		id, _ := store.AddHabit("Run", "")

		for _, d := range []int{3, 2, 1} {
			_, err := store.ToggleCompletion(id, daysAgo(d))
			require.NoError(t, err)
		}

		assert.Equal(t, 0, store.StreakOf(id))
		h, _ := store.Habit(id)
		assert.Equal(t, 0, h.Streak)
		assert.Equal(t, 0, h.BestStreak)
	})

	t.Run("Success: Backfill Completes A Run", func(t *testing.T) {
		t.Parallel()
		store := newTestStore()
		id, _ := store.AddHabit("Run", "")

		for _, d := range []int{0, 2, 1} {
			_, _ = store.ToggleCompletion(id, daysAgo(d))
		}

		assert.Equal(t, 3, store.StreakOf(id))
		assert.Equal(t, 3, store.BestStreakOf(id))
	})

	t.Run("Success: Only The Toggled Habit Is Recomputed", func(t *testing.T) {
		t.Parallel()
		store := newTestStore()
		a, _ := store.AddHabit("A", "")
		b, _ := store.AddHabit("B", "")
		_, _ = store.ToggleToday(a)

		_, _ = store.ToggleToday(b)

		ha, _ := store.Habit(a)
		hb, _ := store.Habit(b)
		assert.Equal(t, 1, ha.Streak)
		assert.Equal(t, 1, hb.Streak)
	})

	t.Run("Success: Unknown Habit", func(t *testing.T) {
		t.Parallel()
		persister := &recordingPersister{}
		store := newTestStore(services.WithPersister(persister))

		completed, err := store.ToggleToday("missing")

		assert.NoError(t, err)
		assert.False(t, completed)
		assert.Empty(t, store.Completions())
		assert.Zero(t, store.StreakOf("missing"))
		assert.Zero(t, store.BestStreakOf("missing"))
		assert.Zero(t, persister.count())
	})

	t.Run("Fail: Bad Date", func(t *testing.T) {
		t.Parallel()
		store := newTestStore()
		id, _ := store.AddHabit("Run", "")

		_, err := store.ToggleCompletion(id, "yesterday")

		assert.ErrorIs(t, err, domain.ErrInvalidDate)
		assert.Empty(t, store.Completions())
	})
}

func TestHabitStore_Progress(t *testing.T) {
	t.Parallel()

	t.Run("Success: Empty Store", func(t *testing.T) {
		t.Parallel()
		store := newTestStore()

		p := store.TodayProgress()
		assert.Equal(t, "2024-01-15", p.Date)
		assert.Zero(t, p.Total)
		assert.Zero(t, p.Percentage)
		assert.NotNil(t, p.CompletedHabits)

		summary := store.WeeklySummary()
		assert.Len(t, summary.Days, 7)
		assert.Zero(t, summary.AverageCompletion)
		assert.Empty(t, summary.TopHabits)
	})

	t.Run("Success: Today Splits Habits", func(t *testing.T) {
		t.Parallel()
		store := newTestStore()
		a, _ := store.AddHabit("A", "")
		_, _ = store.AddHabit("B", "")
		_, _ = store.AddHabit("C", "")
		_, _ = store.ToggleToday(a)

		p := store.TodayProgress()
		assert.Equal(t, 1, p.Completed)
		assert.Equal(t, 3, p.Total)
		assert.Equal(t, 33, p.Percentage)
		require.Len(t, p.CompletedHabits, 1)
		assert.Equal(t, a, p.CompletedHabits[0].ID)
		assert.Len(t, p.RemainingHabits, 2)
	})

	t.Run("Success: Week Is Oldest First", func(t *testing.T) {
		t.Parallel()
		store := newTestStore()
		a, _ := store.AddHabit("A", "")
		b, _ := store.AddHabit("B", "")
		_, _ = store.ToggleCompletion(a, daysAgo(6))
		_, _ = store.ToggleCompletion(b, daysAgo(6))
		_, _ = store.ToggleCompletion(a, daysAgo(0))
		_, _ = store.ToggleCompletion(a, daysAgo(7))

		week := store.WeeklyProgress()

		assert.Equal(t, "2024-01-09", week[0].Date)
		assert.Equal(t, "Tue", week[0].Weekday)
		assert.Equal(t, 100, week[0].Percentage)
		assert.Equal(t, "2024-01-15", week[6].Date)
		assert.Equal(t, "Mon", week[6].Weekday)
		assert.Equal(t, 50, week[6].Percentage)
		for _, d := range week[1:6] {
			assert.Zero(t, d.Completed)
		}

		summary := store.WeeklySummary()
		assert.Equal(t, 21, summary.AverageCompletion)
	})

	t.Run("Success: Top Habits By Streak", func(t *testing.T) {
		t.Parallel()
		store := newTestStore()
		ids := make([]string, 4)
		for i, name := range []string{"A", "B", "C", "D"} {
			ids[i], _ = store.AddHabit(name, "")
		}
		for i := 0; i < 3; i++ {
			_, _ = store.ToggleCompletion(ids[3], daysAgo(i))
		}
		_, _ = store.ToggleToday(ids[1])

		top := store.WeeklySummary().TopHabits

		require.Len(t, top, domain.TopHabitsLimit)
		assert.Equal(t, "D", top[0].Name)
		assert.Equal(t, "B", top[1].Name)
		assert.Equal(t, "A", top[2].Name, "ties keep insertion order")
	})

	t.Run("Success: Follows Store Location", func(t *testing.T) {
		t.Parallel()
		tokyo := time.FixedZone("JST", 9*3600)
		late := func() time.Time { return time.Date(2024, time.January, 15, 20, 0, 0, 0, time.UTC) }
		store := services.NewHabitStore("k", nil, services.WithClock(late), services.WithLocation(tokyo))

		assert.Equal(t, "2024-01-16", store.TodayProgress().Date)
	})
}

func TestHabitStore_Settings(t *testing.T) {
	t.Parallel()

	t.Run("Success: Update Settings", func(t *testing.T) {
		t.Parallel()
		store := newTestStore()
		uri := "file:///me.png"

		store.SetProfilePicture(&uri)
		store.SetNotificationsEnabled(false)
		require.NoError(t, store.SetNotificationTime("07:30"))
		uri = "mutated"

		s := store.Settings()
		require.NotNil(t, s.ProfilePicture)
		assert.Equal(t, "file:///me.png", *s.ProfilePicture)
		assert.False(t, s.NotificationsEnabled)
		assert.Equal(t, "07:30", s.NotificationTime)

		store.SetProfilePicture(nil)
		assert.Nil(t, store.Settings().ProfilePicture)
	})

	t.Run("Fail: Bad Reminder Time", func(t *testing.T) {
		t.Parallel()
		store := newTestStore()

		err := store.SetNotificationTime("25:00")

		assert.ErrorIs(t, err, domain.ErrInvalidReminder)
		assert.Equal(t, domain.DefaultNotificationTime, store.Settings().NotificationTime)
	})
}

func TestHabitStore_Observers(t *testing.T) {
	t.Parallel()

	t.Run("Success: Notified In Subscription Order", func(t *testing.T) {
		t.Parallel()
		store := newTestStore()

		var calls []string
		var kinds []services.ChangeKind
		store.Subscribe(func(c services.Change) {
			calls = append(calls, "first")
			kinds = append(kinds, c.Kind)
		})
		store.Subscribe(func(services.Change) { calls = append(calls, "second") })

		id, _ := store.AddHabit("Read", "")
		_, _ = store.ToggleToday(id)

		assert.Equal(t, []string{"first", "second", "first", "second"}, calls)
		assert.Equal(t, []services.ChangeKind{services.ChangeHabitAdded, services.ChangeCompletionToggled}, kinds)
	})

	t.Run("Success: Snapshot Reflects Settled State", func(t *testing.T) {
		t.Parallel()
		store := newTestStore()
		id, _ := store.AddHabit("Read", "")

		var got services.Change
		store.Subscribe(func(c services.Change) { got = c })

		_, _ = store.ToggleToday(id)

		assert.Equal(t, "habit-storage:test", got.Key)
		assert.Equal(t, id, got.HabitID)
		assert.Equal(t, "2024-01-15", got.Date)
		require.Len(t, got.State.Habits, 1)
		assert.Equal(t, 1, got.State.Habits[0].Streak, "streak is derived before observers run")

		got.State.Habits[0].Name = "tampered"
		h, _ := store.Habit(id)
		assert.Equal(t, "Read", h.Name)
	})

	t.Run("Success: Unsubscribe And No-Ops", func(t *testing.T) {
		t.Parallel()
		store := newTestStore()

		calls := 0
		cancel := store.Subscribe(func(services.Change) { calls++ })

		store.SetNotificationsEnabled(true)
		store.DeleteHabit("missing")
		assert.Zero(t, calls, "unchanged state notifies nobody")

		_, _ = store.AddHabit("Read", "")
		assert.Equal(t, 1, calls)

		cancel()
		_, _ = store.AddHabit("Walk", "")
		assert.Equal(t, 1, calls)
	})
}

func TestHabitStore_Persister(t *testing.T) {
	t.Parallel()

	persister := &recordingPersister{}
	store := newTestStore(services.WithPersister(persister))

	id, _ := store.AddHabit("Read", "")
	_, _ = store.ToggleToday(id)
	require.NoError(t, store.EditHabit(id, "Read more", ""))

	require.Equal(t, 3, persister.count())
	last := persister.last()
	assert.Equal(t, "Read more", last.Habits[0].Name)
	assert.True(t, last.Completions.Has("2024-01-15", id))

	last.Habits[0].Name = "mutated"
	h, _ := store.Habit(id)
	assert.Equal(t, "Read more", h.Name)
}

func TestHabitStore_ConcurrentToggles(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	ids := make([]string, 8)
	for i := range ids {
		ids[i], _ = store.AddHabit("H", "")
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for i := 0; i < 5; i++ {
				_, _ = store.ToggleCompletion(id, daysAgo(i))
			}
		}(id)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, 5, store.StreakOf(id))
		h, _ := store.Habit(id)
		assert.Equal(t, 5, h.Streak)
	}
	assert.Equal(t, 100, store.TodayProgress().Percentage)
}
