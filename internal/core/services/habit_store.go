package services

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-habit-store/internal/core/domain"
)

type ChangeKind string

const (
	ChangeHabitAdded        ChangeKind = "habit_added"
	ChangeHabitEdited       ChangeKind = "habit_edited"
	ChangeHabitDeleted      ChangeKind = "habit_deleted"
	ChangeCompletionToggled ChangeKind = "completion_toggled"
	ChangeSettingsUpdated   ChangeKind = "settings_updated"
)

// Change describes one settled mutation. State is a private snapshot taken
// right after the mutation and must be treated as read-only.
type Change struct {
	Key     string
	Kind    ChangeKind
	HabitID string
	Date    string
	At      time.Time
	State   *domain.State
}

// Observer is called after every settled mutation, in subscription order.
// Observers must not call mutators of the store that notified them.
type Observer func(Change)

// Persister receives a snapshot after every mutation. Enqueue must not block.
type Persister interface {
	Enqueue(key string, state *domain.State)
}

type Clock func() time.Time

type HabitStore struct {
	key       string
	now       Clock
	loc       *time.Location
	persister Persister
	logger    *zap.Logger

	mu    sync.RWMutex
	state *domain.State

	notifyMu     sync.Mutex
	observerMu   sync.Mutex
	observers    []observerEntry
	nextObserver int
}

type observerEntry struct {
	id int
	fn Observer
}

type StoreOption func(*HabitStore)

func WithClock(c Clock) StoreOption {
	return func(s *HabitStore) { s.now = c }
}

func WithLocation(loc *time.Location) StoreOption {
	return func(s *HabitStore) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithPersister(p Persister) StoreOption {
	return func(s *HabitStore) { s.persister = p }
}

func WithLogger(l *zap.Logger) StoreOption {
	return func(s *HabitStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewHabitStore wraps state, which the store owns from now on. A nil state starts empty.
func NewHabitStore(key string, state *domain.State, opts ...StoreOption) *HabitStore {
	if state == nil {
		state = domain.NewState()
	}

	s := &HabitStore{
		key:    key,
		now:    time.Now,
		loc:    time.UTC,
		logger: zap.NewNop(),
		state:  state,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *HabitStore) Key() string {
	return s.key
}

func (s *HabitStore) today() time.Time {
	return s.now().In(s.loc)
}

// Subscribe registers fn and returns a function that removes it.
func (s *HabitStore) Subscribe(fn Observer) func() {
	s.observerMu.Lock()
	defer s.observerMu.Unlock()

	id := s.nextObserver
	s.nextObserver++
	s.observers = append(s.observers, observerEntry{id: id, fn: fn})

	return func() {
		s.observerMu.Lock()
		defer s.observerMu.Unlock()
		s.observers = slices.DeleteFunc(s.observers, func(e observerEntry) bool { return e.id == id })
	}
}

// commit runs mutate under the write lock. When it reports a change, the
// snapshot is handed to the persister before the lock is released, so
// snapshots reach it in mutation order, then observers are notified.
func (s *HabitStore) commit(kind ChangeKind, habitID, date string, mutate func(st *domain.State) (bool, error)) error {
	s.mu.Lock()
	changed, err := mutate(s.state)
	if err != nil {
		s.mu.Unlock()
		storeRejectionsTotal.WithLabelValues(string(kind)).Inc()
		return err
	}
	if !changed {
		s.mu.Unlock()
		return nil
	}

	if s.persister != nil {
		s.persister.Enqueue(s.key, s.state.Clone())
	}
	change := Change{
		Key:     s.key,
		Kind:    kind,
		HabitID: habitID,
		Date:    date,
		At:      s.now(),
		State:   s.state.Clone(),
	}

	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	storeMutationsTotal.WithLabelValues(string(kind)).Inc()
	s.logger.Debug("store mutation settled",
		zap.String("key", s.key),
		zap.String("kind", string(kind)),
		zap.String("habit_id", habitID))

	s.observerMu.Lock()
	observers := slices.Clone(s.observers)
	s.observerMu.Unlock()

	for _, o := range observers {
		o.fn(change)
	}
	return nil
}

func (s *HabitStore) AddHabit(name, emoji string) (string, error) {
	var id string
	err := s.commit(ChangeHabitAdded, "", "", func(st *domain.State) (bool, error) {
		h, err := domain.NewHabit(name, emoji, s.today())
		if err != nil {
			return false, err
		}
		st.Habits = append(st.Habits, *h)
		id = h.ID
		return true, nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// EditHabit is a no-op when id is unknown.
func (s *HabitStore) EditHabit(id, name, emoji string) error {
	return s.commit(ChangeHabitEdited, id, "", func(st *domain.State) (bool, error) {
		idx := st.HabitIndex(id)
		if idx < 0 {
			return false, nil
		}
		updated := st.Habits[idx]
		if err := updated.Update(name, emoji); err != nil {
			return false, err
		}
		if updated == st.Habits[idx] {
			return false, nil
		}
		st.Habits[idx] = updated
		return true, nil
	})
}

// DeleteHabit keeps the habit's completion entries as orphans.
func (s *HabitStore) DeleteHabit(id string) {
	_ = s.commit(ChangeHabitDeleted, id, "", func(st *domain.State) (bool, error) {
		idx := st.HabitIndex(id)
		if idx < 0 {
			return false, nil
		}
		st.Habits = slices.Delete(st.Habits, idx, idx+1)
		return true, nil
	})
}

// ToggleCompletion flips the completion of habitID on date and recomputes that
// habit's streak in the same critical section. It reports whether the habit is
// completed on date afterwards; unknown habits are left untouched.
func (s *HabitStore) ToggleCompletion(habitID, date string) (bool, error) {
	key, err := domain.ParseDate(date)
	if err != nil {
		storeRejectionsTotal.WithLabelValues(string(ChangeCompletionToggled)).Inc()
		return false, err
	}

	var completed bool
	err = s.commit(ChangeCompletionToggled, habitID, key, func(st *domain.State) (bool, error) {
		idx := st.HabitIndex(habitID)
		if idx < 0 {
			return false, nil
		}
		completed = st.Completions.Toggle(key, habitID)
		st.Habits[idx].UpdateStreak(domain.CalculateStreak(st.Completions, habitID, s.today()))
		return true, nil
	})
	return completed, err
}

// ToggleToday toggles habitID on the store's current calendar day.
func (s *HabitStore) ToggleToday(habitID string) (bool, error) {
	return s.ToggleCompletion(habitID, domain.DateKey(s.today()))
}

func (s *HabitStore) SetProfilePicture(uri *string) {
	_ = s.commit(ChangeSettingsUpdated, "", "", func(st *domain.State) (bool, error) {
		var next *string
		if uri != nil {
			v := *uri
			next = &v
		}
		st.Settings.ProfilePicture = next
		return true, nil
	})
}

func (s *HabitStore) SetNotificationsEnabled(enabled bool) {
	_ = s.commit(ChangeSettingsUpdated, "", "", func(st *domain.State) (bool, error) {
		if st.Settings.NotificationsEnabled == enabled {
			return false, nil
		}
		st.Settings.NotificationsEnabled = enabled
		return true, nil
	})
}

func (s *HabitStore) SetNotificationTime(hhmm string) error {
	return s.commit(ChangeSettingsUpdated, "", "", func(st *domain.State) (bool, error) {
		if err := domain.ValidateReminderTime(hhmm); err != nil {
			return false, err
		}
		if st.Settings.NotificationTime == hhmm {
			return false, nil
		}
		st.Settings.NotificationTime = hhmm
		return true, nil
	})
}

// StreakOf scans the completion log backwards from today. Unknown habits have no streak.
func (s *HabitStore) StreakOf(habitID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.HabitIndex(habitID) < 0 {
		return 0
	}
	return domain.CalculateStreak(s.state.Completions, habitID, s.today())
}

func (s *HabitStore) BestStreakOf(habitID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.state.HabitIndex(habitID)
	if idx < 0 {
		return 0
	}
	return s.state.Habits[idx].BestStreak
}

func (s *HabitStore) Habit(id string) (domain.Habit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.state.HabitIndex(id)
	if idx < 0 {
		return domain.Habit{}, false
	}
	return s.state.Habits[idx], true
}

func (s *HabitStore) Habits() []domain.Habit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.state.Habits)
}

func (s *HabitStore) Completions() domain.CompletionLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Completions.Clone()
}

func (s *HabitStore) Settings() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Settings.Clone()
}

func (s *HabitStore) Snapshot() *domain.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

func (s *HabitStore) TodayProgress() domain.TodayProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return TodayProgressOf(s.state, s.today())
}

// WeeklyProgress returns seven days, oldest first, ending today.
func (s *HabitStore) WeeklyProgress() []domain.DayProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return weeklyProgressOf(s.state, s.today())
}

func (s *HabitStore) WeeklySummary() domain.WeeklySummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	days := weeklyProgressOf(s.state, s.today())
	sum := 0
	for _, d := range days {
		sum += d.Percentage
	}

	top := slices.Clone(s.state.Habits)
	slices.SortStableFunc(top, func(a, b domain.Habit) int {
		return cmp.Compare(b.Streak, a.Streak)
	})
	if len(top) > domain.TopHabitsLimit {
		top = top[:domain.TopHabitsLimit]
	}

	return domain.WeeklySummary{
		Days:              days,
		AverageCompletion: domain.Percentage(sum, 100*len(days)),
		TopHabits:         top,
	}
}

// TodayProgressOf derives the progress view of st for the calendar day of today.
// It is exported for collaborators that only hold a Change snapshot.
func TodayProgressOf(st *domain.State, today time.Time) domain.TodayProgress {
	date := domain.DateKey(today)

	p := domain.TodayProgress{
		Date:            date,
		Total:           len(st.Habits),
		CompletedHabits: []domain.Habit{},
		RemainingHabits: []domain.Habit{},
	}
	for _, h := range st.Habits {
		if st.Completions.Has(date, h.ID) {
			p.CompletedHabits = append(p.CompletedHabits, h)
		} else {
			p.RemainingHabits = append(p.RemainingHabits, h)
		}
	}
	p.Completed = len(p.CompletedHabits)
	p.Percentage = domain.Percentage(p.Completed, p.Total)
	return p
}

func weeklyProgressOf(st *domain.State, today time.Time) []domain.DayProgress {
	live := make(map[string]struct{}, len(st.Habits))
	for _, h := range st.Habits {
		live[h.ID] = struct{}{}
	}

	total := len(st.Habits)
	days := make([]domain.DayProgress, 0, domain.WeekLength)
	for i := domain.WeekLength - 1; i >= 0; i-- {
		day := domain.DaysBefore(today, i)
		date := domain.DateKey(day)
		completed := st.Completions.CountAmong(date, live)

		days = append(days, domain.DayProgress{
			Date:       date,
			Weekday:    day.Format("Mon"),
			Completed:  completed,
			Total:      total,
			Percentage: domain.Percentage(completed, total),
		})
	}
	return days
}
