package services

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mkoster/tally/internal/models"
	"github.com/mkoster/tally/internal/store"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrNameRequired  = errors.New("name is required")
)

// HabitView is a habit with its derived streak attached. The streak is
// computed immediately before a habit leaves the service and never read
// from a caller or from storage.
type HabitView struct {
	models.Habit
	Streak int `json:"streak"`
}

type CreateHabitInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// UpdateHabitInput carries a partial habit: nil fields keep the stored
// value. There is deliberately no streak field.
type UpdateHabitInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Color       *string  `json:"color"`
	CheckIns    []string `json:"checkIns"`
}

// HabitService orchestrates the document store and the streak
// calculator. The whole-document load/modify/save cycle is vulnerable
// to lost updates under interleaving, so every mutation runs under one
// mutex: a single-writer queue of depth one.
type HabitService struct {
	mu    sync.Mutex
	store store.Store
	now   func() time.Time
}

func NewHabitService(documents store.Store) *HabitService {
	return &HabitService{store: documents, now: time.Now}
}

func (service *HabitService) List(viewerID string) ([]HabitView, error) {
	document, err := service.store.Load()
	if err != nil {
		return nil, err
	}

	today := service.now()
	views := make([]HabitView, 0, len(document.Habits))
	for _, habit := range document.Habits {
		if viewerID != "" && !habit.VisibleTo(viewerID) {
			continue
		}
		views = append(views, service.view(habit, today))
	}
	return views, nil
}

func (service *HabitService) Get(habitID string) (HabitView, error) {
	document, err := service.store.Load()
	if err != nil {
		return HabitView{}, err
	}

	for _, habit := range document.Habits {
		if habit.ID == habitID {
			return service.view(habit, service.now()), nil
		}
	}
	return HabitView{}, ErrHabitNotFound
}

func (service *HabitService) Create(ownerID string, input CreateHabitInput) (HabitView, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return HabitView{}, ErrNameRequired
	}

	color := input.Color
	if color == "" {
		color = models.DefaultColor
	}

	habit := models.Habit{
		ID:          uuid.NewString(),
		Name:        name,
		Description: input.Description,
		Color:       color,
		CheckIns:    []string{},
		CreatedAt:   service.now(),
	}
	if ownerID != "" {
		habit.OwnerID = &ownerID
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	document, err := service.store.Load()
	if err != nil {
		return HabitView{}, err
	}
	document.Habits = append(document.Habits, habit)
	if err := service.store.Save(document); err != nil {
		return HabitView{}, err
	}
	return service.view(habit, service.now()), nil
}

// Update merges the supplied fields over the stored habit. A check-in
// collection that is not well formed (any entry that is not a calendar
// date) is discarded in favor of the stored one.
func (service *HabitService) Update(habitID string, input UpdateHabitInput) (HabitView, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	document, err := service.store.Load()
	if err != nil {
		return HabitView{}, err
	}

	for index := range document.Habits {
		habit := &document.Habits[index]
		if habit.ID != habitID {
			continue
		}

		if input.Name != nil {
			if name := strings.TrimSpace(*input.Name); name != "" {
				habit.Name = name
			}
		}
		if input.Description != nil {
			habit.Description = *input.Description
		}
		if input.Color != nil {
			habit.Color = *input.Color
		}
		if days, ok := normalizeCheckIns(input.CheckIns); ok {
			habit.CheckIns = days
		}

		if err := service.store.Save(document); err != nil {
			return HabitView{}, err
		}
		return service.view(*habit, service.now()), nil
	}
	return HabitView{}, ErrHabitNotFound
}

// Delete removes the habit if present. Deleting an unknown id is not an
// error.
func (service *HabitService) Delete(habitID string) error {
	service.mu.Lock()
	defer service.mu.Unlock()

	document, err := service.store.Load()
	if err != nil {
		return err
	}

	remaining := make([]models.Habit, 0, len(document.Habits))
	for _, habit := range document.Habits {
		if habit.ID != habitID {
			remaining = append(remaining, habit)
		}
	}
	document.Habits = remaining
	return service.store.Save(document)
}

// CheckIn records today's date for the habit. A repeat call on the same
// day is a no-op that returns the unchanged habit.
func (service *HabitService) CheckIn(habitID string) (HabitView, error) {
	return service.mutateCheckIns(habitID, func(days []string, today string) []string {
		for _, day := range days {
			if day == today {
				return days
			}
		}
		return append(days, today)
	})
}

// UndoCheckIn removes today's date if present.
func (service *HabitService) UndoCheckIn(habitID string) (HabitView, error) {
	return service.mutateCheckIns(habitID, func(days []string, today string) []string {
		kept := make([]string, 0, len(days))
		for _, day := range days {
			if day != today {
				kept = append(kept, day)
			}
		}
		return kept
	})
}

func (service *HabitService) mutateCheckIns(habitID string, mutate func(days []string, today string) []string) (HabitView, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	document, err := service.store.Load()
	if err != nil {
		return HabitView{}, err
	}

	now := service.now()
	for index := range document.Habits {
		habit := &document.Habits[index]
		if habit.ID != habitID {
			continue
		}

		if habit.CheckIns == nil {
			habit.CheckIns = []string{}
		}
		habit.CheckIns = mutate(habit.CheckIns, now.Format(DayFormat))

		if err := service.store.Save(document); err != nil {
			return HabitView{}, err
		}
		return service.view(*habit, now), nil
	}
	return HabitView{}, ErrHabitNotFound
}

func (service *HabitService) view(habit models.Habit, today time.Time) HabitView {
	if habit.CheckIns == nil {
		habit.CheckIns = []string{}
	}
	return HabitView{Habit: habit, Streak: Streak(habit.CheckIns, today)}
}

// normalizeCheckIns validates and deduplicates a caller-supplied
// check-in collection. ok is false when the collection should be
// ignored entirely: either it was absent or an entry is not a
// YYYY-MM-DD date.
func normalizeCheckIns(days []string) ([]string, bool) {
	if days == nil {
		return nil, false
	}
	seen := make(map[string]struct{}, len(days))
	normalized := make([]string, 0, len(days))
	for _, day := range days {
		if _, err := time.Parse(DayFormat, day); err != nil {
			return nil, false
		}
		if _, dup := seen[day]; dup {
			continue
		}
		seen[day] = struct{}{}
		normalized = append(normalized, day)
	}
	return normalized, true
}
