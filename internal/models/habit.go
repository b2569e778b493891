package models

import "time"

// DefaultColor is assigned when a habit is created without one.
const DefaultColor = "indigo"

// Habit is the stored shape of a habit. CheckIns holds calendar dates in
// YYYY-MM-DD form, each at most once. The rolling streak is derived from
// CheckIns on every read and is deliberately absent here so a stale value
// can never be persisted.
type Habit struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	CheckIns    []string  `json:"checkIns" gorm:"serializer:json"`
	CreatedAt   time.Time `json:"createdAt" gorm:"not null"`
	OwnerID     *string   `json:"ownerId"`
}

// VisibleTo reports whether a habit belongs in the listing for the given
// viewer. Habits without an owner are visible to everyone.
func (habit Habit) VisibleTo(viewerID string) bool {
	return habit.OwnerID == nil || *habit.OwnerID == viewerID
}
