package models

// Document is the single persisted aggregate: every user and every habit,
// loaded and saved as one unit.
type Document struct {
	Users  []User  `json:"users"`
	Habits []Habit `json:"habits"`
}

// EmptyDocument returns a fresh document with non-nil slices so callers
// and serializers never see null collections.
func EmptyDocument() Document {
	return Document{Users: []User{}, Habits: []Habit{}}
}
