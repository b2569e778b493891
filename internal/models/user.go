package models

import "time"

// User is an account record. PasswordHash never leaves the process;
// PublicUser is the only outward shape.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"passwordHash" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt" gorm:"not null"`
}

type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (user User) Public() PublicUser {
	return PublicUser{ID: user.ID, Email: user.Email}
}
