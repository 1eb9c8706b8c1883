package model

import "time"

// User represents a registered author.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"` // Stored lowercase
	PasswordHash string    `json:"-" gorm:"size:255;not null"`                 // Never expose in JSON
	Avatar       string    `json:"avatar,omitempty" gorm:"size:512"`           // Filename under the upload dir, or an absolute URL
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Author is a user annotated with a live count of the posts they wrote.
type Author struct {
	User
	Posts int64 `json:"posts"`
}
