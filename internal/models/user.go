// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account in the Glimpse application.
type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Username       string         `gorm:"unique;not null" json:"username"`
	Email          string         `gorm:"unique;not null" json:"email"`
	Password       string         `gorm:"not null" json:"-"`
	Bio            string         `json:"bio"`
	DateOfBirth    *time.Time     `json:"date_of_birth,omitempty"`
	ProfilePicture string         `json:"profile_picture"`
	IsBanned       bool           `gorm:"default:false" json:"is_banned"`
	IsAdmin        bool           `gorm:"default:false" json:"is_admin"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	Posts          []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`

	// Followers and Following are projections of the follows table,
	// populated at query time by the user repository.
	Followers []UserRef `gorm:"-" json:"followers"`
	Following []UserRef `gorm:"-" json:"following"`
}

// UserRef is the compact user summary embedded in follower/following lists,
// comment author data and search results.
type UserRef struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture"`
}

// Ref returns the compact summary form of the user.
func (u *User) Ref() UserRef {
	return UserRef{
		ID:             u.ID,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
	}
}
