package models

import "time"

// User defines the user model based on the 'users' table
type User struct {
	ID             int64     `json:"id" db:"id"`
	Email          string    `json:"email" db:"email"`
	Password       string    `json:"-" db:"password"` // Hashed, excluded from JSON
	FirstName      string    `json:"firstName" db:"first_name"`
	LastName       string    `json:"lastName" db:"last_name"`
	Major          *string   `json:"major,omitempty" db:"major"`
	Year           *string   `json:"year,omitempty" db:"year"`
	Bio            *string   `json:"bio,omitempty" db:"bio"`
	GraduationYear *string   `json:"graduationYear,omitempty" db:"graduation_year"`
	Location       *string   `json:"location,omitempty" db:"location"`
	ProfilePicture *string   `json:"profilePicture,omitempty" db:"profile_picture"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// Session represents a server-side login session keyed by a cookie token
type Session struct {
	Token     string    `json:"-" db:"token"`
	UserID    int64     `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
}

// Expired reports whether the session is past its expiry time.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
