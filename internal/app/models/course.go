package models

import "time"

// Course defines the course model based on the 'courses' table
type Course struct {
	ID          int64     `json:"id" db:"id"`
	Code        string    `json:"code" db:"code"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	Instructor  *string   `json:"instructor,omitempty" db:"instructor"`
	Department  *string   `json:"department,omitempty" db:"department"`
	Level       *string   `json:"level,omitempty" db:"level"`
	Semester    *string   `json:"semester,omitempty" db:"semester"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// CourseMember joins a user to a course
type CourseMember struct {
	ID       int64     `json:"id" db:"id"`
	CourseID int64     `json:"courseId" db:"course_id"`
	UserID   int64     `json:"userId" db:"user_id"`
	Role     string    `json:"role" db:"role"`
	JoinedAt time.Time `json:"joinedAt" db:"joined_at"`
}
