package dto

import "time"

// CreateStudyGroupRequest represents a study group creation payload
type CreateStudyGroupRequest struct {
	Name             string     `json:"name" binding:"required,max=255"`
	Description      *string    `json:"description,omitempty"`
	CourseID         *int64     `json:"courseId,omitempty"`
	MaxMembers       *int       `json:"maxMembers,omitempty" binding:"omitempty,min=2"`
	Schedule         *string    `json:"schedule,omitempty"`
	Location         *string    `json:"location,omitempty"`
	MeetingDate      *time.Time `json:"meetingDate,omitempty"`
	EndDate          *time.Time `json:"endDate,omitempty"`
	IsRecurring      bool       `json:"isRecurring"`
	RecurringPattern *string    `json:"recurringPattern,omitempty" binding:"omitempty,oneof=weekly biweekly monthly"`
}

// UpdateStudyGroupRequest represents a creator-only group edit
type UpdateStudyGroupRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	CourseID    *int64  `json:"courseId,omitempty"`
}

// CreateSessionRequest schedules an extra study session for every
// current member of a group
type CreateSessionRequest struct {
	Title       string     `json:"title" binding:"required,max=255"`
	Description *string    `json:"description,omitempty"`
	StartDate   time.Time  `json:"startDate" binding:"required"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Location    *string    `json:"location,omitempty"`
}
