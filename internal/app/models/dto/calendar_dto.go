package dto

import "time"

// CreateCalendarEventRequest represents an event creation payload
type CreateCalendarEventRequest struct {
	Title           string     `json:"title" binding:"required,max=255"`
	Description     *string    `json:"description,omitempty"`
	Type            string     `json:"type" binding:"required,oneof=deadline study_group assignment exam meeting"`
	StartDate       time.Time  `json:"startDate" binding:"required"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	AllDay          bool       `json:"allDay"`
	Location        *string    `json:"location,omitempty"`
	CourseID        *int64     `json:"courseId,omitempty"`
	StudyGroupID    *int64     `json:"studyGroupId,omitempty"`
	Priority        *string    `json:"priority,omitempty" binding:"omitempty,oneof=low medium high"`
	ReminderMinutes *int       `json:"reminderMinutes,omitempty"`
}

// UpdateCalendarEventRequest represents a partial event update
type UpdateCalendarEventRequest struct {
	Title           *string    `json:"title,omitempty" binding:"omitempty,max=255"`
	Description     *string    `json:"description,omitempty"`
	Type            *string    `json:"type,omitempty" binding:"omitempty,oneof=deadline study_group assignment exam meeting"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	AllDay          *bool      `json:"allDay,omitempty"`
	Location        *string    `json:"location,omitempty"`
	CourseID        *int64     `json:"courseId,omitempty"`
	StudyGroupID    *int64     `json:"studyGroupId,omitempty"`
	Priority        *string    `json:"priority,omitempty" binding:"omitempty,oneof=low medium high"`
	ReminderMinutes *int       `json:"reminderMinutes,omitempty"`
}

// CompleteEventRequest toggles an event's completion flag
type CompleteEventRequest struct {
	Completed bool `json:"completed"`
}

// CalendarRange represents optional inclusive bounds on start_date
type CalendarRange struct {
	Start *time.Time
	End   *time.Time
}
