package models

import "time"

// Calendar event types
const (
	EventTypeDeadline   = "deadline"
	EventTypeStudyGroup = "study_group"
	EventTypeAssignment = "assignment"
	EventTypeExam       = "exam"
	EventTypeMeeting    = "meeting"
)

// Calendar event priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// CalendarEvent defines one persisted occurrence on a user's calendar.
// Recurring study sessions are materialized as independent rows rather
// than stored as a recurrence rule.
type CalendarEvent struct {
	ID              int64      `json:"id" db:"id"`
	Title           string     `json:"title" db:"title"`
	Description     *string    `json:"description,omitempty" db:"description"`
	Type            string     `json:"type" db:"type"`
	StartDate       time.Time  `json:"startDate" db:"start_date"`
	EndDate         *time.Time `json:"endDate,omitempty" db:"end_date"`
	AllDay          bool       `json:"allDay" db:"all_day"`
	Location        *string    `json:"location,omitempty" db:"location"`
	UserID          int64      `json:"userId" db:"user_id"`
	CourseID        *int64     `json:"courseId,omitempty" db:"course_id"`
	StudyGroupID    *int64     `json:"studyGroupId,omitempty" db:"study_group_id"`
	Priority        string     `json:"priority" db:"priority"`
	IsCompleted     bool       `json:"isCompleted" db:"is_completed"`
	ReminderMinutes *int       `json:"reminderMinutes,omitempty" db:"reminder_minutes"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`

	// Related entities
	Course     *Course     `json:"course,omitempty"`
	StudyGroup *StudyGroup `json:"studyGroup,omitempty"`
}
