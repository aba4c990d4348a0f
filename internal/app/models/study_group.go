package models

import "time"

// Recurring meeting patterns accepted by study groups
const (
	RecurringWeekly   = "weekly"
	RecurringBiweekly = "biweekly"
	RecurringMonthly  = "monthly"
)

// StudyGroup defines the study group model based on the 'study_groups' table
type StudyGroup struct {
	ID               int64      `json:"id" db:"id"`
	Name             string     `json:"name" db:"name"`
	Description      *string    `json:"description,omitempty" db:"description"`
	CourseID         *int64     `json:"courseId,omitempty" db:"course_id"`
	CreatorID        int64      `json:"creatorId" db:"creator_id"`
	MaxMembers       int        `json:"maxMembers" db:"max_members"`
	Schedule         *string    `json:"schedule,omitempty" db:"schedule"`
	Location         *string    `json:"location,omitempty" db:"location"`
	MeetingDate      *time.Time `json:"meetingDate,omitempty" db:"meeting_date"`
	EndDate          *time.Time `json:"endDate,omitempty" db:"end_date"`
	IsRecurring      bool       `json:"isRecurring" db:"is_recurring"`
	RecurringPattern *string    `json:"recurringPattern,omitempty" db:"recurring_pattern"`
	IsActive         bool       `json:"isActive" db:"is_active"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`

	// Related entities
	Creator     *User   `json:"creator,omitempty"`
	Course      *Course `json:"course,omitempty"`
	Members     []User  `json:"members,omitempty"`
	MemberCount int     `json:"memberCount"`
}

// RecurringIntervalDays returns the day interval for a recurring pattern,
// or 0 when the pattern is unknown.
func RecurringIntervalDays(pattern string) int {
	switch pattern {
	case RecurringWeekly:
		return 7
	case RecurringBiweekly:
		return 14
	case RecurringMonthly:
		return 30
	default:
		return 0
	}
}

// StudyGroupMember joins a user to a study group
type StudyGroupMember struct {
	ID       int64     `json:"id" db:"id"`
	GroupID  int64     `json:"groupId" db:"group_id"`
	UserID   int64     `json:"userId" db:"user_id"`
	JoinedAt time.Time `json:"joinedAt" db:"joined_at"`
}
