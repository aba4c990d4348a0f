package dto

import "github.com/ecakir/campushub/internal/app/models"

// DashboardResponse aggregates a user's membership counts and the
// non-completed events in the next seven days
type DashboardResponse struct {
	CourseCount    int64                  `json:"courseCount"`
	GroupCount     int64                  `json:"groupCount"`
	ResourceCount  int64                  `json:"resourceCount"`
	UpcomingEvents []models.CalendarEvent `json:"upcomingEvents"`
}
