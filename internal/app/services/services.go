package services

// Services defined in this package:
// - AuthService: registration, login and cookie session resolution
// - UserService: profile reads, updates, pictures and user search
// - CourseService: course catalog and membership
// - ResourceService: file resource upload, listing and download
// - ForumService: categories, posts, replies and votes
// - StudyGroupService: groups, membership and session materialization
// - MessagingService: conversations and messages
// - CalendarService: per-user calendar events
// - DashboardService: aggregate activity snapshot

// Services holds all the service instances
type Services struct {
	Auth       AuthService
	User       UserService
	Course     CourseService
	Resource   ResourceService
	Forum      ForumService
	StudyGroup StudyGroupService
	Messaging  MessagingService
	Calendar   CalendarService
	Dashboard  DashboardService
}
