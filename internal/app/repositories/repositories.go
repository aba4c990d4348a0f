package repositories

import (
	"github.com/ecakir/campushub/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	SessionRepository      *SessionRepository
	CourseRepository       *CourseRepository
	ResourceRepository     *ResourceRepository
	ForumRepository        *ForumRepository
	StudyGroupRepository   *StudyGroupRepository
	ConversationRepository *ConversationRepository
	CalendarRepository     *CalendarRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(database.Pool),
		SessionRepository:      NewSessionRepository(database.Pool),
		CourseRepository:       NewCourseRepository(database.Pool),
		ResourceRepository:     NewResourceRepository(database.Pool),
		ForumRepository:        NewForumRepository(database),
		StudyGroupRepository:   NewStudyGroupRepository(database),
		ConversationRepository: NewConversationRepository(database),
		CalendarRepository:     NewCalendarRepository(database.Pool),
	}
}
