package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ecakir/campushub/internal/app/models"
	"github.com/ecakir/campushub/internal/app/models/dto"
)

type courseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetAll(ctx context.Context, search *string) ([]models.Course, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetByUserID(ctx context.Context, userID int64) ([]models.Course, error)
	GetMembers(ctx context.Context, courseID int64) ([]models.User, error)
	AddMember(ctx context.Context, courseID, userID int64, role string) error
	RemoveMember(ctx context.Context, courseID, userID int64) error
}

// CourseService defines the interface for course catalog and
// membership operations
type CourseService interface {
	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error)
	GetCourses(ctx context.Context, search *string) ([]models.Course, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	GetMyCourses(ctx context.Context, userID int64) ([]models.Course, error)
	GetCourseMembers(ctx context.Context, courseID int64) ([]models.User, error)
	JoinCourse(ctx context.Context, courseID, userID int64) error
	LeaveCourse(ctx context.Context, courseID, userID int64) error
}

type courseServiceImpl struct {
	courseRepo courseStore
	logger     zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo courseStore, logger zerolog.Logger) CourseService {
	return &courseServiceImpl{courseRepo: courseRepo, logger: logger}
}

// CreateCourse adds a course to the catalog. Codes are unique.
func (s *courseServiceImpl) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Instructor:  req.Instructor,
		Department:  req.Department,
		Level:       req.Level,
		Semester:    req.Semester,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("courseId", course.ID).Str("code", course.Code).Msg("Course created")
	return course, nil
}

// GetCourses lists the catalog, optionally filtered by a search term
func (s *courseServiceImpl) GetCourses(ctx context.Context, search *string) ([]models.Course, error) {
	return s.courseRepo.GetAll(ctx, search)
}

// GetCourse retrieves a single course
func (s *courseServiceImpl) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// GetMyCourses lists the courses the user has joined
func (s *courseServiceImpl) GetMyCourses(ctx context.Context, userID int64) ([]models.Course, error) {
	return s.courseRepo.GetByUserID(ctx, userID)
}

// GetCourseMembers lists the users enrolled in a course. The course must
// exist.
func (s *courseServiceImpl) GetCourseMembers(ctx context.Context, courseID int64) ([]models.User, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.courseRepo.GetMembers(ctx, courseID)
}

// JoinCourse enrolls the user; joining twice is a conflict
func (s *courseServiceImpl) JoinCourse(ctx context.Context, courseID, userID int64) error {
	if err := s.courseRepo.AddMember(ctx, courseID, userID, "student"); err != nil {
		return err
	}
	s.logger.Info().Int64("courseId", courseID).Int64("userId", userID).Msg("User joined course")
	return nil
}

// LeaveCourse drops the user's enrollment
func (s *courseServiceImpl) LeaveCourse(ctx context.Context, courseID, userID int64) error {
	return s.courseRepo.RemoveMember(ctx, courseID, userID)
}
