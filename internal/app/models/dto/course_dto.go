package dto

// CreateCourseRequest represents a course creation payload
type CreateCourseRequest struct {
	Code        string  `json:"code" binding:"required,max=20"`
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description,omitempty"`
	Instructor  *string `json:"instructor,omitempty"`
	Department  *string `json:"department,omitempty"`
	Level       *string `json:"level,omitempty"`
	Semester    *string `json:"semester,omitempty"`
}
