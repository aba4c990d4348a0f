package dto

// CreateResourceRequest carries the multipart form fields accompanying a
// resource file upload. The file itself arrives as the 'file' form part.
type CreateResourceRequest struct {
	Title       string  `form:"title" binding:"required,max=255"`
	Description *string `form:"description"`
	Type        string  `form:"type" binding:"required,max=50"`
	CourseID    int64   `form:"courseId" binding:"required"`
}

// ResourceFilter represents optional, additive list filters
type ResourceFilter struct {
	CourseID *int64
	Type     *string
}
