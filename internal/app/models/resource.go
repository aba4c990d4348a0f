package models

import "time"

// Resource defines an uploaded course file based on the 'resources' table
type Resource struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	Type        string    `json:"type" db:"type"`
	Filename    string    `json:"filename" db:"filename"`
	FileSize    int64     `json:"fileSize" db:"file_size"`
	MimeType    *string   `json:"mimeType,omitempty" db:"mime_type"`
	CourseID    int64     `json:"courseId" db:"course_id"`
	UploaderID  int64     `json:"uploaderId" db:"uploader_id"`
	Downloads   int       `json:"downloads" db:"downloads"`
	Rating      int       `json:"rating" db:"rating"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Uploader *User   `json:"uploader,omitempty"`
	Course   *Course `json:"course,omitempty"`
}
