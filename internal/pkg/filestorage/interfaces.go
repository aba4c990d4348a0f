package filestorage

import "mime/multipart"

// StoredFile describes where an uploaded file ended up
type StoredFile struct {
	Filename     string // Generated unique filename on disk
	OriginalName string // Name as uploaded by the client
	Size         int64  // Size in bytes
	MimeType     string // MIME type reported by the client
	URL          string // Public URL path (e.g. /uploads/<filename>)
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFile saves an uploaded file and returns its stored metadata
	SaveFile(fileHeader *multipart.FileHeader) (*StoredFile, error)

	// DeleteFile removes a stored file; missing files are not an error
	DeleteFile(filename string) error

	// FullPath returns the filesystem path for a stored filename
	FullPath(filename string) string

	// Exists reports whether the backing file is present on disk
	Exists(filename string) bool
}
