package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ecakir/campushub/internal/pkg/logger"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
	baseURL  string // The URL path prefix the files are served under
}

// NewLocalStorage creates a new LocalStorage instance. basePath is the
// directory on disk; baseURL is the URL prefix (e.g. /uploads) the
// directory is served under.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	// Ensure the base path exists
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// SaveFile saves an uploaded file under a generated UUID filename and
// returns the stored metadata.
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader) (*StoredFile, error) {
	if fileHeader == nil {
		return nil, fmt.Errorf("no file provided")
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	// Generate a unique filename to prevent collisions
	ext := filepath.Ext(fileHeader.Filename)
	uniqueFilename := uuid.New().String() + ext

	dstPath := filepath.Join(ls.basePath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		// Remove the partially written file
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}

	stored := &StoredFile{
		Filename:     uniqueFilename,
		OriginalName: fileHeader.Filename,
		Size:         fileHeader.Size,
		MimeType:     fileHeader.Header.Get("Content-Type"),
		URL:          ls.baseURL + "/" + uniqueFilename,
	}

	logger.Info().
		Str("filename", fileHeader.Filename).
		Str("saved_as", uniqueFilename).
		Int64("size", stored.Size).
		Msg("File saved successfully")
	return stored, nil
}

// DeleteFile removes a file from the storage filesystem. Returns nil if
// deletion is successful or if the file doesn't exist.
func (ls *LocalStorage) DeleteFile(filename string) error {
	if filename == "" {
		return nil
	}

	// Only the base name is used; stored records never contain paths
	name := filepath.Base(filename)
	if name == "" || name == "." || name == "/" {
		return fmt.Errorf("invalid filename: %s", filename)
	}

	physicalPath := filepath.Join(ls.basePath, name)

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

// FullPath returns the full filesystem path for a stored filename.
func (ls *LocalStorage) FullPath(filename string) string {
	name := filepath.Base(filename)
	if name == "" || name == "." || name == "/" {
		return ""
	}
	return filepath.Join(ls.basePath, name)
}

// Exists reports whether the backing file is present on disk.
func (ls *LocalStorage) Exists(filename string) bool {
	path := ls.FullPath(filename)
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
