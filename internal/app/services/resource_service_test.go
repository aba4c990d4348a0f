package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecakir/campushub/internal/app/models"
	"github.com/ecakir/campushub/internal/app/models/dto"
	"github.com/ecakir/campushub/internal/pkg/apperrors"
	"github.com/ecakir/campushub/internal/pkg/filestorage"
)

type fakeFileStorage struct {
	files   map[string]bool
	deleted []string
	saveErr error
}

func newFakeFileStorage() *fakeFileStorage {
	return &fakeFileStorage{files: map[string]bool{}}
}

func (f *fakeFileStorage) SaveFile(fileHeader *multipart.FileHeader) (*filestorage.StoredFile, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	stored := &filestorage.StoredFile{
		Filename:     "stored-" + fileHeader.Filename,
		OriginalName: fileHeader.Filename,
		Size:         fileHeader.Size,
		MimeType:     "application/pdf",
		URL:          "http://localhost:8080/uploads/stored-" + fileHeader.Filename,
	}
	f.files[stored.Filename] = true
	return stored, nil
}

func (f *fakeFileStorage) DeleteFile(filename string) error {
	delete(f.files, filename)
	f.deleted = append(f.deleted, filename)
	return nil
}

func (f *fakeFileStorage) FullPath(filename string) string {
	return "/tmp/uploads/" + filename
}

func (f *fakeFileStorage) Exists(filename string) bool {
	return f.files[filename]
}

type fakeResourceStore struct {
	resources map[int64]*models.Resource
	createErr error
	nextID    int64
}

func newFakeResourceStore() *fakeResourceStore {
	return &fakeResourceStore{resources: map[int64]*models.Resource{}, nextID: 1}
}

func (f *fakeResourceStore) Create(ctx context.Context, resource *models.Resource) error {
	if f.createErr != nil {
		return f.createErr
	}
	resource.ID = f.nextID
	f.nextID++
	f.resources[resource.ID] = resource
	return nil
}

func (f *fakeResourceStore) GetAll(ctx context.Context, filter dto.ResourceFilter) ([]models.Resource, error) {
	var out []models.Resource
	for _, r := range f.resources {
		if filter.CourseID != nil && r.CourseID != *filter.CourseID {
			continue
		}
		if filter.Type != nil && r.Type != *filter.Type {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeResourceStore) GetByID(ctx context.Context, id int64) (*models.Resource, error) {
	r, ok := f.resources[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	out := *r
	return &out, nil
}

func (f *fakeResourceStore) IncrementDownloads(ctx context.Context, id int64) error {
	r, ok := f.resources[id]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	r.Downloads++
	return nil
}

func newTestResourceService(store *fakeResourceStore, storage *fakeFileStorage) ResourceService {
	return NewResourceService(store, storage, 1<<20, zerolog.Nop())
}

func uploadRequest() *dto.CreateResourceRequest {
	return &dto.CreateResourceRequest{Title: "Lecture notes", Type: "notes", CourseID: 1}
}

func TestResourceService_UploadRejectsOversizedFile(t *testing.T) {
	svc := newTestResourceService(newFakeResourceStore(), newFakeFileStorage())

	file := &multipart.FileHeader{Filename: "big.pdf", Size: 2 << 20}
	_, err := svc.Upload(context.Background(), uploadRequest(), file, 1)
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
}

func TestResourceService_UploadCleansUpOnInsertFailure(t *testing.T) {
	store := newFakeResourceStore()
	store.createErr = errors.New("insert failed")
	storage := newFakeFileStorage()
	svc := newTestResourceService(store, storage)

	file := &multipart.FileHeader{Filename: "notes.pdf", Size: 1024}
	_, err := svc.Upload(context.Background(), uploadRequest(), file, 1)
	require.Error(t, err)

	// The stored file must not be orphaned
	assert.Equal(t, []string{"stored-notes.pdf"}, storage.deleted)
}

func TestResourceService_DownloadBumpsCounter(t *testing.T) {
	store := newFakeResourceStore()
	storage := newFakeFileStorage()
	svc := newTestResourceService(store, storage)

	file := &multipart.FileHeader{Filename: "notes.pdf", Size: 1024}
	resource, err := svc.Upload(context.Background(), uploadRequest(), file, 1)
	require.NoError(t, err)

	download, err := svc.Download(context.Background(), resource.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, download.Resource.Downloads)
	assert.Equal(t, "/tmp/uploads/stored-notes.pdf", download.Path)
}

func TestResourceService_DownloadMissingFileOnDisk(t *testing.T) {
	store := newFakeResourceStore()
	storage := newFakeFileStorage()
	svc := newTestResourceService(store, storage)

	file := &multipart.FileHeader{Filename: "notes.pdf", Size: 1024}
	resource, err := svc.Upload(context.Background(), uploadRequest(), file, 1)
	require.NoError(t, err)

	require.NoError(t, storage.DeleteFile("stored-notes.pdf"))

	_, err = svc.Download(context.Background(), resource.ID)
	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)
}
