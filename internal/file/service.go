package file

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"shareit/internal/pkg/storage"
)

// ItemOwnership is the slice of the item component the upload guard needs.
type ItemOwnership interface {
	OwnerOf(ctx context.Context, itemID string) (string, error)
}

type Service interface {
	// Upload attaches a photo to an item; only the item's owner may upload.
	Upload(ctx context.Context, header *multipart.FileHeader, uploaderID, itemID string) (*File, error)
	ListByItem(ctx context.Context, itemID string) ([]*File, error)
	Download(ctx context.Context, id string) (io.ReadCloser, *File, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *File, error)
	Delete(ctx context.Context, uploaderID, id string) error
}

type service struct {
	repo    Repository
	items   ItemOwnership
	storage storage.Storage
	imgProc *storage.ImageProcessor
}

func NewService(repo Repository, items ItemOwnership, store storage.Storage) Service {
	return &service{
		repo:    repo,
		items:   items,
		storage: store,
		imgProc: storage.NewImageProcessor(),
	}
}

func (s *service) Upload(ctx context.Context, header *multipart.FileHeader, uploaderID, itemID string) (*File, error) {
	ownerID, err := s.items.OwnerOf(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if ownerID != uploaderID {
		return nil, ErrNotItemOwner
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// Buffered so the content can be read twice: once for the original,
	// once for the thumbnail.
	fileBytes, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	fileID := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(header.Filename))

	// Sharded path: items/ab/UUID.ext
	shard := fileID[:2]
	storagePath := fmt.Sprintf("items/%s/%s%s", shard, fileID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(fileBytes)); err != nil {
		return nil, fmt.Errorf("failed to save file to storage: %w", err)
	}

	// A failed thumbnail does not fail the upload.
	var thumbnailPath *string
	if thumb, err := s.imgProc.Thumbnail(bytes.NewReader(fileBytes), 200, 200); err == nil {
		tPath := fmt.Sprintf("items/%s/%s_thumb.jpg", shard, fileID)
		if err := s.storage.Save(ctx, tPath, thumb); err == nil {
			thumbnailPath = &tPath
		}
	}

	f := &File{
		ID:            fileID,
		ItemID:        itemID,
		UploaderID:    uploaderID,
		Filename:      header.Filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          header.Size,
		CreatedAt:     time.Now(),
	}

	if err := s.repo.Create(ctx, f); err != nil {
		// Clean up storage if the record could not be written.
		_ = s.storage.Delete(ctx, storagePath)
		if thumbnailPath != nil {
			_ = s.storage.Delete(ctx, *thumbnailPath)
		}
		return nil, err
	}

	return f, nil
}

func (s *service) ListByItem(ctx context.Context, itemID string) ([]*File, error) {
	if _, err := s.items.OwnerOf(ctx, itemID); err != nil {
		return nil, err
	}
	return s.repo.ListByItem(ctx, itemID)
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *File, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	stream, err := s.storage.Get(ctx, f.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve file from storage: %w", err)
	}
	return stream, f, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *File, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if f.ThumbnailPath == nil {
		return nil, nil, ErrNotFound
	}

	stream, err := s.storage.Get(ctx, *f.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve thumbnail from storage: %w", err)
	}
	return stream, f, nil
}

func (s *service) Delete(ctx context.Context, uploaderID, id string) error {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	ownerID, err := s.items.OwnerOf(ctx, f.ItemID)
	if err != nil {
		return err
	}
	if ownerID != uploaderID {
		return ErrNotItemOwner
	}

	// Best-effort storage cleanup; the record removal is what matters.
	_ = s.storage.Delete(ctx, f.StoragePath)
	if f.ThumbnailPath != nil {
		_ = s.storage.Delete(ctx, *f.ThumbnailPath)
	}

	return s.repo.Delete(ctx, id)
}
