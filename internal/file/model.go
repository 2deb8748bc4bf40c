package file

import (
	"net/http"
	"time"

	"shareit/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(apperror.KindNotFound, http.StatusNotFound, "There is no file with such ID")
	ErrNotItemOwner = apperror.New(apperror.KindForbidden, http.StatusForbidden, "Incorrect item owner ID is specified")
	ErrNotAnImage   = apperror.New(apperror.KindInvalidArgument, http.StatusBadRequest, "Only image uploads are supported")
)

// File is a photo attached to an item listing.
type File struct {
	ID            string
	ItemID        string
	UploaderID    string
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// URL returns the public URL for the full-size photo.
func URL(id string) string {
	return "/files/" + id
}

// ThumbnailURL returns the public URL for the photo's thumbnail.
func ThumbnailURL(id string) string {
	return "/files/" + id + "/thumbnail"
}
