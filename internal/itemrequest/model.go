package itemrequest

import (
	"net/http"
	"time"

	"shareit/internal/item"
	"shareit/internal/pkg/apperror"
)

var ErrNotFound = apperror.New(apperror.KindNotFound, http.StatusNotFound, "There is no item request with such ID")

// ItemRequest is a "wanted item" post: a user describes what they would like
// to rent, and owners may list items answering it.
type ItemRequest struct {
	ID          string
	RequesterID string
	Description string
	Created     time.Time
}

// Details is a request together with the items listed in answer to it.
type Details struct {
	ItemRequest
	Items []*item.Item
}
