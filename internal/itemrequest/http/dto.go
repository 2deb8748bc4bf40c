package http

import (
	"time"

	itemHttp "shareit/internal/item/http"
	"shareit/internal/itemrequest"
)

type CreateItemRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

type ItemRequestResponse struct {
	ID          string    `json:"id"`
	RequesterID string    `json:"requester_id"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
}

func NewItemRequestResponse(req *itemrequest.ItemRequest) ItemRequestResponse {
	return ItemRequestResponse{
		ID:          req.ID,
		RequesterID: req.RequesterID,
		Description: req.Description,
		Created:     req.Created,
	}
}

type ItemRequestDetailsResponse struct {
	ItemRequestResponse
	Items []itemHttp.ItemResponse `json:"items"`
}

func NewItemRequestDetailsResponse(d *itemrequest.Details) ItemRequestDetailsResponse {
	items := make([]itemHttp.ItemResponse, len(d.Items))
	for i, it := range d.Items {
		items[i] = itemHttp.NewItemResponse(it)
	}
	return ItemRequestDetailsResponse{
		ItemRequestResponse: NewItemRequestResponse(&d.ItemRequest),
		Items:               items,
	}
}

func newDetailsResponses(details []*itemrequest.Details) []ItemRequestDetailsResponse {
	items := make([]ItemRequestDetailsResponse, len(details))
	for i, d := range details {
		items[i] = NewItemRequestDetailsResponse(d)
	}
	return items
}
