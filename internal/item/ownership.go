package item

import "context"

// OwnershipReader answers "who owns this item" for components that only
// need the ownership check, such as photo uploads.
type OwnershipReader struct {
	repo Repository
}

func NewOwnershipReader(repo Repository) *OwnershipReader {
	return &OwnershipReader{repo: repo}
}

func (a *OwnershipReader) OwnerOf(ctx context.Context, itemID string) (string, error) {
	it, err := a.repo.GetByID(ctx, itemID)
	if err != nil {
		return "", err
	}
	return it.OwnerID, nil
}
