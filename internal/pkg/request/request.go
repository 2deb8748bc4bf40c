package request

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shareit/internal/pkg/apperror"
)

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

var (
	ErrNegativeFrom    = apperror.New(apperror.KindInvalidArgument, http.StatusBadRequest, "Index of start element cannot be less zero")
	ErrNonPositiveSize = apperror.New(apperror.KindInvalidArgument, http.StatusBadRequest, "Page size cannot be less or equal zero")
)

// Page is the optional from/size slice of an ordered result set.
// From is the index of the first element, Size the page length; the slice
// served starts at the page-aligned offset (From/Size)*Size.
type Page struct {
	From int
	Size int
}

// Validate checks the paging parameters, in the documented order.
func (p Page) Validate() error {
	if p.From < 0 {
		return ErrNegativeFrom
	}
	if p.Size <= 0 {
		return ErrNonPositiveSize
	}
	return nil
}

// Number returns the zero-based page number selected by From.
// Only meaningful after Validate.
func (p Page) Number() int {
	return p.From / p.Size
}

// Offset returns the page-aligned element offset.
func (p Page) Offset() int {
	return p.Number() * p.Size
}

// PageFromQuery reads the optional "from" and "size" query parameters.
// A page is requested only when both are present; otherwise nil is returned
// and the caller serves the full result set.
func PageFromQuery(c *gin.Context) (*Page, error) {
	fromStr, hasFrom := c.GetQuery("from")
	sizeStr, hasSize := c.GetQuery("size")
	if !hasFrom || !hasSize {
		return nil, nil
	}

	from, err := strconv.Atoi(fromStr)
	if err != nil {
		return nil, apperror.Newf(apperror.KindInvalidArgument, http.StatusBadRequest, "invalid from value: %s", fromStr)
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		return nil, apperror.Newf(apperror.KindInvalidArgument, http.StatusBadRequest, "invalid size value: %s", sizeStr)
	}

	p := &Page{From: from, Size: size}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
