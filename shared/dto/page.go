package dto

import (
	"gearshare/shared/constant"
	"gearshare/shared/failure"
	"net/http"
	"strconv"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// Pageable is what repositories consume: a resolved limit/offset plus ordering.
// A zero Limit means no pagination clause at all.
type Pageable struct {
	Limit   int
	Offset  int
	SortBy  string
	SortDir string
}

// PageRequest carries the raw from/size pagination params. Either may be
// absent; pagination only applies when both are present.
type PageRequest struct {
	From *int
	Size *int
}

// ParsePageRequest reads from/size off the request query. Absent params stay
// nil; non-integer values fail Validation.
func ParsePageRequest(r *http.Request) (PageRequest, error) {
	var page PageRequest

	query := r.URL.Query()

	if from := query.Get(constant.RequestParamFrom); from != "" {
		fromInt, err := strconv.Atoi(from)
		if err != nil {
			return page, failure.Validationf("invalid from parameter: %s", from) //nolint:wrapcheck
		}

		page.From = &fromInt
	}

	if size := query.Get(constant.RequestParamSize); size != "" {
		sizeInt, err := strconv.Atoi(size)
		if err != nil {
			return page, failure.Validationf("invalid size parameter: %s", size) //nolint:wrapcheck
		}

		page.Size = &sizeInt
	}

	return page, nil
}

// Validate checks each param independently when present: from must be
// non-negative, size strictly positive.
func (p PageRequest) Validate() error {
	if p.From != nil && *p.From < 0 {
		return failure.Validation("from must be greater than or equal to 0") //nolint:wrapcheck
	}

	if p.Size != nil && *p.Size <= 0 {
		return failure.Validation("size must be greater than 0") //nolint:wrapcheck
	}

	return nil
}

// Paginated reports whether both params are present.
func (p PageRequest) Paginated() bool {
	return p.From != nil && p.Size != nil
}

// Pageable resolves the request into limit/offset. The offset starts at the
// page holding row `from`: page index is the integer division from/size, so
// from=5,size=10 still lands on the first page. Clients depend on this
// rounding, keep it.
func (p PageRequest) Pageable(sortBy, sortDir string) Pageable {
	pageable := Pageable{
		SortBy:  sortBy,
		SortDir: sortDir,
	}

	if p.Paginated() {
		page := *p.From / *p.Size

		pageable.Limit = *p.Size
		pageable.Offset = page * *p.Size
	}

	return pageable
}
