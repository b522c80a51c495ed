package shared

import "github.com/venue-next/internal/constants"

// NormalizePagination 归一化分页参数，page_size 上限为 constants.MaxPageSize
func NormalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}
	return page, pageSize
}
