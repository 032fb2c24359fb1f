package response

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
	TotalItems int64 `json:"total_items"`
	HasMore    bool  `json:"has_more"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

// NormalizePage clamps page to >= 1 and pageSize to [1, MaxPageSize].
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// Offset returns the row offset of page.
func Offset(page, pageSize int) int {
	return (page - 1) * pageSize
}

// NewPagination describes page out of total items. From and To are 1-based
// and both zero when the page is empty.
func NewPagination(page, pageSize int, total int64) *Pagination {
	page, pageSize = NormalizePage(page, pageSize)

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	p := &Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: total,
		HasMore:    int64(page) < totalPages,
	}

	from := int64(Offset(page, pageSize)) + 1
	if from <= total {
		to := from + int64(pageSize) - 1
		if to > total {
			to = total
		}
		p.From, p.To = int(from), int(to)
	}
	return p
}
