package utils

// ListResult is the standard envelope for paginated list responses.
type ListResult struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Skip  int         `json:"skip"`
	Limit int         `json:"limit"`
}

// NewListResult normalizes skip/limit and wraps items for a list response.
// Limit is clamped to [1, 100] with a default of 20.
func NewListResult(items interface{}, total int64, skip, limit int) ListResult {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return ListResult{Items: items, Total: total, Skip: skip, Limit: limit}
}

// ClampPage normalizes raw skip/limit query values for repository queries.
func ClampPage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return skip, limit
}
