package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 25
	// MaxLimit caps how many rows any listing can request.
	MaxLimit = 100
)

// Params holds page/limit pagination inputs from controllers.
type Params struct {
	Page  int
	Limit int
}

// Normalize clamps the parameters into usable values.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	p.Limit = NormalizeLimit(p.Limit)
	return p
}

// Offset returns the row offset for the normalized page.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Result annotates a listing with its pagination metadata.
type Result struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalRows  int64 `json:"total_rows"`
	TotalPages int   `json:"total_pages"`
}

// NewResult derives the metadata for a listing of totalRows rows.
func NewResult(params Params, totalRows int64) Result {
	n := params.Normalize()
	pages := int(totalRows) / n.Limit
	if int(totalRows)%n.Limit != 0 {
		pages++
	}
	if pages < 1 {
		pages = 1
	}
	return Result{
		Page:       n.Page,
		Limit:      n.Limit,
		TotalRows:  totalRows,
		TotalPages: pages,
	}
}
