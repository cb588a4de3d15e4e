package pagination

const (
	// DefaultSize is the standard page size when one is not provided.
	DefaultSize = 10
	// MaxSize caps how many rows any page query can request.
	MaxSize = 100
)

// Params holds offset pagination inputs from controllers.
type Params struct {
	Page int
	Size int
}

// Normalize clamps the page number and size into their allowed ranges.
func (p Params) Normalize() Params {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Size <= 0 {
		p.Size = DefaultSize
	}
	if p.Size > MaxSize {
		p.Size = MaxSize
	}
	return p
}

// Offset returns the row offset for the normalized page.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Size
}

// Limit returns the normalized page size.
func (p Params) Limit() int {
	return p.Normalize().Size
}

// Page is the envelope returned by all paginated list endpoints.
type Page[T any] struct {
	Items []T   `json:"list"`
	Total int64 `json:"total"`
	Page  int   `json:"page_num"`
	Size  int   `json:"page_size"`
}

// NewPage assembles the page envelope from fetched rows and a total count.
func NewPage[T any](items []T, total int64, params Params) Page[T] {
	n := params.Normalize()
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items: items,
		Total: total,
		Page:  n.Page,
		Size:  n.Size,
	}
}
