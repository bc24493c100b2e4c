package dto

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	// MaxPage keeps (page-1)*limit far from int overflow. Keep in sync with the validate tag.
	MaxPage = 1_000_000
)

// PageQuery is the page/limit pair accepted by every list endpoint.
type PageQuery struct {
	Page  int `form:"page" validate:"max=1000000"`
	Limit int `form:"limit"`
}

// Normalize fills defaults for missing or non-positive values and caps page and limit.
func (p *PageQuery) Normalize() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

// Offset is the zero-based index of the first row on the page.
func (p PageQuery) Offset() int {
	return (p.Page - 1) * p.Limit
}
