package service

const (
	DefaultPageLimit = 10
	DefaultMaxLimit  = 100
)

// Paging bounds the page size of list operations. Zero fields fall back to
// DefaultPageLimit and DefaultMaxLimit.
type Paging struct {
	DefaultLimit int
	MaxLimit     int
}

func (p Paging) withDefaults() Paging {
	if p.MaxLimit <= 0 {
		p.MaxLimit = DefaultMaxLimit
	}
	if p.DefaultLimit <= 0 {
		p.DefaultLimit = DefaultPageLimit
	}
	if p.DefaultLimit > p.MaxLimit {
		p.DefaultLimit = p.MaxLimit
	}
	return p
}

// normalize applies the default to a missing limit, caps it and floors the offset at 0.
func (p Paging) normalize(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = p.DefaultLimit
	}
	if limit > p.MaxLimit {
		limit = p.MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
