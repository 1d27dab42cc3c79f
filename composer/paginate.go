package composer

import (
	"math"
	"strconv"
	"strings"

	"github.com/amanjaiswal-07/youtube-backend/helpers"
)

const (
	DefaultPageSize int64 = 10
	MaxPageSize     int64 = 100
)

// Page is a validated 1-based page request.
type Page struct {
	Number int64
	Size   int64
}

// Skip is the number of rows before the page. It saturates at
// math.MaxInt64 instead of overflowing.
func (p Page) Skip() int64 {
	if p.Number <= 1 || p.Size <= 0 {
		return 0
	}
	if p.Number-1 > math.MaxInt64/p.Size {
		return math.MaxInt64
	}
	return (p.Number - 1) * p.Size
}

// ParsePage reads the page and limit query values. page defaults to 1 and is
// clamped to at least 1 and to at most math.MaxInt64/limit; limit defaults
// to DefaultPageSize, must be positive and is capped at MaxPageSize.
func ParsePage(page, limit string) (Page, error) {
	p := Page{Number: 1, Size: DefaultPageSize}

	if s := strings.TrimSpace(page); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Page{}, helpers.InvalidArgument("page must be an integer")
		}
		if n > 1 {
			p.Number = n
		}
	}

	if s := strings.TrimSpace(limit); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n < 1 {
			return Page{}, helpers.InvalidArgument("limit must be a positive integer")
		}
		p.Size = min(n, MaxPageSize)
	}
	p.Number = min(p.Number, math.MaxInt64/p.Size)

	return p, nil
}

// Envelope is one page of results plus the metadata clients page with. The
// field names follow mongoose-aggregate-paginate so existing clients keep
// working.
type Envelope[T any] struct {
	Docs          []T    `json:"docs"`
	TotalDocs     int64  `json:"totalDocs"`
	Limit         int64  `json:"limit"`
	Page          int64  `json:"page"`
	TotalPages    int64  `json:"totalPages"`
	PagingCounter int64  `json:"pagingCounter"`
	HasPrevPage   bool   `json:"hasPrevPage"`
	HasNextPage   bool   `json:"hasNextPage"`
	PrevPage      *int64 `json:"prevPage"`
	NextPage      *int64 `json:"nextPage"`
}

// NewEnvelope derives the page metadata from the total row count.
func NewEnvelope[T any](docs []T, total int64, p Page) Envelope[T] {
	if docs == nil {
		docs = []T{}
	}
	pages := (total + p.Size - 1) / p.Size

	e := Envelope[T]{
		Docs:          docs,
		TotalDocs:     total,
		Limit:         p.Size,
		Page:          p.Number,
		TotalPages:    pages,
		PagingCounter: pagingCounter(p),
		HasPrevPage:   p.Number > 1,
		HasNextPage:   p.Number < pages,
	}
	if e.HasPrevPage {
		prev := p.Number - 1
		e.PrevPage = &prev
	}
	if e.HasNextPage {
		next := p.Number + 1
		e.NextPage = &next
	}
	return e
}

func pagingCounter(p Page) int64 {
	skip := p.Skip()
	if skip == math.MaxInt64 {
		return skip
	}
	return skip + 1
}
