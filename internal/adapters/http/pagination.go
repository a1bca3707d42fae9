package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Pagination contains page-based pagination info.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewPagination computes the page count from a total row count.
func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// SetLinkHeaders adds RFC 8288 Link headers for paginated responses.
// It uses the current request path.
func SetLinkHeaders(c *fiber.Ctx, p Pagination) {
	base := c.Path()
	var links []string

	// first
	links = append(links, fmt.Sprintf(`<%s?page=1&limit=%d>; rel="first"`, base, p.Limit))

	// prev
	if p.Page > 1 {
		links = append(links, fmt.Sprintf(`<%s?page=%d&limit=%d>; rel="prev"`, base, p.Page-1, p.Limit))
	}

	// next
	if p.Page < p.Pages {
		links = append(links, fmt.Sprintf(`<%s?page=%d&limit=%d>; rel="next"`, base, p.Page+1, p.Limit))
	}

	// last
	last := p.Pages
	if last < 1 {
		last = 1
	}
	links = append(links, fmt.Sprintf(`<%s?page=%d&limit=%d>; rel="last"`, base, last, p.Limit))

	c.Set("Link", strings.Join(links, ", "))
}
