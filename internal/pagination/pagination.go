// Package pagination slices post collections into fixed-size pages.
package pagination

import (
	"strconv"
	"strings"
)

// PerPage is the number of posts shown on every feed page.
const PerPage = 10

// Window describes one page of a collection. Offset/Limit are meant to
// be applied to the query that produced the count.
type Window struct {
	Offset      int
	Limit       int
	Number      int
	NumPages    int
	HasNext     bool
	HasPrevious bool
}

func (w Window) NextNumber() int     { return w.Number + 1 }
func (w Window) PreviousNumber() int { return w.Number - 1 }

// Paginate windows a collection of total records into pages of perPage.
// The page argument comes straight from the query string and may be
// absent, non-numeric or out of range; it degrades to the nearest valid
// page instead of failing. An empty collection yields a single empty
// page 1.
func Paginate(total, perPage int, page string) Window {
	if perPage <= 0 {
		perPage = PerPage
	}

	numPages := (total + perPage - 1) / perPage
	if numPages < 1 {
		numPages = 1
	}

	number, err := strconv.Atoi(strings.TrimSpace(page))
	if err != nil || number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}

	return Window{
		Offset:      (number - 1) * perPage,
		Limit:       perPage,
		Number:      number,
		NumPages:    numPages,
		HasNext:     number < numPages,
		HasPrevious: number > 1,
	}
}
