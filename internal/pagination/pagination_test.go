package pagination

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	t.Run("First page of a full collection", func(t *testing.T) {
		w := Paginate(25, 10, "1")

		assert.Equal(t, 0, w.Offset)
		assert.Equal(t, 10, w.Limit)
		assert.Equal(t, 1, w.Number)
		assert.Equal(t, 3, w.NumPages)
		assert.True(t, w.HasNext)
		assert.False(t, w.HasPrevious)
	})

	t.Run("Middle page", func(t *testing.T) {
		w := Paginate(25, 10, "2")

		assert.Equal(t, 10, w.Offset)
		assert.Equal(t, 2, w.Number)
		assert.True(t, w.HasNext)
		assert.True(t, w.HasPrevious)
		assert.Equal(t, 1, w.PreviousNumber())
		assert.Equal(t, 3, w.NextNumber())
	})

	t.Run("Last partial page", func(t *testing.T) {
		w := Paginate(25, 10, "3")

		assert.Equal(t, 20, w.Offset)
		assert.Equal(t, 10, w.Limit)
		assert.False(t, w.HasNext)
		assert.True(t, w.HasPrevious)
	})

	t.Run("Beyond the last page clamps to the last page", func(t *testing.T) {
		w := Paginate(25, 10, "99")

		assert.Equal(t, 3, w.Number)
		assert.Equal(t, 20, w.Offset)
		assert.False(t, w.HasNext)
	})

	t.Run("Non-numeric page falls back to page 1", func(t *testing.T) {
		for _, page := range []string{"", "abc", "1.5", "  ", "-"} {
			w := Paginate(25, 10, page)
			assert.Equal(t, 1, w.Number, "page=%q", page)
			assert.Equal(t, 0, w.Offset, "page=%q", page)
		}
	})

	t.Run("Page zero and negative pages fall back to page 1", func(t *testing.T) {
		for _, page := range []string{"0", "-1", "-99"} {
			w := Paginate(25, 10, page)
			assert.Equal(t, 1, w.Number, "page=%q", page)
		}
	})

	t.Run("Empty collection yields a single empty page", func(t *testing.T) {
		w := Paginate(0, 10, "5")

		assert.Equal(t, 1, w.Number)
		assert.Equal(t, 1, w.NumPages)
		assert.Equal(t, 0, w.Offset)
		assert.False(t, w.HasNext)
		assert.False(t, w.HasPrevious)
	})

	t.Run("Exact multiple of the page size", func(t *testing.T) {
		w := Paginate(30, 10, "3")

		assert.Equal(t, 3, w.NumPages)
		assert.Equal(t, 20, w.Offset)
		assert.False(t, w.HasNext)
	})

	t.Run("Windows cover the collection without overlap", func(t *testing.T) {
		total := 33
		seen := 0
		numPages := Paginate(total, 10, "1").NumPages
		for p := 1; p <= numPages; p++ {
			wp := Paginate(total, 10, strconv.Itoa(p))
			assert.Equal(t, (p-1)*10, wp.Offset)
			remaining := total - wp.Offset
			if remaining > wp.Limit {
				remaining = wp.Limit
			}
			seen += remaining
		}
		assert.Equal(t, total, seen)
	})

	t.Run("Invalid per-page falls back to the default", func(t *testing.T) {
		w := Paginate(25, 0, "1")
		assert.Equal(t, PerPage, w.Limit)
	})
}