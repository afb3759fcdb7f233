package pagination

import (
	"context"
	"errors"
	"sync"
)

var ErrPageOutOfRange = errors.New("page out of range")

// PageState is the single owner of the start offset; the controller never
// stores the current page itself.
type PageState interface {
	Page(pageSize int) int
	ResetToPage(page, pageSize int) error
}

// RefetchFunc is run after every accepted page change.
type RefetchFunc func(ctx context.Context) error

type Controller struct {
	state   PageState
	perPage int
	refetch RefetchFunc

	mu    sync.Mutex
	total int
}

func NewController(state PageState, perPage int, refetch RefetchFunc) *Controller {
	if perPage <= 0 {
		perPage = ItemsPerPage
	}
	return &Controller{state: state, perPage: perPage, refetch: refetch}
}

func (c *Controller) PerPage() int {
	return c.perPage
}

// SetTotal records the item count that pages are computed from.
func (c *Controller) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	c.mu.Lock()
	c.total = total
	c.mu.Unlock()
}

// Observe records a fetched page. When clamp is set and the page came
// back short while upstream still claims more items, the total is cut
// to what was actually retrievable.
func (c *Controller) Observe(start, returned, total int, clamp bool) {
	if clamp && returned < c.perPage && total > start+returned {
		total = start + returned
	}
	c.SetTotal(total)
}

func (c *Controller) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

func (c *Controller) TotalPages() int {
	return TotalPages(c.Total(), c.perPage)
}

func (c *Controller) CurrentPage() int {
	return c.state.Page(c.perPage)
}

func (c *Controller) Pages() []Item {
	return Window(c.TotalPages(), c.CurrentPage())
}

func (c *Controller) HasPrev() bool {
	return c.CurrentPage() > 1
}

func (c *Controller) HasNext() bool {
	return c.CurrentPage() < c.TotalPages()
}

// OnPageChange moves to page and refetches. Pages outside 1..TotalPages
// are rejected without touching state.
func (c *Controller) OnPageChange(ctx context.Context, page int) error {
	if page < 1 || page > c.TotalPages() {
		return ErrPageOutOfRange
	}
	if err := c.state.ResetToPage(page, c.perPage); err != nil {
		return err
	}
	if c.refetch == nil {
		return nil
	}
	return c.refetch(ctx)
}

func (c *Controller) Next(ctx context.Context) error {
	return c.OnPageChange(ctx, c.CurrentPage()+1)
}

func (c *Controller) Prev(ctx context.Context) error {
	return c.OnPageChange(ctx, c.CurrentPage()-1)
}
