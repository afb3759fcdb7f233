package pagination

import "strconv"

const (
	ItemsPerPage = 25

	maxPagesToShow = 5
	ellipsis       = "..."
)

// Item is one page control: a page number or an ellipsis marker.
type Item struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

func (i Item) String() string {
	if i.Ellipsis {
		return ellipsis
	}
	return strconv.Itoa(i.Page)
}

// TotalPages is ceil(totalItems / perPage).
func TotalPages(totalItems, perPage int) int {
	if totalItems <= 0 || perPage <= 0 {
		return 0
	}
	return (totalItems + perPage - 1) / perPage
}

// Window lists the page controls to show. With more than five pages the
// first and last page are always present and a three-page block sits
// around current, pinned to the edge block when current is within two
// of either edge.
func Window(totalPages, current int) []Item {
	if totalPages <= 0 {
		return nil
	}

	var items []Item
	if totalPages <= maxPagesToShow {
		for page := 1; page <= totalPages; page++ {
			items = append(items, Item{Page: page})
		}
		return items
	}

	items = append(items, Item{Page: 1})

	start := max(2, current-1)
	end := min(totalPages-1, current+1)
	if current <= 2 {
		end = 4
	}
	if current >= totalPages-1 {
		start = totalPages - 3
	}

	if start > 2 {
		items = append(items, Item{Ellipsis: true})
	}
	for page := start; page <= end; page++ {
		items = append(items, Item{Page: page})
	}
	if end < totalPages-1 {
		items = append(items, Item{Ellipsis: true})
	}

	return append(items, Item{Page: totalPages})
}
