package server

import "strconv"

// Ellipsis marks a gap in a page-number window.
const Ellipsis = "..."

// PageNumbers builds the pagination control for the listing: every page when
// there are five or fewer, otherwise a window around the current page with
// the first and last page always visible.
func PageNumbers(totalPages, currentPage int) []string {
	if totalPages <= 0 {
		return []string{}
	}

	if totalPages <= 5 {
		pages := make([]string, 0, totalPages)
		for i := 1; i <= totalPages; i++ {
			pages = append(pages, strconv.Itoa(i))
		}
		return pages
	}

	switch {
	case currentPage <= 3:
		return []string{"1", "2", "3", "4", Ellipsis, strconv.Itoa(totalPages)}
	case currentPage >= totalPages-2:
		return []string{
			"1", Ellipsis,
			strconv.Itoa(totalPages - 3),
			strconv.Itoa(totalPages - 2),
			strconv.Itoa(totalPages - 1),
			strconv.Itoa(totalPages),
		}
	default:
		return []string{
			"1", Ellipsis,
			strconv.Itoa(currentPage - 1),
			strconv.Itoa(currentPage),
			strconv.Itoa(currentPage + 1),
			Ellipsis,
			strconv.Itoa(totalPages),
		}
	}
}
