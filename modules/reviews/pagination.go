package reviews

import "strconv"

// DefaultItemsPerPage is the review list page size.
const DefaultItemsPerPage = 10

// listPathBase is the path of the review list page, relative to the
// account base path.
const listPathBase = "account_reviewlist"

// ListPath returns the review list location to show after a deletion.
// The page is clamped to the last page that still has items, so deleting the
// only review of the last page lands on the previous page. Page 0 has no
// page parameter.
func ListPath(itemCount, pageSize, currentPage int) string {
	page := clampPage(itemCount, pageSize, currentPage)
	if page > 0 {
		return listPathBase + "?pgNr=" + strconv.Itoa(page)
	}
	return listPathBase
}

func pageCount(itemCount, pageSize int) int {
	if pageSize <= 0 || itemCount <= 0 {
		return 0
	}
	return (itemCount + pageSize - 1) / pageSize
}

func clampPage(itemCount, pageSize, currentPage int) int {
	if pages := pageCount(itemCount, pageSize); currentPage >= pages {
		currentPage = pages - 1
	}
	return max(currentPage, 0)
}

// PageLink is a numbered link of the page navigation.
type PageLink struct {
	Number int // zero-based page number
	URL    string
	Active bool
}

// Navigation describes the list page navigation.
type Navigation struct {
	Pages    int
	Current  int
	Previous string
	Next     string
	First    string
	Last     string
	Links    []PageLink
}

// HasPages reports whether the list spans more than one page.
func (n Navigation) HasPages() bool {
	return n.Pages > 1
}

// PageNavigation builds the navigation of the review list with urls built by
// ListPath.
func PageNavigation(itemCount, pageSize, currentPage int) Navigation {
	pages := pageCount(itemCount, pageSize)
	nav := Navigation{Pages: pages, Current: clampPage(itemCount, pageSize, currentPage)}
	if pages == 0 {
		return nav
	}

	url := func(page int) string { return ListPath(itemCount, pageSize, page) }

	nav.First = url(0)
	nav.Last = url(pages - 1)
	if nav.Current > 0 {
		nav.Previous = url(nav.Current - 1)
	}
	if nav.Current < pages-1 {
		nav.Next = url(nav.Current + 1)
	}

	nav.Links = make([]PageLink, pages)
	for i := range pages {
		nav.Links[i] = PageLink{Number: i, URL: url(i), Active: i == nav.Current}
	}
	return nav
}
