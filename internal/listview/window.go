package listview

// PageWindow is the set of numbered page buttons to render: at most five
// contiguous pages, plus a trailing ellipsis and last-page button when the
// window stops short of the end.
type PageWindow struct {
	Pages    []int `json:"pages"`
	Ellipsis bool  `json:"ellipsis"`
	Last     int   `json:"last,omitempty"`
}

func Window(totalPages, currentPage int) PageWindow {
	if totalPages <= 0 {
		return PageWindow{Pages: []int{}}
	}
	if currentPage < 1 {
		currentPage = 1
	}
	if currentPage > totalPages {
		currentPage = totalPages
	}

	var start, end int
	switch {
	case totalPages <= 5:
		start, end = 1, totalPages
	case currentPage <= 3:
		start, end = 1, 5
	case currentPage >= totalPages-2:
		start, end = totalPages-4, totalPages
	default:
		start, end = currentPage-2, currentPage+2
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}

	w := PageWindow{Pages: pages}
	if end < totalPages {
		w.Ellipsis = true
		w.Last = totalPages
	}
	return w
}
