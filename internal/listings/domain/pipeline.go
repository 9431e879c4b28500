package domain

const (
	// DefaultPageSize matches the grid of four rows of three cards.
	DefaultPageSize = 12
	// MaxPageSize caps a single page.
	MaxPageSize = 100
)

// Page is one window over the filtered and sorted listings.
type Page struct {
	Items      []Listing
	TotalCount int
	PageCount  int
	PageNumber int
	PageSize   int
}

// Window holds the normalized paging request.
type Window struct {
	Number int
	Size   int
}

// NormalizeWindow applies the paging rules: sizes below 1 use the default,
// sizes above MaxPageSize are capped, page numbers below 1 become 1 and page
// numbers past the last page become the last page.
func NormalizeWindow(pageNumber, pageSize, total int) Window {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if pageNumber < 1 {
		pageNumber = 1
	}
	if count := pageCount(total, pageSize); count > 0 && pageNumber > count {
		pageNumber = count
	} else if count == 0 {
		pageNumber = 1
	}
	return Window{Number: pageNumber, Size: pageSize}
}

func pageCount(total, pageSize int) int {
	if total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Paginate slices an already filtered and sorted sequence. Items is a copy,
// so callers may hold it after the source changes.
func Paginate(sorted []Listing, pageNumber, pageSize int) Page {
	total := len(sorted)
	w := NormalizeWindow(pageNumber, pageSize, total)

	start := (w.Number - 1) * w.Size
	end := min(start+w.Size, total)
	items := make([]Listing, 0, max(end-start, 0))
	if start < end {
		items = append(items, sorted[start:end]...)
	}

	return Page{
		Items:      items,
		TotalCount: total,
		PageCount:  pageCount(total, w.Size),
		PageNumber: w.Number,
		PageSize:   w.Size,
	}
}

// ComputePage runs filter, then sort, then paginate.
func ComputePage(listings []Listing, c Criteria, key SortKey, pageNumber, pageSize int) Page {
	return Paginate(Sort(Filter(listings, c), key), pageNumber, pageSize)
}
