package orders

import "sync"

// Default page sizes used by the seller screens.
const (
	MenuPageSize  = 5
	OrderPageSize = 6
)

// Pager derives the visible slice of an ordered collection. Page indices are
// 1-based. A requested page outside [1, TotalPages] is clamped to the nearest
// valid page; the slice bounds never fall outside [0, count). Replacing the
// backing collection resets the pager to page 1 so a refetch can never leave
// the view on an out-of-range empty page.
//
// A Pager is safe for concurrent use. Callers that refetch the collection on
// every request should use View, which installs the new count and resolves
// the bounds under one lock acquisition.
type Pager struct {
	mu    sync.Mutex
	page  int
	size  int
	count int
}

// PageView is the resolved paging state for one collection snapshot: the
// half-open slice range plus the page index set.
type PageView struct {
	Lo         int
	Hi         int
	Page       int
	TotalPages int
	Pages      []int
}

// NewPager creates a pager with the given page size. Sizes below 1 fall back
// to the order-screen default.
func NewPager(size int) *Pager {
	if size < 1 {
		size = OrderPageSize
	}
	return &Pager{page: 1, size: size}
}

// Replace installs a new collection length and resets to page 1.
func (p *Pager) Replace(count int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.replace(count)
}

// SetPage requests a page; it is stored clamped.
func (p *Pager) SetPage(page int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.page = p.clamp(page)
}

// Page returns the current page index, clamped against the current count.
func (p *Pager) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clamp(p.page)
}

// PageSize returns the fixed page size.
func (p *Pager) PageSize() int {
	return p.size
}

// TotalPages is ceil(count/size), 0 for an empty collection.
func (p *Pager) TotalPages() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalPages()
}

// Pages returns the full set of page indices, 1..TotalPages.
func (p *Pager) Pages() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pages()
}

// Bounds returns the half-open slice range for the current page, clamped to
// [0, count). An empty collection yields [0, 0).
func (p *Pager) Bounds() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bounds()
}

// View installs a new collection length, applies the requested page and
// resolves the slice bounds in one atomic step, so interleaved callers can
// never pair their bounds with another caller's count.
func (p *Pager) View(count, page int) PageView {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.replace(count)
	p.page = p.clamp(page)
	lo, hi := p.bounds()

	return PageView{
		Lo:         lo,
		Hi:         hi,
		Page:       p.page,
		TotalPages: p.totalPages(),
		Pages:      p.pages(),
	}
}

func (p *Pager) replace(count int) {
	if count < 0 {
		count = 0
	}
	p.count = count
	p.page = 1
}

func (p *Pager) totalPages() int {
	if p.count == 0 {
		return 0
	}
	return (p.count + p.size - 1) / p.size
}

func (p *Pager) pages() []int {
	total := p.totalPages()
	pages := make([]int, total)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

func (p *Pager) bounds() (int, int) {
	if p.count == 0 {
		return 0, 0
	}
	page := p.clamp(p.page)
	lo := (page - 1) * p.size
	hi := lo + p.size
	if hi > p.count {
		hi = p.count
	}
	return lo, hi
}

func (p *Pager) clamp(page int) int {
	total := p.totalPages()
	if total == 0 {
		return 1
	}
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}
