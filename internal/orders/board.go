package orders

import "sync"

// Board holds the order view state for one seller session: the latest
// aggregation result plus the pager over its active partition.
//
// Fetches are sequenced per logical query key (for example "today" or a
// calendar date): Begin hands out a monotonically increasing sequence number
// and Complete installs a result only if no newer fetch for the same key has
// started since. A slow response from an earlier navigation can therefore
// never overwrite fresher state.
type Board struct {
	mu     sync.Mutex
	seq    map[string]uint64
	key    string
	ledger Ledger
	pager  *Pager
}

// BoardView is the render-ready projection of the board: the current page of
// active orders, the full cancelled partition, and the page index set.
type BoardView struct {
	Active     []Order `json:"active"`
	Cancelled  []Order `json:"cancelled"`
	DailyTotal float64 `json:"dailyTotal"`
	NoOrders   bool    `json:"noOrders,omitempty"`
	Message    string  `json:"message,omitempty"`
	Page       int     `json:"page"`
	TotalPages int     `json:"totalPages"`
	Pages      []int   `json:"pages"`
}

// NewBoard creates an empty board with the given page size.
func NewBoard(pageSize int) *Board {
	return &Board{
		seq:   map[string]uint64{},
		pager: NewPager(pageSize),
	}
}

// Begin registers a new fetch for the query key and returns its sequence
// number. The returned value must be handed back to Complete.
func (b *Board) Begin(key string) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq[key]++
	return b.seq[key]
}

// Complete installs a fetch result. It reports false, leaving state
// untouched, when a newer fetch for the same key has been started since the
// sequence number was issued. Installing a result replaces the ledger
// wholesale and resets the pager to page 1.
func (b *Board) Complete(key string, seq uint64, ledger Ledger) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if seq != b.seq[key] {
		return false
	}

	b.key = key
	b.ledger = ledger
	b.pager.Replace(len(ledger.Active))
	return true
}

// Key returns the query key whose result is currently installed.
func (b *Board) Key() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.key
}

// Ledger returns a copy of the full installed ledger.
func (b *Board) Ledger() Ledger {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.copyLedgerLocked()
}

// View selects a page (clamped) and returns the render projection.
func (b *Board) View(page int) BoardView {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pager.SetPage(page)
	lo, hi := b.pager.Bounds()

	active := make([]Order, hi-lo)
	copy(active, b.ledger.Active[lo:hi])

	cancelled := make([]Order, len(b.ledger.Cancelled))
	copy(cancelled, b.ledger.Cancelled)

	return BoardView{
		Active:     active,
		Cancelled:  cancelled,
		DailyTotal: b.ledger.DailyTotal,
		NoOrders:   b.ledger.NoOrders,
		Message:    b.ledger.Message,
		Page:       b.pager.Page(),
		TotalPages: b.pager.TotalPages(),
		Pages:      b.pager.Pages(),
	}
}

// Find returns the order with the given number from either partition.
func (b *Board) Find(orderNo string) (Order, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, order := range b.ledger.Active {
		if order.OrderNumber == orderNo {
			return order, true
		}
	}
	for _, order := range b.ledger.Cancelled {
		if order.OrderNumber == orderNo {
			return order, true
		}
	}
	return Order{}, false
}

// CancelLocally applies the sanctioned post-cancel transition: the order
// leaves the active partition and joins the cancelled one with its status
// forced to CANCELLED. The daily total drops by the order's total so it no
// longer counts toward revenue. Reports false when the order is not active.
func (b *Board) CancelLocally(orderNo string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, order := range b.ledger.Active {
		if order.OrderNumber != orderNo {
			continue
		}
		b.ledger.Active = append(b.ledger.Active[:i], b.ledger.Active[i+1:]...)
		order.OrderStatus = StatusCancelled
		b.ledger.Cancelled = append(b.ledger.Cancelled, order)
		b.ledger.DailyTotal -= order.TotalPrice
		b.pager.Replace(len(b.ledger.Active))
		return true
	}
	return false
}

// CompletePickupLocally applies the sanctioned post-pickup transition: the
// order's pickup status becomes DONE in place; identity and every other field
// are preserved. Reports false when the order is not active.
func (b *Board) CompletePickupLocally(orderNo string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.ledger.Active {
		if b.ledger.Active[i].OrderNumber == orderNo {
			b.ledger.Active[i].PickupStatus = PickupDone
			return true
		}
	}
	return false
}

func (b *Board) copyLedgerLocked() Ledger {
	out := b.ledger
	out.Active = make([]Order, len(b.ledger.Active))
	copy(out.Active, b.ledger.Active)
	out.Cancelled = make([]Order, len(b.ledger.Cancelled))
	copy(out.Cancelled, b.ledger.Cancelled)
	return out
}
