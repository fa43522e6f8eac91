package orders

import "sort"

// Ledger is the aggregated result of one order fetch: orders partitioned by
// cancellation state, plus the day's revenue total. It is rebuilt wholesale
// on every fetch; the only sanctioned in-place mutations are the two local
// transitions applied by the action controller after a confirmed backend
// success.
type Ledger struct {
	Active     []Order `json:"active"`
	Cancelled  []Order `json:"cancelled"`
	DailyTotal float64 `json:"dailyTotal"`

	// NoOrders is set when the backend answered with its not-found sentinel
	// instead of order rows. It is distinct from an empty day, which leaves
	// both partitions empty with NoOrders false.
	NoOrders bool   `json:"noOrders,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Aggregate groups flat order lines into one Order per order number.
//
// Order-level fields come from the first-seen line of each order; every line
// contributes one item. Both partitions are sorted by order time descending,
// ties keeping arrival order. The daily total sums TotalPrice once per
// distinct non-cancelled order, never once per line.
func Aggregate(lines []OrderLine) Ledger {
	if len(lines) == 1 && lines[0].IsNotFoundSentinel() {
		return Ledger{NoOrders: true, Message: lines[0].Message}
	}

	byNumber := make(map[string]*Order, len(lines))
	sequence := make([]*Order, 0, len(lines))

	for _, line := range lines {
		order, seen := byNumber[line.OrderNumber]
		if !seen {
			order = &Order{
				OrderNumber:   line.OrderNumber,
				TotalPrice:    line.TotalPrice,
				OrderStatus:   line.OrderStatus,
				PickupStatus:  line.PickupStatus,
				OrderTime:     line.OrderTime,
				CustomerEmail: line.CustomerEmail,
				placedAt:      parseOrderTime(line.OrderTime),
			}
			byNumber[line.OrderNumber] = order
			sequence = append(sequence, order)
		}
		order.Items = append(order.Items, OrderItem{
			MenuName:  line.MenuName,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	ledger := Ledger{}
	for _, order := range sequence {
		if order.OrderStatus == StatusCancelled {
			ledger.Cancelled = append(ledger.Cancelled, *order)
			continue
		}
		ledger.Active = append(ledger.Active, *order)
		ledger.DailyTotal += order.TotalPrice
	}

	sortByTimeDesc(ledger.Active)
	sortByTimeDesc(ledger.Cancelled)

	return ledger
}

// sortByTimeDesc orders most recent first; equal timestamps keep the order
// in which the backend delivered the rows.
func sortByTimeDesc(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].placedAt.After(orders[j].placedAt)
	})
}
