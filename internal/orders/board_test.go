package orders

import "testing"

func sampleLedger() Ledger {
	return Aggregate([]OrderLine{
		line("A1", 9000, StatusPlaced, "Bread", 2, 4500, "2025-03-10 11:00:00"),
		line("A1", 9000, StatusPlaced, "Juice", 1, 0, "2025-03-10 11:00:00"),
		line("B2", 4000, StatusPlaced, "Soup", 1, 4000, "2025-03-10 12:00:00"),
		line("C3", 7000, StatusCancelled, "Cake", 1, 7000, "2025-03-10 09:00:00"),
	})
}

func TestBoardCompleteInstallsLatest(t *testing.T) {
	b := NewBoard(OrderPageSize)

	seq := b.Begin("today")
	if !b.Complete("today", seq, sampleLedger()) {
		t.Fatal("Complete() with the latest sequence should install the result")
	}

	view := b.View(1)
	if len(view.Active) != 2 {
		t.Errorf("Active length = %d, want 2", len(view.Active))
	}
	if view.DailyTotal != 13000 {
		t.Errorf("DailyTotal = %v, want 13000", view.DailyTotal)
	}
}

func TestBoardDiscardsStaleCompletion(t *testing.T) {
	b := NewBoard(OrderPageSize)

	stale := b.Begin("2025-03-09")
	fresh := b.Begin("2025-03-09")

	if !b.Complete("2025-03-09", fresh, sampleLedger()) {
		t.Fatal("fresh completion should install")
	}
	if b.Complete("2025-03-09", stale, Ledger{}) {
		t.Error("stale completion should be discarded")
	}

	if got := len(b.Ledger().Active); got != 2 {
		t.Errorf("Active length after stale completion = %d, want 2", got)
	}
}

func TestBoardSequencesAreIndependentPerKey(t *testing.T) {
	b := NewBoard(OrderPageSize)

	todaySeq := b.Begin("today")
	b.Begin("2025-03-09")

	// A newer fetch for another key must not invalidate this one.
	if !b.Complete("today", todaySeq, sampleLedger()) {
		t.Error("completion should install despite fetches for other keys")
	}
}

func TestBoardReplaceResetsPage(t *testing.T) {
	b := NewBoard(1)

	seq := b.Begin("today")
	b.Complete("today", seq, sampleLedger())
	b.View(2)

	seq = b.Begin("today")
	b.Complete("today", seq, sampleLedger())

	view := b.View(0)
	if view.Page != 1 {
		t.Errorf("Page after refetch = %d, want 1", view.Page)
	}
}

func TestBoardViewPaginatesActiveOrders(t *testing.T) {
	b := NewBoard(1)
	seq := b.Begin("today")
	b.Complete("today", seq, sampleLedger())

	first := b.View(1)
	if len(first.Active) != 1 {
		t.Fatalf("page 1 length = %d, want 1", len(first.Active))
	}
	if first.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2", first.TotalPages)
	}
	if first.Active[0].OrderNumber != "B2" {
		t.Errorf("page 1 order = %s, want B2 (most recent first)", first.Active[0].OrderNumber)
	}

	second := b.View(2)
	if second.Active[0].OrderNumber != "A1" {
		t.Errorf("page 2 order = %s, want A1", second.Active[0].OrderNumber)
	}

	// Cancelled partition is not paginated.
	if len(second.Cancelled) != 1 {
		t.Errorf("Cancelled length = %d, want 1", len(second.Cancelled))
	}
}

func TestBoardCancelLocally(t *testing.T) {
	b := NewBoard(OrderPageSize)
	seq := b.Begin("today")
	b.Complete("today", seq, sampleLedger())

	if !b.CancelLocally("A1") {
		t.Fatal("CancelLocally() should report success for an active order")
	}

	ledger := b.Ledger()
	for _, order := range ledger.Active {
		if order.OrderNumber == "A1" {
			t.Error("A1 should have left the active partition")
		}
	}

	found := false
	for _, order := range ledger.Cancelled {
		if order.OrderNumber == "A1" {
			found = true
			if order.OrderStatus != StatusCancelled {
				t.Errorf("OrderStatus = %q, want %q", order.OrderStatus, StatusCancelled)
			}
			if len(order.Items) != 2 {
				t.Errorf("Items length = %d, want 2 (items preserved)", len(order.Items))
			}
		}
	}
	if !found {
		t.Error("A1 should have joined the cancelled partition")
	}

	if ledger.DailyTotal != 4000 {
		t.Errorf("DailyTotal = %v, want 4000", ledger.DailyTotal)
	}

	if b.CancelLocally("A1") {
		t.Error("CancelLocally() should report false for an already-cancelled order")
	}
}

func TestBoardCompletePickupLocally(t *testing.T) {
	b := NewBoard(OrderPageSize)
	seq := b.Begin("today")
	b.Complete("today", seq, sampleLedger())

	if !b.CompletePickupLocally("B2") {
		t.Fatal("CompletePickupLocally() should report success for an active order")
	}

	order, ok := b.Find("B2")
	if !ok {
		t.Fatal("B2 should still be on the board")
	}
	if order.PickupStatus != PickupDone {
		t.Errorf("PickupStatus = %q, want %q", order.PickupStatus, PickupDone)
	}
	if order.OrderStatus != StatusPlaced {
		t.Errorf("OrderStatus = %q, want %q (unchanged)", order.OrderStatus, StatusPlaced)
	}
	if order.TotalPrice != 4000 {
		t.Errorf("TotalPrice = %v, want 4000 (unchanged)", order.TotalPrice)
	}

	if b.CompletePickupLocally("MISSING") {
		t.Error("CompletePickupLocally() should report false for an unknown order")
	}
}
