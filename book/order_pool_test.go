package book

import "testing"

func TestOrderPoolReserveGrowsAmortized(t *testing.T) {
	pool := NewOrderPool[orderLevelRecord](2)

	pool.Reserve(0)
	pool.Get(0).Qty = 10

	pool.Reserve(5)
	pool.Get(5).Qty = 50

	if got := pool.Get(0).Qty; got != 10 {
		t.Errorf("slot 0 qty = %d, want 10 (reserve must not disturb existing slots)", got)
	}
	if got := pool.Get(5).Qty; got != 50 {
		t.Errorf("slot 5 qty = %d, want 50", got)
	}
}

func TestOrderPoolReserveIsIdempotent(t *testing.T) {
	pool := NewOrderPool[orderLevelRecord](4)
	pool.Reserve(3)
	pool.Get(3).Qty = 7
	pool.Reserve(3)
	if got := pool.Get(3).Qty; got != 7 {
		t.Errorf("re-reserving an existing slot changed its contents: got qty %d, want 7", got)
	}
}
