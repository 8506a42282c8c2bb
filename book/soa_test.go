package book

import (
	"testing"

	"itchbook/domain"
)

func TestSoABookInsertKeepsAscendingOrder(t *testing.T) {
	levels := NewLevelPool(8)
	var b SoABook
	var orders [3]orderLevelRecord

	b.addOrder(levels, &orders[0], domain.SignPrice(105, domain.Bid), 1)
	b.addOrder(levels, &orders[1], domain.SignPrice(101, domain.Bid), 1)
	b.addOrder(levels, &orders[2], domain.SignPrice(103, domain.Bid), 1)

	for i := 1; i < len(b.bidPrices); i++ {
		if b.bidPrices[i-1] >= b.bidPrices[i] {
			t.Fatalf("bidPrices not ascending: %v", b.bidPrices)
		}
	}
	best, ok := b.BestPrice(domain.Bid)
	if !ok || best != domain.SignPrice(105, domain.Bid) {
		t.Errorf("BestPrice = %v (ok=%v), want 105", best, ok)
	}
}

func TestSoABookDeleteRemovesLevelAndFreesSlot(t *testing.T) {
	levels := NewLevelPool(4)
	var b SoABook
	var order orderLevelRecord

	b.addOrder(levels, &order, domain.SignPrice(100, domain.Ask), 5)
	b.deleteOrder(levels, &order)

	if len(b.askPrices) != 0 {
		t.Errorf("askPrices should be empty after deleting the only order, got %v", b.askPrices)
	}
	if levels.FreeListSize() != 1 {
		t.Errorf("FreeListSize() = %d, want 1", levels.FreeListSize())
	}
}
