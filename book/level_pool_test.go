package book

import (
	"testing"

	"itchbook/domain"
)

func TestLevelPoolAllocReusesFreedSlots(t *testing.T) {
	pool := NewLevelPool(4)

	a := pool.Alloc()
	b := pool.Alloc()
	pool.Get(a).Price = domain.SignedPrice(100)
	pool.Get(b).Price = domain.SignedPrice(200)

	pool.Free(a)
	if got := pool.FreeListSize(); got != 1 {
		t.Fatalf("FreeListSize() = %d, want 1", got)
	}

	c := pool.Alloc()
	if c != a {
		t.Errorf("Alloc() after Free = %d, want reused id %d", c, a)
	}
	if pool.FreeListSize() != 0 {
		t.Errorf("FreeListSize() after reuse = %d, want 0", pool.FreeListSize())
	}
}

func TestLevelPoolGrowsPastCapacityHint(t *testing.T) {
	pool := NewLevelPool(1)
	ids := make([]LevelID, 8)
	for i := range ids {
		ids[i] = pool.Alloc()
		pool.Get(ids[i]).Qty = domain.Qty(i)
	}
	for i, id := range ids {
		if got := pool.Get(id).Qty; got != domain.Qty(i) {
			t.Errorf("slot %d qty = %d, want %d", id, got, i)
		}
	}
}
