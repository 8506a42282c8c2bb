package book

import "itchbook/domain"

// orderLevelRecord is the order metadata used by the two pooled-level
// variants (Scalar and SoA-indirection): the order's own quantity, the
// level it currently rests on, and the book it belongs to. This is the
// source's order_level_t.
type orderLevelRecord struct {
	Qty      domain.Qty
	LevelIdx LevelID
	BookIdx  domain.BookID
}

// levelRef pairs a signed price with the pooled level it names — the
// source's price_level_indirect, kept as an array-of-structs since
// Variant A's whole point is the AoS layout.
type levelRef struct {
	Price domain.SignedPrice
	Level LevelID
}

// ScalarBook is Variant A: per-side arrays of structs pairing a signed
// price with the index of its level in a process-wide LevelPool. Ascending
// by signed price; the tail holds the side's best price.
type ScalarBook struct {
	bids []levelRef
	asks []levelRef
}

func (b *ScalarBook) side(price domain.SignedPrice) *[]levelRef {
	if price.IsBid() {
		return &b.bids
	}
	return &b.asks
}

// checkOrderBid recovers an order's side from the level it points to,
// without a second lookup into the book's sorted arrays.
func (b *ScalarBook) checkOrderBid(pool *LevelPool, order *orderLevelRecord) bool {
	return pool.Get(order.LevelIdx).Price.IsBid()
}

// findLevelRef performs the same tail-first descending scan as
// findInsertionPoint, but directly against the interleaved (price,
// level) pairs Variant A stores, so no separate price array needs to
// exist just to be scanned.
func findLevelRef(entries []levelRef, price domain.SignedPrice) (int, bool) {
	i := len(entries)
	for i > 0 {
		i--
		cur := entries[i].Price
		if cur == price {
			return i, true
		}
		if price > cur {
			return i + 1, false
		}
	}
	return 0, false
}

func (b *ScalarBook) addOrder(pool *LevelPool, order *orderLevelRecord, price domain.SignedPrice, qty domain.Qty) {
	side := b.side(price)
	at, found := findLevelRef(*side, price)
	var lvl LevelID
	if found {
		lvl = (*side)[at].Level
	} else {
		lvl = pool.Alloc()
		*pool.Get(lvl) = Level{Price: price, Qty: 0}
		*side = insertAt(*side, at, levelRef{Price: price, Level: lvl})
	}
	pool.Get(lvl).Qty += qty
	order.LevelIdx = lvl
	order.Qty = qty
}

func (b *ScalarBook) reduceOrder(pool *LevelPool, order *orderLevelRecord, qty domain.Qty) {
	pool.Get(order.LevelIdx).Qty -= qty
	order.Qty -= qty
}

func (b *ScalarBook) deleteOrder(pool *LevelPool, order *orderLevelRecord) {
	lvl := pool.Get(order.LevelIdx)
	lvl.Qty -= order.Qty
	if lvl.Qty != 0 {
		return
	}
	price := lvl.Price
	side := b.side(price)
	for i := len(*side) - 1; i >= 0; i-- {
		if (*side)[i].Price == price {
			*side = removeAt(*side, i)
			break
		}
	}
	pool.Free(order.LevelIdx)
}

// Depth returns up to n (price, qty) pairs on side s, best price first.
func (b *ScalarBook) Depth(pool *LevelPool, s domain.Side, n int) []DepthLevel {
	entries := b.bids
	if s == domain.Ask {
		entries = b.asks
	}
	if n <= 0 || len(entries) == 0 {
		return nil
	}
	if n > len(entries) {
		n = len(entries)
	}
	out := make([]DepthLevel, n)
	for i := 0; i < n; i++ {
		e := entries[len(entries)-1-i]
		out[i] = DepthLevel{Price: e.Price, Qty: pool.Get(e.Level).Qty}
	}
	return out
}

// BestPrice returns side s's best price, if any.
func (b *ScalarBook) BestPrice(s domain.Side) (domain.SignedPrice, bool) {
	entries := b.bids
	if s == domain.Ask {
		entries = b.asks
	}
	if len(entries) == 0 {
		return 0, false
	}
	return entries[len(entries)-1].Price, true
}
