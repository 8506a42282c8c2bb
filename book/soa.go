package book

import "itchbook/domain"

// SoABook is Variant B: the same pooled-level algorithm as ScalarBook,
// but prices and level indices live in parallel slices instead of an
// interleaved struct. The hot tail-first scan only touches the price
// slice; the level-index slice is read once per hit. This roughly
// doubles the cache density of the scan versus the AoS layout and gives
// the compiler a plain flat comparison loop to auto-vectorize.
type SoABook struct {
	bidPrices []domain.SignedPrice
	bidLevels []LevelID
	askPrices []domain.SignedPrice
	askLevels []LevelID
}

func (b *SoABook) side(price domain.SignedPrice) (*[]domain.SignedPrice, *[]LevelID) {
	if price.IsBid() {
		return &b.bidPrices, &b.bidLevels
	}
	return &b.askPrices, &b.askLevels
}

func (b *SoABook) checkOrderBid(pool *LevelPool, order *orderLevelRecord) bool {
	return pool.Get(order.LevelIdx).Price.IsBid()
}

func (b *SoABook) addOrder(pool *LevelPool, order *orderLevelRecord, price domain.SignedPrice, qty domain.Qty) {
	prices, levels := b.side(price)
	at, found := findInsertionPoint(*prices, price)
	var lvl LevelID
	if found {
		lvl = (*levels)[at]
	} else {
		lvl = pool.Alloc()
		*pool.Get(lvl) = Level{Price: price, Qty: 0}
		*prices = insertAt(*prices, at, price)
		*levels = insertAt(*levels, at, lvl)
	}
	pool.Get(lvl).Qty += qty
	order.LevelIdx = lvl
	order.Qty = qty
}

func (b *SoABook) reduceOrder(pool *LevelPool, order *orderLevelRecord, qty domain.Qty) {
	pool.Get(order.LevelIdx).Qty -= qty
	order.Qty -= qty
}

func (b *SoABook) deleteOrder(pool *LevelPool, order *orderLevelRecord) {
	lvl := pool.Get(order.LevelIdx)
	lvl.Qty -= order.Qty
	if lvl.Qty != 0 {
		return
	}
	price := lvl.Price
	prices, levels := b.side(price)
	for i := len(*prices) - 1; i >= 0; i-- {
		if (*prices)[i] == price {
			*prices = removeAt(*prices, i)
			*levels = removeAt(*levels, i)
			break
		}
	}
	pool.Free(order.LevelIdx)
}

// Depth returns up to n (price, qty) pairs on side s, best price first.
func (b *SoABook) Depth(pool *LevelPool, s domain.Side, n int) []DepthLevel {
	prices, levels := &b.bidPrices, &b.bidLevels
	if s == domain.Ask {
		prices, levels = &b.askPrices, &b.askLevels
	}
	if n <= 0 || len(*prices) == 0 {
		return nil
	}
	if n > len(*prices) {
		n = len(*prices)
	}
	out := make([]DepthLevel, n)
	for i := 0; i < n; i++ {
		idx := len(*prices) - 1 - i
		out[i] = DepthLevel{Price: (*prices)[idx], Qty: pool.Get((*levels)[idx]).Qty}
	}
	return out
}

// BestPrice returns side s's best price, if any.
func (b *SoABook) BestPrice(s domain.Side) (domain.SignedPrice, bool) {
	prices := b.bidPrices
	if s == domain.Ask {
		prices = b.askPrices
	}
	if len(prices) == 0 {
		return 0, false
	}
	return prices[len(prices)-1], true
}
