package book

import "itchbook/domain"

// priceOrderRecord is the order metadata used by Variants C and D. There
// is no shared level pool: an order caches the signed price of the level
// it rests on directly, and quantity lives inline in the per-side qty
// array at the same index as its price. This is the source's
// order_book_soa_price.h order record, with BookIdx added so the engine
// layer can route a bare order id back to its book without a second
// lookup table.
type priceOrderRecord struct {
	Price   domain.SignedPrice
	Qty     domain.Qty
	BookIdx domain.BookID
}

// SoAPriceBook is Variant C: parallel price/qty arrays per side with no
// indirection through a level pool at all. Adding a brand new price is a
// three-way insert (price, qty, and every live order's cached index
// would have to shift); the source sidesteps that by never storing an
// index into these arrays anywhere except transiently, which is why
// reduce and delete below re-find the level by value instead of by a
// remembered position.
type SoAPriceBook struct {
	bidPrices []domain.SignedPrice
	bidQtys   []domain.Qty
	askPrices []domain.SignedPrice
	askQtys   []domain.Qty
}

func (b *SoAPriceBook) side(price domain.SignedPrice) (*[]domain.SignedPrice, *[]domain.Qty) {
	if price.IsBid() {
		return &b.bidPrices, &b.bidQtys
	}
	return &b.askPrices, &b.askQtys
}

func (b *SoAPriceBook) checkOrderBid(order *priceOrderRecord) bool {
	return order.Price.IsBid()
}

func (b *SoAPriceBook) addOrder(order *priceOrderRecord, price domain.SignedPrice, qty domain.Qty) {
	prices, qtys := b.side(price)
	at, found := findInsertionPoint(*prices, price)
	if found {
		(*qtys)[at] += qty
	} else {
		*prices = insertAt(*prices, at, price)
		*qtys = insertAt(*qtys, at, qty)
	}
	order.Price = price
	order.Qty = qty
}

// findByValue is a forward linear scan for a price already known to be
// present, mirroring the source's use of std::find (rather than its own
// tail-first search) inside REDUCE_ORDER and DELETE_ORDER: the same file
// that hand-rolls a descending scan for ADD_ORDER falls back to a plain
// forward find for the other two, an inconsistency in the original that
// this keeps rather than smooths over.
func findByValue(prices []domain.SignedPrice, price domain.SignedPrice) (int, bool) {
	for i, p := range prices {
		if p == price {
			return i, true
		}
	}
	return 0, false
}

func (b *SoAPriceBook) reduceOrder(order *priceOrderRecord, qty domain.Qty) {
	prices, qtys := b.side(order.Price)
	if at, found := findByValue(*prices, order.Price); found {
		(*qtys)[at] -= qty
	}
	order.Qty -= qty
}

func (b *SoAPriceBook) deleteOrder(order *priceOrderRecord) {
	prices, qtys := b.side(order.Price)
	at, found := findByValue(*prices, order.Price)
	if !found {
		return
	}
	(*qtys)[at] -= order.Qty
	if (*qtys)[at] != 0 {
		return
	}
	*prices = removeAt(*prices, at)
	*qtys = removeAt(*qtys, at)
}

// Depth returns up to n (price, qty) pairs on side s, best price first.
func (b *SoAPriceBook) Depth(s domain.Side, n int) []DepthLevel {
	if s == domain.Ask {
		return depthFromTail(b.askPrices, b.askQtys, n)
	}
	return depthFromTail(b.bidPrices, b.bidQtys, n)
}

// BestPrice returns side s's best price, if any.
func (b *SoAPriceBook) BestPrice(s domain.Side) (domain.SignedPrice, bool) {
	prices := b.bidPrices
	if s == domain.Ask {
		prices = b.askPrices
	}
	if len(prices) == 0 {
		return 0, false
	}
	return prices[len(prices)-1], true
}
