package book

import "itchbook/domain"

// DepthLevel is one exported (price, aggregate qty) pair, ordered
// best-to-worst by whatever queried it.
type DepthLevel struct {
	Price domain.SignedPrice
	Qty   domain.Qty
}

// findInsertionPoint scans a side's price array from the tail toward the
// head. Every side's storage is kept ascending by signed price, so the
// tail always holds that side's best price (highest magnitude bid,
// lowest magnitude ask) and real feeds concentrate most add/cancel/
// delete activity within a few levels of it — a tail-first scan finds a
// hit in 1-5 steps on average instead of walking the whole side.
//
// It returns (index, true) if price is already present at index, or
// (insertionIndex, false) if price is absent and must be inserted at
// insertionIndex to keep the array ascending.
func findInsertionPoint(prices []domain.SignedPrice, price domain.SignedPrice) (int, bool) {
	i := len(prices)
	for i > 0 {
		i--
		cur := prices[i]
		if cur == price {
			return i, true
		}
		if price > cur {
			return i + 1, false
		}
	}
	return 0, false
}

// insertAt inserts v at s[at], shifting the tail up by one.
func insertAt[T any](s []T, at int, v T) []T {
	var zero T
	s = append(s, zero)
	copy(s[at+1:], s[at:])
	s[at] = v
	return s
}

// removeAt deletes the element at s[at], shifting the tail down by one.
func removeAt[T any](s []T, at int) []T {
	copy(s[at:], s[at+1:])
	return s[:len(s)-1]
}

// depthFromTail reads up to n (price, qty) pairs from the tail of two
// parallel ascending slices, best price first.
func depthFromTail(prices []domain.SignedPrice, qtys []domain.Qty, n int) []DepthLevel {
	if n <= 0 || len(prices) == 0 {
		return nil
	}
	if n > len(prices) {
		n = len(prices)
	}
	out := make([]DepthLevel, n)
	for i := 0; i < n; i++ {
		idx := len(prices) - 1 - i
		out[i] = DepthLevel{Price: prices[idx], Qty: qtys[idx]}
	}
	return out
}
