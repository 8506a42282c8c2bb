package domain

// Side identifies which half of a book a price belongs to.
type Side uint8

const (
	Bid Side = iota
	Ask
)

func (s Side) String() string {
	if s == Bid {
		return "BID"
	}
	return "ASK"
}

// SignedPrice is the single 32-bit signed integer that encodes both a
// price's magnitude and its side: non-negative values are bids, negative
// values are asks (stored as -magnitude). is_bid(p) == p >= 0 is the only
// side test used anywhere in the book engine — collapsing the side check
// and the price compare into one signed integer operation is the whole
// point of the convention, and it is why both sides of a book can share
// one insertion/deletion algorithm operating over plain signed integers.
//
// Internally, a side's sorted array is kept ascending by SignedPrice, so
// the physical tail holds the side's best price: for bids the highest
// magnitude, for asks the signed value closest to zero (the lowest
// magnitude, i.e. the best ask). Depth/BestPrice read that tail first so
// callers see levels ordered best-to-worst regardless of the internal
// layout.
type SignedPrice int32

// PriceSentinel fills the AVX2 variant's unused trailing lanes. It
// compares greater than any real price that can appear on the feed. The
// variant's scans stop at the side's live count, so they never reach a
// sentinel lane.
const PriceSentinel SignedPrice = 0x40000000

// IsBid reports whether p encodes a bid-side price.
func (p SignedPrice) IsBid() bool { return int32(p) >= 0 }

// Side returns the side p belongs to.
func (p SignedPrice) Side() Side {
	if p.IsBid() {
		return Bid
	}
	return Ask
}

// Magnitude returns the unsigned price the feed actually reported.
func (p SignedPrice) Magnitude() uint32 {
	if p.IsBid() {
		return uint32(p)
	}
	return uint32(-p)
}

// SignPrice re-derives the sign-encoded price from a feed-reported
// magnitude and a side, negating for the ask side.
func SignPrice(magnitude uint32, side Side) SignedPrice {
	if side == Bid {
		return SignedPrice(magnitude)
	}
	return -SignedPrice(magnitude)
}
