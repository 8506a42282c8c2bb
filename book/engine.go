package book

import (
	"fmt"

	"itchbook/domain"
)

// Engine is the static-dispatch facade every book variant sits behind.
// The source picks one concrete order_book<Derived> at compile time and
// never pays for a virtual call; an interface is the idiomatic Go
// substitute, with the factory below doing once, at startup, the
// selection the source's build system does at compile time.
type Engine interface {
	// AddOrder opens a new resting order on bookID at price for qty
	// shares. oid must not already be live.
	AddOrder(oid domain.OrderID, bookID domain.BookID, price domain.SignedPrice, qty domain.Qty)

	// DeleteOrder removes oid's entire remaining quantity.
	DeleteOrder(oid domain.OrderID)

	// ReduceOrder shaves qty shares off oid without removing it, even if
	// qty happens to consume everything left.
	ReduceOrder(oid domain.OrderID, qty domain.Qty)

	// ExecuteOrder reports a trade against oid for qty shares, routing to
	// a full delete when qty exhausts the order and to a partial reduce
	// otherwise.
	ExecuteOrder(oid domain.OrderID, qty domain.Qty)

	// ReplaceOrder retires oldOID and opens newOID in its place at
	// newPrice/newQty on the same book, exactly the way the feed's own
	// replace message describes it: a delete immediately followed by an
	// add, not an in-place price move.
	ReplaceOrder(oldOID, newOID domain.OrderID, newPrice domain.SignedPrice, newQty domain.Qty)

	// Depth reports up to n resting (price, qty) levels on bookID's side
	// s, best price first.
	Depth(bookID domain.BookID, s domain.Side, n int) []DepthLevel

	// BestPrice reports bookID's best price on side s, if any orders rest
	// there.
	BestPrice(bookID domain.BookID, s domain.Side) (domain.SignedPrice, bool)
}

// NewEngine builds the concrete engine named by kind, with numBooks
// per-symbol book slots and orderCapacityHint pre-reserved order slots.
func NewEngine(kind Kind, numBooks int, orderCapacityHint int) (Engine, error) {
	switch kind {
	case Scalar:
		return &ScalarEngine{
			pool:   NewOrderPool[orderLevelRecord](orderCapacityHint),
			levels: NewLevelPool(orderCapacityHint),
			books:  make([]ScalarBook, numBooks),
		}, nil
	case SoA:
		return &SoAEngine{
			pool:   NewOrderPool[orderLevelRecord](orderCapacityHint),
			levels: NewLevelPool(orderCapacityHint),
			books:  make([]SoABook, numBooks),
		}, nil
	case SoAPrice:
		return &SoAPriceEngine{
			pool:  NewOrderPool[priceOrderRecord](orderCapacityHint),
			books: make([]SoAPriceBook, numBooks),
		}, nil
	case AVX2:
		return &AVX2Engine{
			pool:  NewOrderPool[priceOrderRecord](orderCapacityHint),
			books: make([]AVX2Book, numBooks),
		}, nil
	default:
		return nil, fmt.Errorf("book: unknown variant %v", kind)
	}
}

// ScalarEngine wires OrderPool[orderLevelRecord], a shared LevelPool and
// a slice of ScalarBook together into a full Engine.
type ScalarEngine struct {
	pool   *OrderPool[orderLevelRecord]
	levels *LevelPool
	books  []ScalarBook
}

func (e *ScalarEngine) AddOrder(oid domain.OrderID, bookID domain.BookID, price domain.SignedPrice, qty domain.Qty) {
	e.pool.Reserve(oid)
	rec := e.pool.Get(oid)
	rec.BookIdx = bookID
	e.books[bookID].addOrder(e.levels, rec, price, qty)
}

func (e *ScalarEngine) DeleteOrder(oid domain.OrderID) {
	rec := e.pool.Get(oid)
	e.books[rec.BookIdx].deleteOrder(e.levels, rec)
}

func (e *ScalarEngine) ReduceOrder(oid domain.OrderID, qty domain.Qty) {
	rec := e.pool.Get(oid)
	e.books[rec.BookIdx].reduceOrder(e.levels, rec, qty)
}

func (e *ScalarEngine) ExecuteOrder(oid domain.OrderID, qty domain.Qty) {
	rec := e.pool.Get(oid)
	if qty == rec.Qty {
		e.books[rec.BookIdx].deleteOrder(e.levels, rec)
		return
	}
	e.books[rec.BookIdx].reduceOrder(e.levels, rec, qty)
}

func (e *ScalarEngine) ReplaceOrder(oldOID, newOID domain.OrderID, newPrice domain.SignedPrice, newQty domain.Qty) {
	old := e.pool.Get(oldOID)
	bookID := old.BookIdx
	bid := e.books[bookID].checkOrderBid(e.levels, old)
	if !bid {
		newPrice = -newPrice
	}
	e.books[bookID].deleteOrder(e.levels, old)
	e.pool.Reserve(newOID)
	next := e.pool.Get(newOID)
	next.BookIdx = bookID
	e.books[bookID].addOrder(e.levels, next, newPrice, newQty)
}

func (e *ScalarEngine) Depth(bookID domain.BookID, s domain.Side, n int) []DepthLevel {
	return e.books[bookID].Depth(e.levels, s, n)
}

func (e *ScalarEngine) BestPrice(bookID domain.BookID, s domain.Side) (domain.SignedPrice, bool) {
	return e.books[bookID].BestPrice(s)
}

// SoAEngine is the same wiring as ScalarEngine over SoABook instead.
type SoAEngine struct {
	pool   *OrderPool[orderLevelRecord]
	levels *LevelPool
	books  []SoABook
}

func (e *SoAEngine) AddOrder(oid domain.OrderID, bookID domain.BookID, price domain.SignedPrice, qty domain.Qty) {
	e.pool.Reserve(oid)
	rec := e.pool.Get(oid)
	rec.BookIdx = bookID
	e.books[bookID].addOrder(e.levels, rec, price, qty)
}

func (e *SoAEngine) DeleteOrder(oid domain.OrderID) {
	rec := e.pool.Get(oid)
	e.books[rec.BookIdx].deleteOrder(e.levels, rec)
}

func (e *SoAEngine) ReduceOrder(oid domain.OrderID, qty domain.Qty) {
	rec := e.pool.Get(oid)
	e.books[rec.BookIdx].reduceOrder(e.levels, rec, qty)
}

func (e *SoAEngine) ExecuteOrder(oid domain.OrderID, qty domain.Qty) {
	rec := e.pool.Get(oid)
	if qty == rec.Qty {
		e.books[rec.BookIdx].deleteOrder(e.levels, rec)
		return
	}
	e.books[rec.BookIdx].reduceOrder(e.levels, rec, qty)
}

func (e *SoAEngine) ReplaceOrder(oldOID, newOID domain.OrderID, newPrice domain.SignedPrice, newQty domain.Qty) {
	old := e.pool.Get(oldOID)
	bookID := old.BookIdx
	bid := e.books[bookID].checkOrderBid(e.levels, old)
	if !bid {
		newPrice = -newPrice
	}
	e.books[bookID].deleteOrder(e.levels, old)
	e.pool.Reserve(newOID)
	next := e.pool.Get(newOID)
	next.BookIdx = bookID
	e.books[bookID].addOrder(e.levels, next, newPrice, newQty)
}

func (e *SoAEngine) Depth(bookID domain.BookID, s domain.Side, n int) []DepthLevel {
	return e.books[bookID].Depth(e.levels, s, n)
}

func (e *SoAEngine) BestPrice(bookID domain.BookID, s domain.Side) (domain.SignedPrice, bool) {
	return e.books[bookID].BestPrice(s)
}

// SoAPriceEngine wires OrderPool[priceOrderRecord] and a slice of
// SoAPriceBook, with no shared level pool.
type SoAPriceEngine struct {
	pool  *OrderPool[priceOrderRecord]
	books []SoAPriceBook
}

func (e *SoAPriceEngine) AddOrder(oid domain.OrderID, bookID domain.BookID, price domain.SignedPrice, qty domain.Qty) {
	e.pool.Reserve(oid)
	rec := e.pool.Get(oid)
	rec.BookIdx = bookID
	e.books[bookID].addOrder(rec, price, qty)
}

func (e *SoAPriceEngine) DeleteOrder(oid domain.OrderID) {
	rec := e.pool.Get(oid)
	e.books[rec.BookIdx].deleteOrder(rec)
}

func (e *SoAPriceEngine) ReduceOrder(oid domain.OrderID, qty domain.Qty) {
	rec := e.pool.Get(oid)
	e.books[rec.BookIdx].reduceOrder(rec, qty)
}

func (e *SoAPriceEngine) ExecuteOrder(oid domain.OrderID, qty domain.Qty) {
	rec := e.pool.Get(oid)
	if qty == rec.Qty {
		e.books[rec.BookIdx].deleteOrder(rec)
		return
	}
	e.books[rec.BookIdx].reduceOrder(rec, qty)
}

func (e *SoAPriceEngine) ReplaceOrder(oldOID, newOID domain.OrderID, newPrice domain.SignedPrice, newQty domain.Qty) {
	old := e.pool.Get(oldOID)
	bookID := old.BookIdx
	if !e.books[bookID].checkOrderBid(old) {
		newPrice = -newPrice
	}
	e.books[bookID].deleteOrder(old)
	e.pool.Reserve(newOID)
	next := e.pool.Get(newOID)
	next.BookIdx = bookID
	e.books[bookID].addOrder(next, newPrice, newQty)
}

func (e *SoAPriceEngine) Depth(bookID domain.BookID, s domain.Side, n int) []DepthLevel {
	return e.books[bookID].Depth(s, n)
}

func (e *SoAPriceEngine) BestPrice(bookID domain.BookID, s domain.Side) (domain.SignedPrice, bool) {
	return e.books[bookID].BestPrice(s)
}

// AVX2Engine wires OrderPool[priceOrderRecord] and a slice of AVX2Book.
type AVX2Engine struct {
	pool  *OrderPool[priceOrderRecord]
	books []AVX2Book
}

func (e *AVX2Engine) AddOrder(oid domain.OrderID, bookID domain.BookID, price domain.SignedPrice, qty domain.Qty) {
	e.pool.Reserve(oid)
	rec := e.pool.Get(oid)
	rec.BookIdx = bookID
	e.books[bookID].addOrder(rec, price, qty)
}

func (e *AVX2Engine) DeleteOrder(oid domain.OrderID) {
	rec := e.pool.Get(oid)
	e.books[rec.BookIdx].deleteOrder(rec)
}

func (e *AVX2Engine) ReduceOrder(oid domain.OrderID, qty domain.Qty) {
	rec := e.pool.Get(oid)
	e.books[rec.BookIdx].reduceOrder(rec, qty)
}

func (e *AVX2Engine) ExecuteOrder(oid domain.OrderID, qty domain.Qty) {
	rec := e.pool.Get(oid)
	if qty == rec.Qty {
		e.books[rec.BookIdx].deleteOrder(rec)
		return
	}
	e.books[rec.BookIdx].reduceOrder(rec, qty)
}

func (e *AVX2Engine) ReplaceOrder(oldOID, newOID domain.OrderID, newPrice domain.SignedPrice, newQty domain.Qty) {
	old := e.pool.Get(oldOID)
	bookID := old.BookIdx
	if !e.books[bookID].checkOrderBid(old) {
		newPrice = -newPrice
	}
	e.books[bookID].deleteOrder(old)
	e.pool.Reserve(newOID)
	next := e.pool.Get(newOID)
	next.BookIdx = bookID
	e.books[bookID].addOrder(next, newPrice, newQty)
}

func (e *AVX2Engine) Depth(bookID domain.BookID, s domain.Side, n int) []DepthLevel {
	return e.books[bookID].Depth(s, n)
}

func (e *AVX2Engine) BestPrice(bookID domain.BookID, s domain.Side) (domain.SignedPrice, bool) {
	return e.books[bookID].BestPrice(s)
}
