package book

import (
	"fmt"

	"itchbook/domain"
)

// MismatchError reports a divergence between a variant under test and
// the scalar reference engine after a mutation, with both sides' full
// depth dumped for post-mortem comparison.
type MismatchError struct {
	BookID domain.BookID
	Side   domain.Side
	Got    []DepthLevel
	Want   []DepthLevel
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("book %d side %s diverged from reference: got %v want %v", e.BookID, e.Side, e.Got, e.Want)
}

// CrossCheckEngine runs every mutation against both a variant under test
// and a scalar reference engine, diffing full depth on both sides after
// each call. This is the Go standing of the source's compile-time
// CROSS_CHECK build, which linked a second reference book in and
// compared it after every message; here it is a decorator so a
// production run pays nothing for it unless explicitly asked for.
type CrossCheckEngine struct {
	under      Engine
	reference  Engine
	onMismatch func(error)
	bookOf     map[domain.OrderID]domain.BookID
}

// NewCrossCheckEngine wraps under with a fresh scalar reference sized to
// numBooks. onMismatch is called (and the divergent mutation still takes
// effect on both engines) whenever a check fails; pass nil to panic on
// first mismatch instead.
func NewCrossCheckEngine(under Engine, numBooks, orderCapacityHint int, onMismatch func(error)) *CrossCheckEngine {
	ref, err := NewEngine(Scalar, numBooks, orderCapacityHint)
	if err != nil {
		panic(err)
	}
	return &CrossCheckEngine{
		under:      under,
		reference:  ref,
		onMismatch: onMismatch,
		bookOf:     make(map[domain.OrderID]domain.BookID),
	}
}

func (e *CrossCheckEngine) report(err error) {
	if e.onMismatch != nil {
		e.onMismatch(err)
		return
	}
	panic(err)
}

func (e *CrossCheckEngine) check(bookID domain.BookID) {
	for _, s := range [2]domain.Side{domain.Bid, domain.Ask} {
		got := e.under.Depth(bookID, s, 1<<20)
		want := e.reference.Depth(bookID, s, 1<<20)
		if !depthEqual(got, want) {
			e.report(&MismatchError{BookID: bookID, Side: s, Got: got, Want: want})
		}
	}
}

func depthEqual(a, b []DepthLevel) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (e *CrossCheckEngine) AddOrder(oid domain.OrderID, bookID domain.BookID, price domain.SignedPrice, qty domain.Qty) {
	e.under.AddOrder(oid, bookID, price, qty)
	e.reference.AddOrder(oid, bookID, price, qty)
	e.bookOf[oid] = bookID
	e.check(bookID)
}

func (e *CrossCheckEngine) DeleteOrder(oid domain.OrderID) {
	bookID := e.bookOf[oid]
	e.under.DeleteOrder(oid)
	e.reference.DeleteOrder(oid)
	delete(e.bookOf, oid)
	e.check(bookID)
}

func (e *CrossCheckEngine) ReduceOrder(oid domain.OrderID, qty domain.Qty) {
	bookID := e.bookOf[oid]
	e.under.ReduceOrder(oid, qty)
	e.reference.ReduceOrder(oid, qty)
	e.check(bookID)
}

func (e *CrossCheckEngine) ExecuteOrder(oid domain.OrderID, qty domain.Qty) {
	bookID := e.bookOf[oid]
	e.under.ExecuteOrder(oid, qty)
	e.reference.ExecuteOrder(oid, qty)
	e.check(bookID)
}

func (e *CrossCheckEngine) ReplaceOrder(oldOID, newOID domain.OrderID, newPrice domain.SignedPrice, newQty domain.Qty) {
	bookID := e.bookOf[oldOID]
	e.under.ReplaceOrder(oldOID, newOID, newPrice, newQty)
	e.reference.ReplaceOrder(oldOID, newOID, newPrice, newQty)
	delete(e.bookOf, oldOID)
	e.bookOf[newOID] = bookID
	e.check(bookID)
}

func (e *CrossCheckEngine) Depth(bookID domain.BookID, s domain.Side, n int) []DepthLevel {
	return e.under.Depth(bookID, s, n)
}

func (e *CrossCheckEngine) BestPrice(bookID domain.BookID, s domain.Side) (domain.SignedPrice, bool) {
	return e.under.BestPrice(bookID, s)
}
