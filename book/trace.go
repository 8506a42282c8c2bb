package book

import (
	"fmt"
	"io"

	"itchbook/domain"
)

// TracingEngine wraps an Engine and prints one line per mutation to w,
// the Go equivalent of the source's compile-time TRACE build: instead
// of recompiling with a macro flipped, wrap the engine you already built
// with --trace.
type TracingEngine struct {
	Engine
	w io.Writer
}

// NewTracingEngine wraps inner so every mutating call also logs a line
// to w before it runs.
func NewTracingEngine(inner Engine, w io.Writer) *TracingEngine {
	return &TracingEngine{Engine: inner, w: w}
}

func (e *TracingEngine) AddOrder(oid domain.OrderID, bookID domain.BookID, price domain.SignedPrice, qty domain.Qty) {
	fmt.Fprintf(e.w, "ADD    oid=%d book=%d price=%d qty=%d\n", oid, bookID, price, qty)
	e.Engine.AddOrder(oid, bookID, price, qty)
}

func (e *TracingEngine) DeleteOrder(oid domain.OrderID) {
	fmt.Fprintf(e.w, "DELETE oid=%d\n", oid)
	e.Engine.DeleteOrder(oid)
}

func (e *TracingEngine) ReduceOrder(oid domain.OrderID, qty domain.Qty) {
	fmt.Fprintf(e.w, "REDUCE oid=%d qty=%d\n", oid, qty)
	e.Engine.ReduceOrder(oid, qty)
}

func (e *TracingEngine) ExecuteOrder(oid domain.OrderID, qty domain.Qty) {
	fmt.Fprintf(e.w, "EXEC   oid=%d qty=%d\n", oid, qty)
	e.Engine.ExecuteOrder(oid, qty)
}

func (e *TracingEngine) ReplaceOrder(oldOID, newOID domain.OrderID, newPrice domain.SignedPrice, newQty domain.Qty) {
	fmt.Fprintf(e.w, "REPLACE old=%d new=%d price=%d qty=%d\n", oldOID, newOID, newPrice, newQty)
	e.Engine.ReplaceOrder(oldOID, newOID, newPrice, newQty)
}
