package book

import (
	"testing"

	"itchbook/domain"
)

// op is one step of a scripted mutation sequence, replayed identically
// against every variant so their externally visible depth must agree.
type op struct {
	kind  string // add, delete, reduce, execute, replace
	oid   domain.OrderID
	oid2  domain.OrderID
	book  domain.BookID
	price domain.SignedPrice
	qty   domain.Qty
}

func replay(t *testing.T, e Engine, ops []op) {
	t.Helper()
	for i, o := range ops {
		switch o.kind {
		case "add":
			e.AddOrder(o.oid, o.book, o.price, o.qty)
		case "delete":
			e.DeleteOrder(o.oid)
		case "reduce":
			e.ReduceOrder(o.oid, o.qty)
		case "execute":
			e.ExecuteOrder(o.oid, o.qty)
		case "replace":
			e.ReplaceOrder(o.oid, o.oid2, o.price, o.qty)
		default:
			t.Fatalf("op %d: unknown kind %q", i, o.kind)
		}
	}
}

func TestEngineVariantsAgreeOnDepth(t *testing.T) {
	ops := []op{
		{kind: "add", oid: 1, book: 0, price: domain.SignPrice(100, domain.Bid), qty: 10},
		{kind: "add", oid: 2, book: 0, price: domain.SignPrice(101, domain.Bid), qty: 5},
		{kind: "add", oid: 3, book: 0, price: domain.SignPrice(200, domain.Ask), qty: 7},
		{kind: "add", oid: 4, book: 0, price: domain.SignPrice(100, domain.Bid), qty: 3},
		{kind: "reduce", oid: 1, qty: 4},
		{kind: "execute", oid: 3, qty: 7},
		{kind: "delete", oid: 2},
		{kind: "add", oid: 5, book: 0, price: domain.SignPrice(199, domain.Ask), qty: 20},
		{kind: "replace", oid: 5, oid2: 6, price: 50, qty: 15},
	}

	kinds := []Kind{Scalar, SoA, SoAPrice, AVX2}
	var reference []DepthLevel
	for _, k := range kinds {
		e, err := NewEngine(k, 4, 16)
		if err != nil {
			t.Fatalf("NewEngine(%v) error: %v", k, err)
		}
		replay(t, e, ops)
		bidDepth := e.Depth(0, domain.Bid, 100)
		if reference == nil {
			reference = bidDepth
			continue
		}
		if !depthEqual(bidDepth, reference) {
			t.Errorf("%v bid depth = %v, want %v (scalar reference)", k, bidDepth, reference)
		}
	}
}

func TestEngineExecuteRoutesFullVsPartial(t *testing.T) {
	for _, k := range []Kind{Scalar, SoA, SoAPrice, AVX2} {
		e, err := NewEngine(k, 1, 8)
		if err != nil {
			t.Fatalf("NewEngine(%v) error: %v", k, err)
		}
		e.AddOrder(1, 0, domain.SignPrice(100, domain.Bid), 10)
		e.ExecuteOrder(1, 4)
		if _, ok := e.BestPrice(0, domain.Bid); !ok {
			t.Errorf("%v: partial execute should leave the level resting", k)
		}
		e.ExecuteOrder(1, 6)
		if _, ok := e.BestPrice(0, domain.Bid); ok {
			t.Errorf("%v: full execute should clear the level", k)
		}
	}
}

func TestEngineReplaceMovesToNewPriceOnSameSide(t *testing.T) {
	for _, k := range []Kind{Scalar, SoA, SoAPrice, AVX2} {
		e, err := NewEngine(k, 1, 8)
		if err != nil {
			t.Fatalf("NewEngine(%v) error: %v", k, err)
		}
		e.AddOrder(1, 0, domain.SignPrice(100, domain.Ask), 10)
		e.ReplaceOrder(1, 2, 105, 12)

		if best, ok := e.BestPrice(0, domain.Ask); !ok || best != domain.SignPrice(105, domain.Ask) {
			t.Errorf("%v: best ask after replace = %v (ok=%v), want 105", k, best, ok)
		}
		if best, ok := e.BestPrice(0, domain.Bid); ok {
			t.Errorf("%v: replace of an ask order leaked onto the bid side, best=%v", k, best)
		}
	}
}

func TestNewEngineRejectsUnknownKind(t *testing.T) {
	if _, err := NewEngine(Kind(99), 1, 1); err == nil {
		t.Error("expected an error for an unknown book variant")
	}
}
