package backtest

import (
	"encoding/binary"
	"testing"

	"itchbook/book"
	"itchbook/domain"
	"itchbook/itch"
)

// sliceSource is an in-memory itch.Source for driving Run without a
// real memory-mapped file.
type sliceSource struct {
	data []byte
	pos  int
}

func (s *sliceSource) Get(idx int) []byte { return s.data[s.pos+idx:] }
func (s *sliceSource) Available() int     { return len(s.data) - s.pos }
func (s *sliceSource) Ensure(n int) bool  { return s.pos+n <= len(s.data) }
func (s *sliceSource) Advance(n int)      { s.pos += n }

func frame(t itch.MessageType, payload []byte) []byte {
	buf := make([]byte, 2+1+len(payload))
	binary.BigEndian.PutUint16(buf, uint16(len(payload)+1))
	buf[2] = byte(t)
	copy(buf[3:], payload)
	return buf
}

func addOrderFrame(locate uint16, oid uint64, side itch.Side, shares, price uint32) []byte {
	p := make([]byte, 35)
	binary.BigEndian.PutUint16(p[0:2], locate)
	binary.BigEndian.PutUint64(p[10:18], oid)
	p[18] = byte(side)
	binary.BigEndian.PutUint32(p[19:23], shares)
	binary.BigEndian.PutUint32(p[31:35], price)
	return frame(itch.AddOrder, p)
}

func deleteOrderFrame(oid uint64) []byte {
	p := make([]byte, 18)
	binary.BigEndian.PutUint64(p[10:18], oid)
	return frame(itch.OrderDelete, p)
}

func TestRunDrivesAddAndDelete(t *testing.T) {
	var data []byte
	data = append(data, addOrderFrame(0, 1, itch.Buy, 10, 100)...)
	data = append(data, addOrderFrame(0, 2, itch.Buy, 5, 101)...)
	data = append(data, deleteOrderFrame(1)...)

	engine, err := book.NewEngine(book.Scalar, 1, 8)
	if err != nil {
		t.Fatalf("NewEngine error: %v", err)
	}
	dir := itch.NewDirectory(1)
	activity := book.NewActivityReport(1)

	stats, err := Run(&sliceSource{data: data}, engine, dir, activity, Options{})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if stats.Packets != 3 {
		t.Errorf("Packets = %d, want 3", stats.Packets)
	}

	best, ok := engine.BestPrice(0, domain.Bid)
	if !ok || best != domain.SignPrice(101, domain.Bid) {
		t.Errorf("BestPrice = %v (ok=%v), want 101 after deleting the lower order", best, ok)
	}
}

func TestRunDrivesCrossTradeAndRegSHOFrames(t *testing.T) {
	crossPayload := make([]byte, 39)
	regSHOPayload := make([]byte, 19)

	var data []byte
	data = append(data, frame(itch.CrossTrade, crossPayload)...)
	data = append(data, frame(itch.RegSHORestriction, regSHOPayload)...)
	data = append(data, addOrderFrame(0, 1, itch.Buy, 10, 100)...)

	engine, err := book.NewEngine(book.Scalar, 1, 8)
	if err != nil {
		t.Fatalf("NewEngine error: %v", err)
	}
	dir := itch.NewDirectory(1)
	activity := book.NewActivityReport(1)

	stats, err := Run(&sliceSource{data: data}, engine, dir, activity, Options{})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if stats.Packets != 3 {
		t.Errorf("Packets = %d, want 3", stats.Packets)
	}
}

func TestRunRejectsMalformedFrame(t *testing.T) {
	bad := frame(itch.OrderDelete, []byte{1, 2, 3}) // wrong payload length
	engine, _ := book.NewEngine(book.Scalar, 1, 8)
	dir := itch.NewDirectory(1)
	activity := book.NewActivityReport(1)

	if _, err := Run(&sliceSource{data: bad}, engine, dir, activity, Options{}); err == nil {
		t.Fatal("expected an error for a malformed frame")
	}
}

func TestRunRecordsActivityPerBook(t *testing.T) {
	var data []byte
	data = append(data, addOrderFrame(0, 1, itch.Buy, 10, 100)...)
	data = append(data, addOrderFrame(0, 2, itch.Buy, 10, 101)...)

	engine, _ := book.NewEngine(book.Scalar, 1, 8)
	dir := itch.NewDirectory(1)
	activity := book.NewActivityReport(1)

	if _, err := Run(&sliceSource{data: data}, engine, dir, activity, Options{}); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	top := activity.Top(1, dir.Lookup)
	if len(top) != 1 || top[0].Count != 2 {
		t.Errorf("activity top = %v, want one book with count 2", top)
	}
}
