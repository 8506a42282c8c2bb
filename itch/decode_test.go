package itch

import (
	"encoding/binary"
	"testing"
)

func TestDecodeAddOrderFields(t *testing.T) {
	b := make([]byte, payloadLength[AddOrder])
	binary.BigEndian.PutUint16(b[0:2], 7)             // stock locate
	binary.BigEndian.PutUint64(b[10:18], 123456789)   // order ref num
	b[18] = byte(Sell)
	binary.BigEndian.PutUint32(b[19:23], 500) // shares
	copy(b[23:31], "AAPL    ")
	binary.BigEndian.PutUint32(b[31:35], 1500000) // price

	msg := DecodeAddOrder(b)
	if msg.StockLocate != 7 {
		t.Errorf("StockLocate = %d, want 7", msg.StockLocate)
	}
	if msg.OrderRefNum != 123456789 {
		t.Errorf("OrderRefNum = %d, want 123456789", msg.OrderRefNum)
	}
	if msg.Side != Sell {
		t.Errorf("Side = %q, want S", byte(msg.Side))
	}
	if msg.Shares != 500 {
		t.Errorf("Shares = %d, want 500", msg.Shares)
	}
	if msg.Price != 1500000 {
		t.Errorf("Price = %d, want 1500000", msg.Price)
	}
}

func TestDecodeAddOrderMPIDEmbedsAdd(t *testing.T) {
	b := make([]byte, payloadLength[AddOrderMPID])
	b[18] = byte(Buy)
	binary.BigEndian.PutUint32(b[19:23], 100)
	copy(b[35:39], "ABCD")

	msg := DecodeAddOrderMPID(b)
	if !msg.Add.Side.IsBuy() {
		t.Error("expected embedded add order to be a buy")
	}
	if msg.Add.Shares != 100 {
		t.Errorf("embedded Shares = %d, want 100", msg.Add.Shares)
	}
	if string(msg.MPID[:]) != "ABCD" {
		t.Errorf("MPID = %q, want ABCD", msg.MPID[:])
	}
}

func TestDecodeOrderExecutedWithPriceEmbedsExec(t *testing.T) {
	b := make([]byte, payloadLength[OrderExecutedWithPrice])
	binary.BigEndian.PutUint64(b[10:18], 99)
	binary.BigEndian.PutUint32(b[18:22], 20)
	binary.BigEndian.PutUint32(b[31:35], 42)

	msg := DecodeOrderExecutedWithPrice(b)
	if msg.Exec.OrderRefNum != 99 {
		t.Errorf("Exec.OrderRefNum = %d, want 99", msg.Exec.OrderRefNum)
	}
	if msg.Exec.ExecutedShares != 20 {
		t.Errorf("Exec.ExecutedShares = %d, want 20", msg.Exec.ExecutedShares)
	}
	if msg.ExecutionPrice != 42 {
		t.Errorf("ExecutionPrice = %d, want 42", msg.ExecutionPrice)
	}
}

func TestDecodeOrderReplaceFields(t *testing.T) {
	b := make([]byte, payloadLength[OrderReplace])
	binary.BigEndian.PutUint64(b[10:18], 1)
	binary.BigEndian.PutUint64(b[18:26], 2)
	binary.BigEndian.PutUint32(b[26:30], 300)
	binary.BigEndian.PutUint32(b[30:34], 750000)

	msg := DecodeOrderReplace(b)
	if msg.OrderRefNum != 1 || msg.NewOrderRefNum != 2 {
		t.Errorf("ref nums = %d, %d, want 1, 2", msg.OrderRefNum, msg.NewOrderRefNum)
	}
	if msg.Shares != 300 {
		t.Errorf("Shares = %d, want 300", msg.Shares)
	}
	if msg.Price != 750000 {
		t.Errorf("Price = %d, want 750000", msg.Price)
	}
}
