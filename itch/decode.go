package itch

import "encoding/binary"

// Timestamp is nanoseconds since midnight, the resolution ITCH 5.0 packs
// into a 48-bit big-endian field.
type Timestamp uint64

func readUint16(b []byte) uint16   { return binary.BigEndian.Uint16(b) }
func readUint32(b []byte) uint32   { return binary.BigEndian.Uint32(b) }
func readUint64(b []byte) uint64   { return binary.BigEndian.Uint64(b) }
func readTimestamp48(b []byte) Timestamp {
	var buf [8]byte
	copy(buf[2:], b[:6])
	return Timestamp(binary.BigEndian.Uint64(buf[:]))
}

// header is the 10-byte prefix shared by every ITCH message body: stock
// locate, tracking number, and the 48-bit timestamp.
type header struct {
	StockLocate     uint16
	TrackingNumber  uint16
	Timestamp       Timestamp
}

func readHeader(b []byte) header {
	return header{
		StockLocate:    readUint16(b[0:2]),
		TrackingNumber: readUint16(b[2:4]),
		Timestamp:      readTimestamp48(b[4:10]),
	}
}

// SystemEventMessage ('S') carries session-lifecycle markers (start of
// messages, start/end of trading, market close) that the harness only
// needs to log, never to feed to a book.
type SystemEventMessage struct {
	header
	EventCode byte
}

func DecodeSystemEvent(b []byte) SystemEventMessage {
	return SystemEventMessage{header: readHeader(b), EventCode: b[10]}
}

// StockDirectoryMessage ('R') is the once-per-symbol announcement that
// seeds Directory: it is the only place a stock locate is ever paired
// with its ticker.
type StockDirectoryMessage struct {
	header
	Stock           [8]byte
	MarketCategory  byte
	RoundLotSize    uint32
}

func DecodeStockDirectory(b []byte) StockDirectoryMessage {
	m := StockDirectoryMessage{header: readHeader(b)}
	copy(m.Stock[:], b[10:18])
	m.MarketCategory = b[18]
	m.RoundLotSize = readUint32(b[19:23])
	return m
}

// AddOrderMessage ('A') opens a new resting order with no attributed
// market participant.
type AddOrderMessage struct {
	header
	OrderRefNum uint64
	Side        Side
	Shares      uint32
	Stock       [8]byte
	Price       uint32
}

func DecodeAddOrder(b []byte) AddOrderMessage {
	return AddOrderMessage{
		header:      readHeader(b),
		OrderRefNum: readUint64(b[10:18]),
		Side:        Side(b[18]),
		Shares:      readUint32(b[19:23]),
		Stock:       [8]byte(b[23:31]),
		Price:       readUint32(b[31:35]),
	}
}

// AddOrderMPIDMessage ('F') is AddOrderMessage plus the attributed
// market participant id; the book only ever sees the embedded Add.
type AddOrderMPIDMessage struct {
	Add AddOrderMessage
	MPID [4]byte
}

func DecodeAddOrderMPID(b []byte) AddOrderMPIDMessage {
	return AddOrderMPIDMessage{
		Add:  DecodeAddOrder(b[:35]),
		MPID: [4]byte(b[35:39]),
	}
}

// OrderExecutedMessage ('E') reports a full or partial fill at the
// order's original resting price.
type OrderExecutedMessage struct {
	header
	OrderRefNum    uint64
	ExecutedShares uint32
	MatchNumber    uint64
}

func DecodeOrderExecuted(b []byte) OrderExecutedMessage {
	return OrderExecutedMessage{
		header:         readHeader(b),
		OrderRefNum:    readUint64(b[10:18]),
		ExecutedShares: readUint32(b[18:22]),
		MatchNumber:    readUint64(b[22:30]),
	}
}

// OrderExecutedWithPriceMessage ('C') is the same fill report at a
// price different from where the order rested.
type OrderExecutedWithPriceMessage struct {
	Exec            OrderExecutedMessage
	Printable       byte
	ExecutionPrice  uint32
}

func DecodeOrderExecutedWithPrice(b []byte) OrderExecutedWithPriceMessage {
	return OrderExecutedWithPriceMessage{
		Exec:           DecodeOrderExecuted(b[:30]),
		Printable:      b[30],
		ExecutionPrice: readUint32(b[31:35]),
	}
}

// OrderCancelMessage ('X') is a partial cancel: shares off, order stays.
type OrderCancelMessage struct {
	header
	OrderRefNum     uint64
	CanceledShares  uint32
}

func DecodeOrderCancel(b []byte) OrderCancelMessage {
	return OrderCancelMessage{
		header:         readHeader(b),
		OrderRefNum:    readUint64(b[10:18]),
		CanceledShares: readUint32(b[18:22]),
	}
}

// OrderDeleteMessage ('D') removes an order's entire remaining quantity.
type OrderDeleteMessage struct {
	header
	OrderRefNum uint64
}

func DecodeOrderDelete(b []byte) OrderDeleteMessage {
	return OrderDeleteMessage{header: readHeader(b), OrderRefNum: readUint64(b[10:18])}
}

// OrderReplaceMessage ('U') retires OrderRefNum and opens NewOrderRefNum
// in its place; the feed reports the new price unsigned, so the side is
// inherited from whichever order OrderRefNum belonged to.
type OrderReplaceMessage struct {
	header
	OrderRefNum    uint64
	NewOrderRefNum uint64
	Shares         uint32
	Price          uint32
}

func DecodeOrderReplace(b []byte) OrderReplaceMessage {
	return OrderReplaceMessage{
		header:         readHeader(b),
		OrderRefNum:    readUint64(b[10:18]),
		NewOrderRefNum: readUint64(b[18:26]),
		Shares:         readUint32(b[26:30]),
		Price:          readUint32(b[30:34]),
	}
}

// TradeMessage ('P') is a non-displayed order execution with no
// preceding Add on this feed; it never touches the book.
type TradeMessage struct {
	header
	OrderRefNum uint64
	Side        Side
	Shares      uint32
	Stock       [8]byte
	Price       uint32
	MatchNumber uint64
}

func DecodeTrade(b []byte) TradeMessage {
	return TradeMessage{
		header:      readHeader(b),
		OrderRefNum: readUint64(b[10:18]),
		Side:        Side(b[18]),
		Shares:      readUint32(b[19:23]),
		Stock:       [8]byte(b[23:31]),
		Price:       readUint32(b[31:35]),
		MatchNumber: readUint64(b[35:43]),
	}
}

// CrossTradeMessage ('Q') reports a cross session's execution price and
// paired shares; never touches the book.
type CrossTradeMessage struct {
	header
	Shares      uint64
	Stock       [8]byte
	Price       uint32
	MatchNumber uint64
	CrossType   byte
}

func DecodeCrossTrade(b []byte) CrossTradeMessage {
	return CrossTradeMessage{
		header:      readHeader(b),
		Shares:      readUint64(b[10:18]),
		Stock:       [8]byte(b[18:26]),
		Price:       readUint32(b[26:30]),
		MatchNumber: readUint64(b[30:38]),
		CrossType:   b[38],
	}
}

// BrokenTradeMessage ('B') voids a previously reported match number.
type BrokenTradeMessage struct {
	header
	MatchNumber uint64
}

func DecodeBrokenTrade(b []byte) BrokenTradeMessage {
	return BrokenTradeMessage{header: readHeader(b), MatchNumber: readUint64(b[10:18])}
}

// OtherMessage is the catch-all decode for the message types the
// harness frames correctly but never inspects: trading action,
// Reg SHO restriction, market participant position, MWCB decline and
// status, IPO quoting period update, net order imbalance, retail price
// improvement, and LULD auction collar. Keeping the raw payload rather
// than a per-type struct matches how little main.cpp's DO_CASE macro
// does with these: read, advance, discard.
type OtherMessage struct {
	header
	Type    MessageType
	Payload []byte
}

func DecodeOther(t MessageType, b []byte) OtherMessage {
	payload := make([]byte, len(b))
	copy(payload, b)
	return OtherMessage{header: readHeader(b), Type: t, Payload: payload}
}
