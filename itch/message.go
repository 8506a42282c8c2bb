// Package itch decodes NASDAQ TotalView-ITCH 5.0 messages: the 16-bit
// big-endian length-prefixed framing every message arrives in, and the
// fixed-layout payload for each of the twenty-one message types the feed
// can send. Only seven of those (the two add-order forms, the two
// execute forms, cancel, delete and replace) mutate an order book; the
// other fourteen are still decoded so a reader's offsets stay correct
// even though the backtester discards them.
package itch

// MessageType is the single-byte tag that opens every ITCH payload,
// right after the 2-byte network length prefix has been stripped.
type MessageType byte

const (
	SystemEvent               MessageType = 'S'
	StockDirectory            MessageType = 'R'
	StockTradingAction        MessageType = 'H'
	RegSHORestriction         MessageType = 'Y'
	MarketParticipantPosition MessageType = 'L'
	MWCBDeclineLevel          MessageType = 'V'
	MWCBStatus                MessageType = 'W'
	IPOQuotingPeriodUpdate    MessageType = 'K'
	AddOrder                  MessageType = 'A'
	AddOrderMPID              MessageType = 'F'
	OrderExecuted             MessageType = 'E'
	OrderExecutedWithPrice    MessageType = 'C'
	OrderCancel               MessageType = 'X'
	OrderDelete               MessageType = 'D'
	OrderReplace              MessageType = 'U'
	Trade                     MessageType = 'P'
	CrossTrade                MessageType = 'Q'
	BrokenTrade               MessageType = 'B'
	NOII                      MessageType = 'I'
	RPII                      MessageType = 'N'
	LULDAuctionCollar         MessageType = 'J'
)

// PayloadLength gives the fixed number of payload bytes that follow the
// one-byte message type for each known message, mirroring the source's
// netlen<__code> compile-time constant table. The length excludes the
// message type byte itself and the 2-byte length prefix.
var payloadLength = map[MessageType]int{
	SystemEvent:               11,
	StockDirectory:            38,
	StockTradingAction:        24,
	RegSHORestriction:         19,
	MarketParticipantPosition: 25,
	MWCBDeclineLevel:          34,
	MWCBStatus:                11,
	IPOQuotingPeriodUpdate:    27,
	AddOrder:                  35,
	AddOrderMPID:              39,
	OrderExecuted:             30,
	OrderExecutedWithPrice:    35,
	OrderCancel:               22,
	OrderDelete:               18,
	OrderReplace:              34,
	Trade:                     43,
	CrossTrade:                39,
	BrokenTrade:               18,
	NOII:                      49,
	RPII:                      19,
	LULDAuctionCollar:         34,
}

// PayloadLength reports how many bytes follow the type byte for t, and
// whether t is a message type this package knows how to frame at all.
func PayloadLength(t MessageType) (int, bool) {
	n, ok := payloadLength[t]
	return n, ok
}

// Side is the buy/sell flag ITCH packs as an ASCII 'B' or 'S' byte.
type Side byte

const (
	Buy  Side = 'B'
	Sell Side = 'S'
)

// IsBuy reports whether s is the buy side. Any byte other than 'B' is
// treated as sell, matching the source's BUY_SELL enum having exactly
// two states.
func (s Side) IsBuy() bool { return s == Buy }
