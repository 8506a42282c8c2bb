// Package backtest drives an itch.Source through a book.Engine and
// times how long the run takes, the Go standing of the source's
// timeBacktest template function in main.cpp.
package backtest

import (
	"fmt"
	"time"

	"itchbook/book"
	"itchbook/domain"
	"itchbook/itch"
)

// Options configures one run of Run.
type Options struct {
	// WarmupOnFirstAdd starts the packet count and the clock on the
	// first ADD_ORDER message instead of the top of the file: messages
	// before it are not counted, and it and every later one are. This is a
	// benchmark-policy knob, off by default; the source always ran with
	// it on, folding warm-up cost out of its reported nanos-per-packet.
	WarmupOnFirstAdd bool
}

// Stats summarizes one completed run.
type Stats struct {
	Packets    uint64
	Elapsed    time.Duration
	NanosPerPkt float64
}

// Run reads frames from src until it is exhausted, dispatching the seven
// order-mutating message types to engine and every other type to dir
// (StockDirectory) or nowhere (everything else, framed and discarded
// exactly like the source's DO_CASE macro).
func Run(src itch.Source, engine book.Engine, dir *itch.Directory, activity *book.ActivityReport, opts Options) (Stats, error) {
	var (
		packets uint64
		start   time.Time
		started bool
	)
	if !opts.WarmupOnFirstAdd {
		start = time.Now()
		started = true
	}

	for {
		msgType, ok := itch.NextType(src)
		if !ok {
			break
		}

		// Outside warm-up mode every message counts. In warm-up mode,
		// nothing counts until the first ADD_ORDER arrives (handled in
		// that case below); every message after it does, mirroring the
		// source's "if (npkts) ++npkts" guard running on top of a
		// counter the ADD_ORDER branch alone is responsible for seeding.
		if !opts.WarmupOnFirstAdd || started {
			packets++
		}

		switch msgType {
		case itch.SystemEvent:
			if _, _, err := readAndDecode(src, msgType); err != nil {
				return Stats{}, err
			}
		case itch.StockDirectory:
			_, payload, err := readAndDecode(src, msgType)
			if err != nil {
				return Stats{}, err
			}
			dir.Observe(itch.DecodeStockDirectory(payload))
		case itch.StockTradingAction, itch.RegSHORestriction, itch.MarketParticipantPosition,
			itch.MWCBDeclineLevel, itch.MWCBStatus, itch.IPOQuotingPeriodUpdate,
			itch.CrossTrade, itch.BrokenTrade, itch.NOII, itch.RPII, itch.LULDAuctionCollar:
			if _, _, err := readAndDecode(src, msgType); err != nil {
				return Stats{}, err
			}
		case itch.Trade:
			if _, _, err := readAndDecode(src, msgType); err != nil {
				return Stats{}, err
			}

		case itch.AddOrder:
			_, payload, err := itch.ReadFrame(src)
			if err != nil {
				return Stats{}, err
			}
			msg := itch.DecodeAddOrder(payload)
			if opts.WarmupOnFirstAdd && !started {
				start = time.Now()
				started = true
				packets = 1
			}
			bookID := domain.BookID(msg.StockLocate)
			price := domain.SignPrice(msg.Price, sideOf(msg.Side))
			engine.AddOrder(domain.OrderID(msg.OrderRefNum), bookID, price, domain.Qty(msg.Shares))
			if activity != nil {
				activity.Record(bookID)
			}

		case itch.AddOrderMPID:
			_, payload, err := itch.ReadFrame(src)
			if err != nil {
				return Stats{}, err
			}
			msg := itch.DecodeAddOrderMPID(payload)
			bookID := domain.BookID(msg.Add.StockLocate)
			price := domain.SignPrice(msg.Add.Price, sideOf(msg.Add.Side))
			engine.AddOrder(domain.OrderID(msg.Add.OrderRefNum), bookID, price, domain.Qty(msg.Add.Shares))
			if activity != nil {
				activity.Record(bookID)
			}

		case itch.OrderExecuted:
			_, payload, err := itch.ReadFrame(src)
			if err != nil {
				return Stats{}, err
			}
			msg := itch.DecodeOrderExecuted(payload)
			engine.ExecuteOrder(domain.OrderID(msg.OrderRefNum), domain.Qty(msg.ExecutedShares))

		case itch.OrderExecutedWithPrice:
			_, payload, err := itch.ReadFrame(src)
			if err != nil {
				return Stats{}, err
			}
			msg := itch.DecodeOrderExecutedWithPrice(payload)
			engine.ExecuteOrder(domain.OrderID(msg.Exec.OrderRefNum), domain.Qty(msg.Exec.ExecutedShares))

		case itch.OrderCancel:
			_, payload, err := itch.ReadFrame(src)
			if err != nil {
				return Stats{}, err
			}
			msg := itch.DecodeOrderCancel(payload)
			engine.ReduceOrder(domain.OrderID(msg.OrderRefNum), domain.Qty(msg.CanceledShares))

		case itch.OrderDelete:
			_, payload, err := itch.ReadFrame(src)
			if err != nil {
				return Stats{}, err
			}
			msg := itch.DecodeOrderDelete(payload)
			engine.DeleteOrder(domain.OrderID(msg.OrderRefNum))

		case itch.OrderReplace:
			_, payload, err := itch.ReadFrame(src)
			if err != nil {
				return Stats{}, err
			}
			msg := itch.DecodeOrderReplace(payload)
			// The feed reports the replacement's price as a bare
			// magnitude. Passing it through SignPrice with the Bid side
			// is a no-op sign (positive in, positive out); Engine's
			// ReplaceOrder is what actually negates it, once, after
			// looking up which side the retiring order rested on.
			price := domain.SignPrice(msg.Price, domain.Bid)
			engine.ReplaceOrder(domain.OrderID(msg.OrderRefNum), domain.OrderID(msg.NewOrderRefNum), price, domain.Qty(msg.Shares))

		default:
			return Stats{}, fmt.Errorf("backtest: unhandled message type %q", byte(msgType))
		}
	}

	elapsed := time.Since(start)
	stats := Stats{Packets: packets, Elapsed: elapsed}
	if packets > 0 {
		stats.NanosPerPkt = float64(elapsed.Nanoseconds()) / float64(packets)
	}
	return stats, nil
}

func sideOf(s itch.Side) domain.Side {
	if s.IsBuy() {
		return domain.Bid
	}
	return domain.Ask
}

// readAndDecode frames and fully parses a message the harness has no
// further use for, matching the source's own DO_CASE macro: every
// message is parsed with itch_message<T>::parse before being thrown
// away, so a malformed payload still surfaces as an error here rather
// than silently corrupting the framing offset of the next message.
func readAndDecode(src itch.Source, want itch.MessageType) (itch.MessageType, []byte, error) {
	got, payload, err := itch.ReadFrame(src)
	if err != nil {
		return 0, nil, err
	}
	if got != want {
		return 0, nil, fmt.Errorf("backtest: expected %q, got %q", byte(want), byte(got))
	}
	switch got {
	case itch.SystemEvent:
		itch.DecodeSystemEvent(payload)
	case itch.Trade:
		itch.DecodeTrade(payload)
	case itch.CrossTrade:
		itch.DecodeCrossTrade(payload)
	case itch.BrokenTrade:
		itch.DecodeBrokenTrade(payload)
	default:
		itch.DecodeOther(got, payload)
	}
	return got, payload, nil
}
