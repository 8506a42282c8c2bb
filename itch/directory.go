package itch

import (
	"bytes"

	"itchbook/domain"
)

// Directory maps a session's stock locates to their tickers, built up
// as StockDirectory messages arrive over the course of a run. There is
// exactly one per feed; symbol_from_locate in the source is the same
// idea as a bare global vector.
type Directory struct {
	tickers []string
}

// NewDirectory pre-sizes the lookup for numBooks locates.
func NewDirectory(numBooks int) *Directory {
	return &Directory{tickers: make([]string, numBooks)}
}

// Observe records msg's ticker under its stock locate, trimming the
// fixed 8-byte, space-padded field ITCH uses for symbols.
func (d *Directory) Observe(msg StockDirectoryMessage) {
	locate := int(msg.StockLocate)
	if locate >= len(d.tickers) {
		grown := make([]string, locate+1)
		copy(grown, d.tickers)
		d.tickers = grown
	}
	d.tickers[locate] = string(bytes.TrimRight(msg.Stock[:], " \x00"))
}

// Lookup returns bookID's ticker, or "" if no StockDirectory message for
// it has been observed yet.
func (d *Directory) Lookup(bookID domain.BookID) string {
	idx := int(bookID)
	if idx >= len(d.tickers) {
		return ""
	}
	return d.tickers[idx]
}
