// Package domain holds the small value types shared by every layer of the
// backtester: order and book identifiers, quantities, and the
// sign-encoded price convention the book engine is built around.
package domain

// OrderID is the 32-bit order identifier assigned by the exchange feed.
// It is dense and monotone-ish for a real ITCH session, which is what
// lets the order pool address it directly instead of hashing it.
type OrderID uint32

// BookID is the per-session stock locate the feed assigns to a symbol;
// it doubles as the index of that symbol's book in the engine's book
// array.
type BookID uint16

// MaxBooks is the default number of book slots pre-allocated by the
// engine. The source hardcodes this; it is exposed here as a
// configuration default rather than a compile-time constant so a
// deployment with more or fewer symbols than a NASDAQ session can size
// it accordingly.
const MaxBooks = 1 << 14

// Qty is a resting order or level's quantity. The feed never sends a
// negative quantity.
type Qty uint32
