// Package reorder replays a historical order into a fresh cart. The
// replay is a snapshot: the frozen names and prices from the order are
// used as-is, never re-looked-up against the current catalog, so price
// drift and discontinued items don't change what the user reorders.
package reorder

import (
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/cart"
	domain "github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/entity"
)

// Replay replaces the cart contents with the order's frozen lines and
// returns how many lines were restored. Replacement is destructive by
// contract; the UI confirms with the user before calling this.
func Replay(o domain.Order, into *cart.Cart) int {
	into.Replace(o.Lines)
	return into.Len()
}

// ReplayRaw is Replay for a still-serialized line payload, as stored in
// the orders table. Malformed payloads replay as zero lines, leaving an
// empty cart rather than an error surfacing into UI code.
func ReplayRaw(raw []byte, into *cart.Cart) int {
	into.Replace(domain.DecodeLines(raw))
	return into.Len()
}
