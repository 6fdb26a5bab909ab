// Package cart is the authoritative client-side cart state: one line
// per distinct menu item, quantities always >= 1, totals derived fresh
// from the lines on every call. Every mutation schedules a serialized
// fire-and-forget persistence write; persistence trouble never blocks
// or fails a mutation.
package cart

import (
	"log/slog"

	domain "github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/entity"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/localstore"
)

// StorageKey is where the cart snapshot lives in local storage.
const StorageKey = "cart"

// Pricing is the canonical bill formula: flat delivery fee when the
// cart is non-empty, tax as a fraction of the subtotal.
type Pricing struct {
	Currency       string
	DeliveryFee    int64 // minor units
	TaxBasisPoints int64 // 500 = 5%
}

// Line pairs a menu item snapshot with a positive quantity. Name and
// price are frozen at add time; later catalog edits don't touch them.
type Line struct {
	Item     domain.MenuItem
	Quantity int
}

// Totals is the bill breakdown. GrandTotal is always
// Subtotal + DeliveryFee + Tax; no screen computes its own variant.
type Totals struct {
	Subtotal    domain.Money
	DeliveryFee domain.Money
	Tax         domain.Money
	GrandTotal  domain.Money
}

type Cart struct {
	pricing Pricing
	lines   []*Line          // insertion order, for display
	index   map[string]*Line // menu item id -> line
	persist *localstore.Writer
	log     *slog.Logger
}

// New returns an empty cart. persist may be nil (tests, throwaway
// carts); then mutations skip the storage write.
func New(pricing Pricing, persist *localstore.Writer, log *slog.Logger) *Cart {
	return &Cart{
		pricing: pricing,
		index:   make(map[string]*Line),
		persist: persist,
		log:     log,
	}
}

// Restore rebuilds the cart from the persisted snapshot. A missing or
// malformed snapshot yields an empty cart; storage errors are logged
// and swallowed.
func Restore(pricing Pricing, kv localstore.KV, persist *localstore.Writer, log *slog.Logger) *Cart {
	c := New(pricing, persist, log)
	raw, err := kv.Get(StorageKey)
	if err != nil {
		if err != localstore.ErrNotFound && log != nil {
			log.Warn("cart restore failed", "error", err)
		}
		return c
	}
	c.setLines(domain.DecodeLines(raw))
	return c
}

// AddItem adds qty units of item, merging into the existing line if the
// item is already in the cart. Non-positive qty is rejected as a no-op.
// No stock check happens here: stock is enforced by the backend at
// placement time.
func (c *Cart) AddItem(item domain.MenuItem, qty int) {
	if qty <= 0 {
		return
	}
	if l, ok := c.index[item.ID]; ok {
		l.Quantity += qty
	} else {
		l := &Line{Item: item, Quantity: qty}
		c.lines = append(c.lines, l)
		c.index[item.ID] = l
	}
	c.save()
}

// SetQuantity sets the line for itemID to qty. qty <= 0 removes the
// line; a quantity-zero line is never retained. No-op if the item is
// not in the cart.
func (c *Cart) SetQuantity(itemID string, qty int) {
	l, ok := c.index[itemID]
	if !ok {
		return
	}
	if qty <= 0 {
		c.remove(itemID)
	} else {
		l.Quantity = qty
	}
	c.save()
}

// RemoveItem removes the line unconditionally; no-op if absent.
func (c *Cart) RemoveItem(itemID string) {
	if _, ok := c.index[itemID]; !ok {
		return
	}
	c.remove(itemID)
	c.save()
}

// Clear empties the cart. Called after successful order placement and
// on logout.
func (c *Cart) Clear() {
	c.lines = nil
	c.index = make(map[string]*Line)
	c.save()
}

// Replace swaps the entire cart contents for the given frozen lines.
// This is the reorder path: destructive, never a merge.
func (c *Cart) Replace(lines []domain.OrderLine) {
	c.setLines(lines)
	c.save()
}

// Lines returns the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.lines))
	for _, l := range c.lines {
		out = append(out, *l)
	}
	return out
}

func (c *Cart) Len() int { return len(c.lines) }

// ItemCount is the badge number: the sum of all quantities.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Totals computes the bill fresh from the current lines. The delivery
// fee applies only to a non-empty subtotal, so an empty cart totals to
// all zeroes.
func (c *Cart) Totals() Totals {
	cur := c.pricing.Currency
	subtotal := domain.NewMoney(0, cur)
	for _, l := range c.lines {
		subtotal = subtotal.Add(l.Item.Price.MulQty(l.Quantity))
	}
	fee := domain.NewMoney(0, cur)
	if subtotal.Cents > 0 {
		fee = domain.NewMoney(c.pricing.DeliveryFee, cur)
	}
	tax := subtotal.Percent(c.pricing.TaxBasisPoints)
	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Tax:         tax,
		GrandTotal:  subtotal.Add(fee).Add(tax),
	}
}

// OrderLines freezes the cart into the wire shape used for placement
// and persistence.
func (c *Cart) OrderLines() []domain.OrderLine {
	out := make([]domain.OrderLine, 0, len(c.lines))
	for _, l := range c.lines {
		out = append(out, domain.OrderLine{
			ItemID:   l.Item.ID,
			Name:     l.Item.Name,
			Price:    l.Item.Price.Cents,
			Quantity: l.Quantity,
		})
	}
	return out
}

func (c *Cart) remove(itemID string) {
	delete(c.index, itemID)
	for i, l := range c.lines {
		if l.Item.ID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			break
		}
	}
}

func (c *Cart) setLines(lines []domain.OrderLine) {
	c.lines = nil
	c.index = make(map[string]*Line)
	for _, ol := range lines {
		if ol.Quantity <= 0 {
			continue
		}
		// Lines replayed from old orders may carry no item id. Those
		// stay distinct entries; only identified lines merge.
		if ol.ItemID != "" {
			if l, ok := c.index[ol.ItemID]; ok {
				l.Quantity += ol.Quantity
				continue
			}
		}
		l := &Line{
			Item: domain.MenuItem{
				ID:          ol.ItemID,
				Name:        ol.Name,
				Price:       domain.NewMoney(ol.Price, c.pricing.Currency),
				IsAvailable: true,
			},
			Quantity: ol.Quantity,
		}
		c.lines = append(c.lines, l)
		if ol.ItemID != "" {
			c.index[ol.ItemID] = l
		}
	}
}

func (c *Cart) save() {
	if c.persist == nil {
		return
	}
	c.persist.Schedule(StorageKey, domain.EncodeLines(c.OrderLines()))
}
