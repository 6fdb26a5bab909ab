package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/entity"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/localstore"
)

var testPricing = Pricing{Currency: "INR", DeliveryFee: 4000, TaxBasisPoints: 500}

func item(id string, cents int64) domain.MenuItem {
	return domain.MenuItem{
		ID:          id,
		Name:        "item-" + id,
		Price:       domain.NewMoney(cents, "INR"),
		IsAvailable: true,
	}
}

func TestAddItemMergesLines(t *testing.T) {
	c := New(testPricing, nil, nil)

	c.AddItem(item("a", 10000), 1)
	c.AddItem(item("b", 5000), 2)
	c.AddItem(item("a", 10000), 2)

	require.Equal(t, 2, c.Len())
	lines := c.Lines()
	assert.Equal(t, "a", lines[0].Item.ID)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, "b", lines[1].Item.ID)
	assert.Equal(t, 2, lines[1].Quantity)
	assert.Equal(t, 5, c.ItemCount())
}

func TestAddItemRejectsNonPositiveQty(t *testing.T) {
	c := New(testPricing, nil, nil)
	c.AddItem(item("a", 100), 0)
	c.AddItem(item("a", 100), -3)
	assert.Equal(t, 0, c.Len())
}

func TestSetQuantity(t *testing.T) {
	c := New(testPricing, nil, nil)
	c.AddItem(item("a", 100), 2)

	c.SetQuantity("a", 5)
	assert.Equal(t, 5, c.Lines()[0].Quantity)

	// zero removes, never a zero-quantity line
	c.SetQuantity("a", 0)
	assert.Equal(t, 0, c.Len())

	// absent item is a no-op
	c.SetQuantity("ghost", 3)
	assert.Equal(t, 0, c.Len())
}

func TestRemoveItemKeepsOrder(t *testing.T) {
	c := New(testPricing, nil, nil)
	c.AddItem(item("a", 100), 1)
	c.AddItem(item("b", 100), 1)
	c.AddItem(item("c", 100), 1)

	c.RemoveItem("b")
	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "a", lines[0].Item.ID)
	assert.Equal(t, "c", lines[1].Item.ID)

	c.RemoveItem("b") // already gone
	assert.Equal(t, 2, c.Len())
}

func TestTotals(t *testing.T) {
	c := New(testPricing, nil, nil)
	c.AddItem(item("a", 24900), 2) // 49800
	c.AddItem(item("b", 9900), 1)  // 9900

	tot := c.Totals()
	assert.Equal(t, int64(59700), tot.Subtotal.Cents)
	assert.Equal(t, int64(4000), tot.DeliveryFee.Cents)
	assert.Equal(t, int64(2985), tot.Tax.Cents) // 5% of 59700
	assert.Equal(t, tot.Subtotal.Cents+tot.DeliveryFee.Cents+tot.Tax.Cents, tot.GrandTotal.Cents)
}

func TestTotalsEmptyCartAllZero(t *testing.T) {
	c := New(testPricing, nil, nil)
	tot := c.Totals()
	assert.True(t, tot.Subtotal.IsZero())
	assert.True(t, tot.DeliveryFee.IsZero())
	assert.True(t, tot.Tax.IsZero())
	assert.True(t, tot.GrandTotal.IsZero())
}

func TestTotalsTaxRoundsHalfUp(t *testing.T) {
	c := New(testPricing, nil, nil)
	c.AddItem(item("a", 990), 1) // 5% = 49.5 -> 50

	assert.Equal(t, int64(50), c.Totals().Tax.Cents)
}

func TestReplaceIsDestructive(t *testing.T) {
	c := New(testPricing, nil, nil)
	c.AddItem(item("old", 100), 7)

	c.Replace([]domain.OrderLine{
		{ItemID: "x", Name: "Biryani", Price: 19900, Quantity: 2},
		{ItemID: "y", Name: "Lassi", Price: 5900, Quantity: 0}, // dropped
	})

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "x", lines[0].Item.ID)
	assert.Equal(t, "Biryani", lines[0].Item.Name)
	assert.Equal(t, int64(19900), lines[0].Item.Price.Cents)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestReplaceKeepsIDLessLinesDistinct(t *testing.T) {
	c := New(testPricing, nil, nil)

	c.Replace([]domain.OrderLine{
		{Name: "Pizza", Price: 250, Quantity: 2},
		{Name: "Coke", Price: 50, Quantity: 1},
		{ItemID: "m1", Name: "Dal", Price: 9900, Quantity: 1},
		{ItemID: "m1", Name: "Dal", Price: 9900, Quantity: 2}, // merges
	})

	lines := c.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "Pizza", lines[0].Item.Name)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "Coke", lines[1].Item.Name)
	assert.Equal(t, int64(50), lines[1].Item.Price.Cents)
	assert.Equal(t, 3, lines[2].Quantity)
}

func TestPersistenceRoundTrip(t *testing.T) {
	kv := localstore.NewMemory()
	w := localstore.NewWriter(kv, nil)

	c := New(testPricing, w, nil)
	c.AddItem(item("a", 24900), 2)
	c.AddItem(item("b", 9900), 1)
	w.Flush()

	restored := Restore(testPricing, kv, nil, nil)
	require.Equal(t, 2, restored.Len())
	assert.Equal(t, c.Totals().GrandTotal, restored.Totals().GrandTotal)

	w.Close()
}

func TestRestoreMalformedSnapshot(t *testing.T) {
	kv := localstore.NewMemory()
	require.NoError(t, kv.Set(StorageKey, []byte(`{"broken`)))

	c := Restore(testPricing, kv, nil, nil)
	assert.Equal(t, 0, c.Len())
}

func TestRestoreMissingSnapshot(t *testing.T) {
	c := Restore(testPricing, localstore.NewMemory(), nil, nil)
	assert.Equal(t, 0, c.Len())
}

func TestClear(t *testing.T) {
	kv := localstore.NewMemory()
	w := localstore.NewWriter(kv, nil)
	c := New(testPricing, w, nil)

	c.AddItem(item("a", 100), 1)
	c.Clear()
	w.Flush()

	assert.Equal(t, 0, c.Len())
	raw, err := kv.Get(StorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(raw))

	w.Close()
}
