package cart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCart_AddItemAggregatesByName(t *testing.T) {
	t.Parallel()

	c := New()

	require.True(t, c.AddItem("Aurora Floor Lamp", "₽199.99"))
	require.True(t, c.AddItem("Aurora Floor Lamp", "₽199.99"))

	snap := c.Snapshot()
	require.Len(t, snap.Items, 1)
	require.Equal(t, "Aurora Floor Lamp", snap.Items[0].Name)
	require.Equal(t, 2, snap.Items[0].Quantity)
	require.InDelta(t, 2*199.99, snap.TotalPrice, 1e-9)
	require.Equal(t, 2, snap.ItemCount)
}

func TestCart_FirstSeenPriceWins(t *testing.T) {
	t.Parallel()

	c := New()
	c.AddItem("Chair", "100")
	c.AddItem("Chair", "250") // repeat add must not reprice

	snap := c.Snapshot()
	require.Len(t, snap.Items, 1)
	require.InDelta(t, 100.0, snap.Items[0].UnitPrice, 1e-9)
	require.InDelta(t, 200.0, snap.TotalPrice, 1e-9)
}

func TestCart_AddItemRejectsEmptyName(t *testing.T) {
	t.Parallel()

	c := New()
	require.False(t, c.AddItem("", "10"))
	require.Equal(t, 0, c.ItemCount())
}

func TestCart_RemoveItemAbsentIsNoop(t *testing.T) {
	t.Parallel()

	c := New()
	c.AddItem("Sofa", "999")

	c.RemoveItem("sofa") // case-sensitive: no match
	c.RemoveItem("Table")

	snap := c.Snapshot()
	require.Len(t, snap.Items, 1)
	require.InDelta(t, 999.0, snap.TotalPrice, 1e-9)
}

func TestCart_AddAddRemoveLeavesEmptyCart(t *testing.T) {
	t.Parallel()

	c := New()
	c.AddItem("Lamp", "₽199.99")
	c.AddItem("Lamp", "₽199.99")
	c.RemoveItem("Lamp")

	snap := c.Snapshot()
	require.Empty(t, snap.Items)
	require.Zero(t, snap.TotalPrice)
	require.Zero(t, snap.ItemCount)
	require.Equal(t, 0, c.ItemCount())
}

func TestCart_Clear(t *testing.T) {
	t.Parallel()

	c := New()
	c.AddItem("A", "1")
	c.AddItem("B", "2")
	c.Clear()

	require.Equal(t, 0, c.ItemCount())
	require.Zero(t, c.TotalPrice())
}

func TestCart_TotalNeverDrifts(t *testing.T) {
	t.Parallel()

	c := New()
	ops := []func(){
		func() { c.AddItem("A", "10.50") },
		func() { c.AddItem("B", "3") },
		func() { c.AddItem("A", "10.50") },
		func() { c.RemoveItem("B") },
		func() { c.AddItem("C", "0.99") },
		func() { c.AddItem("B", "3") },
		func() { c.RemoveItem("A") },
	}

	for _, op := range ops {
		op()

		// Recompute from scratch and compare against the published total.
		snap := c.Snapshot()
		want := 0.0
		count := 0
		for _, it := range snap.Items {
			want += it.UnitPrice * float64(it.Quantity)
			count += it.Quantity
		}
		require.InDelta(t, want, snap.TotalPrice, 1e-9)
		require.Equal(t, count, c.ItemCount())
	}
}

func TestCart_PublishesOnMutation(t *testing.T) {
	t.Parallel()

	c := New()

	var published []map[string]any
	c.Subscribe(func(state map[string]any) { published = append(published, state) })

	c.AddItem("Lamp", "100")
	c.RemoveItem("Lamp")
	c.Clear()

	require.Len(t, published, 3)
	require.InDelta(t, 100.0, published[0]["totalPrice"].(float64), 1e-9)
	require.Zero(t, published[1]["totalPrice"].(float64))

	items, ok := published[0]["items"].([]LineItem)
	require.True(t, ok)
	require.Len(t, items, 1)
}

func TestCart_SnapshotIsACopy(t *testing.T) {
	t.Parallel()

	c := New()
	c.AddItem("Lamp", "100")

	snap := c.Snapshot()
	snap.Items[0].Quantity = 99

	require.Equal(t, 1, c.Snapshot().Items[0].Quantity)
}
