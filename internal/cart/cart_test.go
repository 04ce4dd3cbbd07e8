package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAdd_MergesSameProduct(t *testing.T) {
	c := &Cart{UserID: "u1"}
	require.NoError(t, c.Add(Item{ProductID: "p1", Name: "Phone", Price: 1000, Quantity: 1}))
	require.NoError(t, c.Add(Item{ProductID: "p2", Name: "Case", Price: 15.5, Quantity: 2}))
	require.NoError(t, c.Add(Item{ProductID: "p1", Name: "Phone", Price: 1000, Quantity: 1}))

	require.Len(t, c.Items, 2)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, 2031.0, c.Total())
}

func TestCartAdd_RejectsInvalid(t *testing.T) {
	c := &Cart{}
	assert.ErrorIs(t, c.Add(Item{Name: "x", Quantity: 1}), ErrInvalidItem)
	assert.ErrorIs(t, c.Add(Item{ProductID: "  ", Name: "x", Quantity: 1}), ErrInvalidItem)
	assert.ErrorIs(t, c.Add(Item{ProductID: "p1", Quantity: 0}), ErrInvalidItem)
	assert.ErrorIs(t, c.Add(Item{ProductID: "p1", Quantity: 1, Price: -1}), ErrInvalidItem)
	assert.Empty(t, c.Items)
}

func TestCartAdd_AcceptsAnyProductReference(t *testing.T) {
	c := &Cart{}
	require.NoError(t, c.Add(Item{ProductID: "sku-1", Name: "Phone", Price: 1000, Quantity: 1}))
	require.NoError(t, c.Add(Item{ProductID: "64b7f0c2a1b2c3d4e5f60718", Name: "Case", Price: 20, Quantity: 1}))
	assert.Len(t, c.Items, 2)
}

func TestCartSetQuantity(t *testing.T) {
	c := &Cart{}
	require.NoError(t, c.Add(Item{ProductID: "p1", Price: 10, Quantity: 1}))
	require.NoError(t, c.Add(Item{ProductID: "p2", Price: 5, Quantity: 1}))

	require.NoError(t, c.SetQuantity("p1", 4))
	assert.Equal(t, 45.0, c.Total())

	require.NoError(t, c.SetQuantity("p1", 0))
	require.Len(t, c.Items, 1)
	assert.Equal(t, "p2", c.Items[0].ProductID)

	require.NoError(t, c.SetQuantity("p2", -3))
	assert.Empty(t, c.Items)

	assert.ErrorIs(t, c.SetQuantity("p9", 1), ErrItemNotFound)
	assert.ErrorIs(t, c.Remove("p9"), ErrItemNotFound)
}

func TestCartSnapshotIsIndependent(t *testing.T) {
	c := &Cart{}
	require.NoError(t, c.Add(Item{ProductID: "p1", Price: 10, Quantity: 1}))

	snap := c.Snapshot()
	require.NoError(t, c.SetQuantity("p1", 7))
	c.Clear()

	require.Len(t, snap, 1)
	assert.Equal(t, 1, snap[0].Quantity)
	assert.Empty(t, c.Items)
	assert.Equal(t, 0.0, c.Total())
}
