package repository

import (
	"context"
	"sync"
	"testing"

	"storefront-order-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newOrder(user primitive.ObjectID, status model.OrderStatus) *model.Order {
	return &model.Order{
		User:          user,
		Items:         []model.OrderItem{{Product: "p1", Name: "Phone", Price: 1000, Quantity: 2}},
		TotalAmount:   2000,
		PaymentMethod: model.PaymentCOD,
		PaymentStatus: model.PaymentPending,
		OrderStatus:   status,
	}
}

func TestMemoryCreateAndFind(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryOrderRepository()

	o := newOrder(primitive.NewObjectID(), model.OrderPending)
	require.NoError(t, r.Create(ctx, o))
	assert.False(t, o.ID.IsZero())
	assert.False(t, o.CreatedAt.IsZero())
	assert.Equal(t, o.CreatedAt, o.UpdatedAt)

	got, err := r.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.Items, got.Items)

	// la copia devuelta no comparte memoria con el store
	got.Items[0].Name = "changed"
	again, _ := r.FindByID(ctx, o.ID)
	assert.Equal(t, "Phone", again.Items[0].Name)

	_, err = r.FindByID(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryListingOrderAndPaging(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryOrderRepository()
	user := primitive.NewObjectID()

	var ids []primitive.ObjectID
	for i := 0; i < 3; i++ {
		o := newOrder(user, model.OrderPending)
		require.NoError(t, r.Create(ctx, o))
		ids = append(ids, o.ID)
	}
	other := newOrder(primitive.NewObjectID(), model.OrderShipped)
	require.NoError(t, r.Create(ctx, other))

	mine, err := r.FindByUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, ids[2], mine[0].ID)
	assert.Equal(t, ids[0], mine[2].ID)

	all, err := r.FindAll(ctx, Filter{}, Page{})
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, other.ID, all[0].ID)

	page, err := r.FindAll(ctx, Filter{}, Page{Limit: 2, Skip: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[2], page[0].ID)

	beyond, err := r.FindAll(ctx, Filter{}, Page{Skip: 10})
	require.NoError(t, err)
	assert.Empty(t, beyond)

	shipped, err := r.FindAll(ctx, Filter{OrderStatus: model.OrderShipped}, Page{})
	require.NoError(t, err)
	require.Len(t, shipped, 1)
	assert.Equal(t, other.ID, shipped[0].ID)
}

func TestMemoryUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryOrderRepository()
	o := newOrder(primitive.NewObjectID(), model.OrderPending)
	require.NoError(t, r.Create(ctx, o))

	paid := model.PaymentPaid
	updated, err := r.UpdateFields(ctx, o.ID, model.OrderPatch{PaymentStatus: &paid})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPaid, updated.PaymentStatus)
	assert.Equal(t, model.OrderPending, updated.OrderStatus)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	shipped := model.OrderShipped
	require.NoError(t, r.SetFields(ctx, o.ID, model.OrderPatch{OrderStatus: &shipped}))
	got, _ := r.FindByID(ctx, o.ID)
	assert.Equal(t, model.OrderShipped, got.OrderStatus)
	assert.Equal(t, model.PaymentPaid, got.PaymentStatus)

	assert.ErrorIs(t, r.SetFields(ctx, primitive.NewObjectID(), model.OrderPatch{OrderStatus: &shipped}), ErrNotFound)

	require.NoError(t, r.Delete(ctx, o.ID))
	assert.ErrorIs(t, r.Delete(ctx, o.ID), ErrNotFound)
	_, err = r.FindByID(ctx, o.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryConcurrentListAndSet(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryOrderRepository()
	var ids []primitive.ObjectID
	for i := 0; i < 5; i++ {
		o := newOrder(primitive.NewObjectID(), model.OrderPending)
		require.NoError(t, r.Create(ctx, o))
		ids = append(ids, o.ID)
	}

	shipped := model.OrderShipped
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(2)
		go func(id primitive.ObjectID) {
			defer wg.Done()
			assert.NoError(t, r.SetFields(ctx, id, model.OrderPatch{OrderStatus: &shipped}))
		}(ids[i%len(ids)])
		go func() {
			defer wg.Done()
			all, err := r.FindAll(ctx, Filter{}, Page{})
			assert.NoError(t, err)
			assert.Len(t, all, len(ids))
		}()
	}
	wg.Wait()

	all, err := r.FindAll(ctx, Filter{OrderStatus: model.OrderShipped}, Page{})
	require.NoError(t, err)
	assert.Len(t, all, len(ids))
}
