package cart

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"storefront-order-service/internal/dto"
	"storefront-order-service/internal/model"
	"storefront-order-service/internal/repository"
	"storefront-order-service/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type failingCreator struct{ calls int }

func (f *failingCreator) CreateOrder(context.Context, dto.CreateOrderRequest) (*model.Order, error) {
	f.calls++
	return nil, errors.New("database unavailable")
}

// deleteFailStore falla solo al borrar.
type deleteFailStore struct{ *MemoryStore }

func (deleteFailStore) Delete(context.Context, string) error { return errors.New("redis down") }

func checkoutForm() dto.CheckoutRequest {
	return dto.CheckoutRequest{
		ShippingAddress: dto.ShippingAddressDTO{
			FullName: "A B", Address: "1 Main St", City: "Hanoi", PostalCode: "100000", Phone: "0123456789",
		},
		PaymentMethod: "banking",
	}
}

func fillCart(t *testing.T, svc *Service, user string) (string, string) {
	t.Helper()
	p1, p2 := primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex()
	_, err := svc.AddItem(context.Background(), user, Item{ProductID: p1, Name: "Phone", Price: 1000, Quantity: 2})
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), user, Item{ProductID: p2, Name: "Case", Price: 15.5, Quantity: 1})
	require.NoError(t, err)
	return p1, p2
}

func TestService_Mutations(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore(), &failingCreator{})
	user := primitive.NewObjectID().Hex()

	c, err := svc.Get(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	p1, p2 := fillCart(t, svc, user)

	c, err = svc.SetQuantity(ctx, user, p1, 3)
	require.NoError(t, err)
	assert.Equal(t, 3015.5, c.Total())

	c, err = svc.RemoveItem(ctx, user, p2)
	require.NoError(t, err)
	assert.Len(t, c.Items, 1)

	_, err = svc.RemoveItem(ctx, user, p2)
	assert.ErrorIs(t, err, ErrItemNotFound)

	require.NoError(t, svc.Clear(ctx, user))
	c, err = svc.Get(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestService_CheckoutCreatesOrderAndClearsCart(t *testing.T) {
	ctx := context.Background()
	orders := service.NewOrderService(repository.NewMemoryOrderRepository(), nil, service.Options{})
	svc := NewService(NewMemoryStore(), orders)
	user := primitive.NewObjectID().Hex()
	p1, _ := fillCart(t, svc, user)

	o, err := svc.Checkout(ctx, user, checkoutForm())
	require.NoError(t, err)
	assert.Equal(t, user, o.User.Hex())
	assert.Equal(t, 2015.5, o.TotalAmount)
	require.Len(t, o.Items, 2)
	assert.Equal(t, p1, o.Items[0].Product)
	assert.Equal(t, model.OrderPending, o.OrderStatus)
	assert.Equal(t, model.PaymentPending, o.PaymentStatus)
	assert.Equal(t, model.PaymentBanking, o.PaymentMethod)

	c, err := svc.Get(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	mine, err := orders.GetByUser(ctx, user)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestService_CheckoutEmptyCart(t *testing.T) {
	creator := &failingCreator{}
	svc := NewService(NewMemoryStore(), creator)

	_, err := svc.Checkout(context.Background(), primitive.NewObjectID().Hex(), checkoutForm())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, creator.calls)
}

func TestService_CheckoutFailureKeepsCart(t *testing.T) {
	ctx := context.Background()
	creator := &failingCreator{}
	svc := NewService(NewMemoryStore(), creator)
	user := primitive.NewObjectID().Hex()
	fillCart(t, svc, user)

	_, err := svc.Checkout(ctx, user, checkoutForm())
	require.Error(t, err)
	assert.Equal(t, 1, creator.calls)

	c, err := svc.Get(ctx, user)
	require.NoError(t, err)
	assert.Len(t, c.Items, 2)
}

func TestService_CheckoutValidationKeepsCart(t *testing.T) {
	ctx := context.Background()
	orders := service.NewOrderService(repository.NewMemoryOrderRepository(), nil, service.Options{})
	svc := NewService(NewMemoryStore(), orders)
	user := primitive.NewObjectID().Hex()
	fillCart(t, svc, user)

	_, err := svc.Checkout(ctx, user, dto.CheckoutRequest{PaymentMethod: "cod"})
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "shippingAddress", verr.Field)

	c, _ := svc.Get(ctx, user)
	assert.Len(t, c.Items, 2)
}

func TestService_CheckoutIgnoresClearFailure(t *testing.T) {
	ctx := context.Background()
	orders := service.NewOrderService(repository.NewMemoryOrderRepository(), nil, service.Options{})
	svc := NewService(deleteFailStore{NewMemoryStore()}, orders)
	user := primitive.NewObjectID().Hex()
	fillCart(t, svc, user)

	o, err := svc.Checkout(ctx, user, checkoutForm())
	require.NoError(t, err)
	assert.False(t, o.ID.IsZero())
}

func TestRedisStore_Unreachable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()
	store := NewRedisStore(rdb, time.Hour)

	_, err := store.Get(context.Background(), "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cart get")
	assert.Error(t, store.Save(context.Background(), &Cart{UserID: "u1"}))
}

// TEST_REDIS_ADDR apunta a un redis real; sin él se omite.
func TestRedisStore_RoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()
	store := NewRedisStore(rdb, time.Minute)
	user := "test-" + primitive.NewObjectID().Hex()
	defer store.Delete(ctx, user)

	c, err := store.Get(ctx, user)
	require.NoError(t, err)
	require.NoError(t, c.Add(Item{ProductID: "p1", Name: "Phone", Price: 1000, Quantity: 2}))
	require.NoError(t, store.Save(ctx, c))

	got, err := store.Get(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, c.Items, got.Items)

	ttl, err := rdb.TTL(ctx, key(user)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.Delete(ctx, user))
	got, err = store.Get(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}
