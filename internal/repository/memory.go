package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"storefront-order-service/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryOrderRepository guarda las órdenes en un map. Se usa en tests y con
// ORDER_STORE=memory para correr sin MongoDB.
type MemoryOrderRepository struct {
	mu  sync.RWMutex
	m   map[primitive.ObjectID]*memoryEntry
	seq int64
}

type memoryEntry struct {
	order model.Order
	seq   int64
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{m: make(map[primitive.ObjectID]*memoryEntry)}
}

func cloneOrder(o model.Order) *model.Order {
	o.Items = append([]model.OrderItem(nil), o.Items...)
	return &o
}

func (r *MemoryOrderRepository) Create(_ context.Context, o *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	o.CreatedAt = now
	o.UpdatedAt = now
	r.seq++
	r.m[o.ID] = &memoryEntry{order: *cloneOrder(*o), seq: r.seq}
	return nil
}

func (r *MemoryOrderRepository) FindByID(_ context.Context, id primitive.ObjectID) (*model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneOrder(e.order), nil
}

func (r *MemoryOrderRepository) FindByUser(_ context.Context, userID primitive.ObjectID) ([]*model.Order, error) {
	return r.list(func(o *model.Order) bool { return o.User == userID }, Page{}), nil
}

func (r *MemoryOrderRepository) FindAll(_ context.Context, f Filter, p Page) ([]*model.Order, error) {
	return r.list(func(o *model.Order) bool {
		return f.OrderStatus == "" || o.OrderStatus == f.OrderStatus
	}, p), nil
}

func (r *MemoryOrderRepository) list(match func(*model.Order) bool, p Page) []*model.Order {
	// se copian bajo el lock; UpdateFields escribe sobre las mismas entradas
	r.mu.RLock()
	entries := make([]memoryEntry, 0, len(r.m))
	for _, e := range r.m {
		if match(&e.order) {
			entries = append(entries, memoryEntry{order: *cloneOrder(e.order), seq: e.seq})
		}
	}
	r.mu.RUnlock()

	// createdAt descendente; seq desempata órdenes creadas en el mismo instante
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.order.CreatedAt.Equal(b.order.CreatedAt) {
			return a.order.CreatedAt.After(b.order.CreatedAt)
		}
		return a.seq > b.seq
	})

	start := min(p.Skip, int64(len(entries)))
	end := int64(len(entries))
	if p.Limit > 0 {
		end = min(start+p.Limit, end)
	}

	out := make([]*model.Order, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, &entries[i].order)
	}
	return out
}

func (r *MemoryOrderRepository) UpdateFields(_ context.Context, id primitive.ObjectID, p model.OrderPatch) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	p.Apply(&e.order)
	e.order.UpdatedAt = time.Now().UTC()
	return cloneOrder(e.order), nil
}

func (r *MemoryOrderRepository) SetFields(ctx context.Context, id primitive.ObjectID, p model.OrderPatch) error {
	_, err := r.UpdateFields(ctx, id, p)
	return err
}

func (r *MemoryOrderRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[id]; !ok {
		return ErrNotFound
	}
	delete(r.m, id)
	return nil
}
