package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-order-service/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ordersCollection = "orders"

var (
	ErrNotFound = errors.New("orden no encontrada")
	ErrStorage  = errors.New("error de almacenamiento")
)

// Page limita los listados. Limit == 0 significa sin límite.
type Page struct {
	Limit int64
	Skip  int64
}

// Filter para FindAll. Campos vacíos no filtran.
type Filter struct {
	OrderStatus model.OrderStatus
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}

// Mongo implementation
type MongoOrderRepository struct {
	col *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{col: db.Collection(ordersCollection)}
}

func (m *MongoOrderRepository) Create(ctx context.Context, o *model.Order) error {
	now := time.Now().UTC()
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	o.CreatedAt = now
	o.UpdatedAt = now

	if _, err := m.col.InsertOne(ctx, o); err != nil {
		return storageErr("insert order", err)
	}
	return nil
}

func (m *MongoOrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Order, error) {
	var res model.Order
	err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&res)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("find order", err)
	}
	return &res, nil
}

func (m *MongoOrderRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.Order, error) {
	return m.find(ctx, bson.M{"user": userID}, Page{})
}

func (m *MongoOrderRepository) FindAll(ctx context.Context, f Filter, p Page) ([]*model.Order, error) {
	q := bson.M{}
	if f.OrderStatus != "" {
		q["orderStatus"] = f.OrderStatus
	}
	return m.find(ctx, q, p)
}

// find ordena siempre por createdAt descendente.
func (m *MongoOrderRepository) find(ctx context.Context, q bson.M, p Page) ([]*model.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if p.Limit > 0 {
		opts.SetLimit(p.Limit)
	}
	if p.Skip > 0 {
		opts.SetSkip(p.Skip)
	}

	cur, err := m.col.Find(ctx, q, opts)
	if err != nil {
		return nil, storageErr("find orders", err)
	}
	defer cur.Close(ctx)

	out := []*model.Order{}
	for cur.Next(ctx) {
		var v model.Order
		if err := cur.Decode(&v); err != nil {
			return nil, storageErr("decode order", err)
		}
		out = append(out, &v)
	}
	if err := cur.Err(); err != nil {
		return nil, storageErr("iterate orders", err)
	}
	return out, nil
}

// patchSet traduce el patch a un $set; updatedAt se renueva siempre.
func patchSet(p model.OrderPatch) bson.M {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if p.Items != nil {
		set["items"] = *p.Items
	}
	if p.TotalAmount != nil {
		set["totalAmount"] = *p.TotalAmount
	}
	if p.ShippingAddress != nil {
		set["shippingAddress"] = *p.ShippingAddress
	}
	if p.PaymentMethod != nil {
		set["paymentMethod"] = *p.PaymentMethod
	}
	if p.PaymentStatus != nil {
		set["paymentStatus"] = *p.PaymentStatus
	}
	if p.OrderStatus != nil {
		set["orderStatus"] = *p.OrderStatus
	}
	if p.Note != nil {
		set["note"] = *p.Note
	}
	return set
}

// UpdateFields aplica el patch en una sola escritura y devuelve el documento
// ya actualizado.
func (m *MongoOrderRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, p model.OrderPatch) (*model.Order, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var res model.Order
	err := m.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": patchSet(p)}, opts).Decode(&res)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("update order", err)
	}
	return &res, nil
}

// SetFields actualiza campos puntuales (estados) sin leer el documento.
func (m *MongoOrderRepository) SetFields(ctx context.Context, id primitive.ObjectID, p model.OrderPatch) error {
	r, err := m.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": patchSet(p)})
	if err != nil {
		return storageErr("update order status", err)
	}
	if r.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoOrderRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storageErr("delete order", err)
	}
	if r.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureIndexes crea los índices usados por los listados.
func (m *MongoOrderRepository) EnsureIndexes(ctx context.Context) error {
	_, err := m.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "orderStatus", Value: 1}}},
	})
	if err != nil {
		return storageErr("create indexes", err)
	}
	return nil
}
