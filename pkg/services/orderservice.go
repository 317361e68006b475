package services

import (
	"context"
	"fmt"
	"time"

	"torget-app-io/api/pkg/models"
	"torget-app-io/api/pkg/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	zlog "github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderService persists completed checkouts to the Order collection.
type OrderService struct {
	orderCollection *mongo.Collection
}

func NewOrderService(orderCollection *mongo.Collection) *OrderService {
	return &OrderService{orderCollection: orderCollection}
}

func generateOrderNumber() string {
	return fmt.Sprintf("TOR-%s", uuid.NewString()[:8])
}

// PlaceOrder assigns identity and timestamps, then inserts the order.
func (os *OrderService) PlaceOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	if len(order.Items) == 0 {
		return nil, ErrEmptyCart
	}

	now := time.Now()
	order.Id = primitive.NewObjectID()
	order.OrderNumber = generateOrderNumber()
	order.Status = models.OrderStatusPending
	order.CreatedAt = now
	order.ModifiedAt = now

	if _, err := os.orderCollection.InsertOne(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to place order")
	}

	zlog.Info().
		Str("order_number", order.OrderNumber).
		Str("owner_id", order.OwnerId).
		Float64("total", order.Pricing.TotalAmount).
		Msg("order placed")

	return &order, nil
}

// GetOrder fetches one order scoped to its owner.
func (os *OrderService) GetOrder(ctx context.Context, ownerID string, orderID primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	filter := bson.M{"_id": orderID, "owner_id": ownerID}
	if err := os.orderCollection.FindOne(ctx, filter).Decode(&order); err != nil {
		return nil, fmt.Errorf("order not found")
	}
	return &order, nil
}

// GetOrders lists the owner's orders, newest first by default.
func (os *OrderService) GetOrders(ctx context.Context, ownerID string, pagination util.PaginationArgs) ([]models.Order, int64, error) {
	filter := bson.M{"owner_id": ownerID}
	findOptions := options.Find().
		SetLimit(int64(pagination.Limit)).
		SetSkip(int64(pagination.Skip)).
		SetSort(util.GetSortBson(pagination.Sort))

	cursor, err := os.orderCollection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, err
	}

	count, err := os.orderCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return orders, count, nil
}
