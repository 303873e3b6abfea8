package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yeremiapane/foodiego/events"
	"github.com/yeremiapane/foodiego/models"
	"github.com/yeremiapane/foodiego/telemetry"
	"github.com/yeremiapane/foodiego/utils"
	"gorm.io/gorm"
)

type OrderItemInput struct {
	MenuItemID uint    `json:"menu_item_id" validate:"required"`
	Quantity   int     `json:"quantity" validate:"gt=0,lte=1000"`
	Price      float64 `json:"price" validate:"gt=0,lte=99999999.99"`
}

type OrderInput struct {
	CustomerName    string           `json:"customer_name" validate:"required,min=2"`
	CustomerPhone   string           `json:"customer_phone" validate:"required,min=10"`
	CustomerAddress string           `json:"customer_address" validate:"required,min=5"`
	Notes           *string          `json:"notes"`
	Items           []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// OrderStats summarises the store for the admin dashboard.
type OrderStats struct {
	TotalOrders   int64   `json:"total_orders"`
	PendingOrders int64   `json:"pending_orders"`
	TotalRevenue  float64 `json:"total_revenue"`
	TotalUsers    int64   `json:"total_users"`
}

// StatusUpdate is the payload published when an order changes status.
type StatusUpdate struct {
	OrderID     uint               `json:"order_id"`
	OrderNumber string             `json:"order_number"`
	Status      models.OrderStatus `json:"status"`
}

// OrderTotal sums price × quantity over the items, computed in cents. A line
// or a running total above utils.MaxAmount fails with ErrInvalidFields.
func OrderTotal(items []OrderItemInput) (float64, error) {
	maxCents := utils.ToCents(utils.MaxAmount)
	var cents int64
	for _, item := range items {
		if item.Price > utils.MaxAmount || item.Quantity <= 0 {
			return 0, ErrInvalidFields
		}
		price := utils.ToCents(item.Price)
		if price <= 0 || int64(item.Quantity) > maxCents/price {
			return 0, ErrInvalidFields
		}
		cents += price * int64(item.Quantity)
		if cents > maxCents {
			return 0, ErrInvalidFields
		}
	}
	return utils.FromCents(cents), nil
}

type OrderService struct {
	db          *gorm.DB
	revalidator Revalidator
	publisher   events.Publisher
	now         func() time.Time
}

func NewOrderService(db *gorm.DB, revalidator Revalidator, publisher events.Publisher) *OrderService {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &OrderService{
		db:          db,
		revalidator: orNoopRevalidator(revalidator),
		publisher:   publisher,
		now:         time.Now,
	}
}

// CreateOrder stores an order for the signed-in caller. The item prices
// supplied by the client are stored as the price snapshot.
func (s *OrderService) CreateOrder(ctx context.Context, input OrderInput) ActionResult {
	session, err := requireSession(ctx)
	if err != nil {
		return failed(err, "")
	}
	if err := validateInput(input); err != nil {
		return failed(ErrInvalidFields, "")
	}
	total, err := OrderTotal(input.Items)
	if err != nil {
		return failed(err, "")
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, models.OrderItem{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
			Price:      item.Price,
		})
	}

	order := models.Order{
		OrderNumber:     models.NewOrderNumber(s.now()),
		UserID:          session.UserID,
		CustomerName:    input.CustomerName,
		CustomerPhone:   input.CustomerPhone,
		CustomerAddress: input.CustomerAddress,
		Notes:           input.Notes,
		Status:          models.OrderStatusPending,
		TotalAmount:     total,
		OrderItems:      items,
	}

	db := s.db.WithContext(ctx)
	if err := db.Create(&order).Error; err != nil {
		logActionError("create order", err)
		return failed(ErrSomethingWentWrong, "")
	}

	var created models.Order
	if err := db.Preload("OrderItems.MenuItem").First(&created, order.ID).Error; err != nil {
		logActionError("create order", err)
		created = order
	}

	if err := s.publisher.Publish(ctx, events.OrderCreated, created); err != nil {
		logActionError("publish order created", err)
	}
	telemetry.OrdersCreatedTotal.Inc()
	utils.InfoLogger.Printf("Order %s created for user %d", created.OrderNumber, session.UserID)

	s.revalidator.Revalidate(PathOrders)
	result := succeeded("Order created successfully")
	result.Order = &created
	return result
}

// GetOrders returns the caller's own orders, newest first. Without a
// session the list is empty.
func (s *OrderService) GetOrders(ctx context.Context) []models.Order {
	session, ok := SessionFromContext(ctx)
	if !ok {
		return []models.Order{}
	}

	var orders []models.Order
	if err := s.db.WithContext(ctx).
		Preload("OrderItems.MenuItem").
		Where("user_id = ?", session.UserID).
		Order("created_at desc").
		Order("id desc").
		Find(&orders).Error; err != nil {
		logActionError("get orders", err)
		return []models.Order{}
	}
	return orders
}

// GetAllOrders returns every order with its user and items.
func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	var orders []models.Order
	if err := s.db.WithContext(ctx).
		Preload("User").
		Preload("OrderItems.MenuItem").
		Order("created_at desc").
		Order("id desc").
		Find(&orders).Error; err != nil {
		logActionError("get all orders", err)
		return []models.Order{}, nil
	}
	return orders, nil
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) ActionResult {
	if _, err := requireAdmin(ctx); err != nil {
		return failed(err, "")
	}
	if !status.Valid() {
		return failed(ErrInvalidFields, "")
	}

	db := s.db.WithContext(ctx)
	var order models.Order
	if err := db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return failed(ErrNotFound, "Order not found")
		}
		logActionError("update order status", err)
		return failed(ErrSomethingWentWrong, "")
	}

	if err := db.Model(&order).Update("status", status).Error; err != nil {
		logActionError("update order status", err)
		return failed(ErrSomethingWentWrong, "")
	}

	update := StatusUpdate{OrderID: order.ID, OrderNumber: order.OrderNumber, Status: status}
	if err := s.publisher.Publish(ctx, events.OrderStatusUpdated, update); err != nil {
		logActionError("publish order status", err)
	}

	s.revalidator.Revalidate(PathAdminOrders)
	return succeeded("Order status updated successfully")
}

// GetOrderStats counts orders, pending orders, users and summed revenue.
func (s *OrderService) GetOrderStats(ctx context.Context) (*OrderStats, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	var stats OrderStats
	if err := db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	if err := db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPending).
		Count(&stats.PendingOrders).Error; err != nil {
		return nil, fmt.Errorf("count pending orders: %w", err)
	}
	if err := db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}
	if err := db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	stats.TotalRevenue = utils.FromCents(utils.ToCents(stats.TotalRevenue))
	return &stats, nil
}

// GetOrderForReceipt loads an order with its items. Only the owner or an
// admin may read it.
func (s *OrderService) GetOrderForReceipt(ctx context.Context, id uint) (*models.Order, error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := s.db.WithContext(ctx).
		Preload("User").
		Preload("OrderItems.MenuItem").
		First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load order %d: %w", id, err)
	}
	if order.UserID != session.UserID && !session.IsAdmin() {
		return nil, ErrForbidden
	}
	return &order, nil
}
