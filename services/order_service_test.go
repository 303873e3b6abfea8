package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/foodiego/events"
	"github.com/yeremiapane/foodiego/models"
	"github.com/yeremiapane/foodiego/services"
	"github.com/yeremiapane/foodiego/testutil"
	"gorm.io/gorm"
)

type orderFixture struct {
	db          *gorm.DB
	service     *services.OrderService
	publisher   *testutil.RecordingPublisher
	revalidator *testutil.RecordingRevalidator
	admin       models.User
	customer    models.User
	burger      models.MenuItem
	lemonade    models.MenuItem
}

func newOrderFixture(t *testing.T) *orderFixture {
	db := testutil.NewDB(t)
	f := &orderFixture{
		db:          db,
		publisher:   &testutil.RecordingPublisher{},
		revalidator: &testutil.RecordingRevalidator{},
		admin:       testutil.CreateUser(t, db, models.RoleAdmin, "admin@example.com"),
		customer:    testutil.CreateUser(t, db, models.RoleUser, "user@example.com"),
	}
	f.service = services.NewOrderService(db, f.revalidator, f.publisher)

	burgers := testutil.CreateCategory(t, db, "Burgers")
	drinks := testutil.CreateCategory(t, db, "Drinks")
	f.burger = testutil.CreateMenuItem(t, db, burgers.ID, "Classic Burger", 8.99)
	f.lemonade = testutil.CreateMenuItem(t, db, drinks.ID, "Fresh Lemonade", 3.99)
	return f
}

func (f *orderFixture) input() services.OrderInput {
	return services.OrderInput{
		CustomerName:    "Jane Doe",
		CustomerPhone:   "0812345678",
		CustomerAddress: "12 Baker Street",
		Items: []services.OrderItemInput{
			{MenuItemID: f.burger.ID, Quantity: 2, Price: 8.99},
			{MenuItemID: f.lemonade.ID, Quantity: 1, Price: 3.99},
		},
	}
}

func TestOrderTotal(t *testing.T) {
	total, err := services.OrderTotal([]services.OrderItemInput{
		{MenuItemID: 1, Quantity: 2, Price: 8.99},
		{MenuItemID: 2, Quantity: 1, Price: 3.99},
	})
	require.NoError(t, err)
	assert.Equal(t, 21.97, total)

	total, err = services.OrderTotal([]services.OrderItemInput{
		{MenuItemID: 1, Quantity: 1, Price: 0.1},
		{MenuItemID: 2, Quantity: 1, Price: 0.2},
	})
	require.NoError(t, err)
	assert.Equal(t, 0.3, total)

	total, err = services.OrderTotal([]services.OrderItemInput{
		{MenuItemID: 1, Quantity: 1, Price: 99999999.99},
	})
	require.NoError(t, err)
	assert.Equal(t, 99999999.99, total)
}

func TestOrderTotalOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		items []services.OrderItemInput
	}{
		{"huge price", []services.OrderItemInput{{MenuItemID: 1, Quantity: 1, Price: 1e17}}},
		{"huge quantity", []services.OrderItemInput{{MenuItemID: 1, Quantity: 1 << 40, Price: 99999.99}}},
		{"line above column", []services.OrderItemInput{{MenuItemID: 1, Quantity: 2, Price: 60000000}}},
		{"sum above column", []services.OrderItemInput{
			{MenuItemID: 1, Quantity: 1, Price: 60000000},
			{MenuItemID: 2, Quantity: 1, Price: 60000000},
		}},
		{"price rounds to zero", []services.OrderItemInput{{MenuItemID: 1, Quantity: 1, Price: 0.001}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, err := services.OrderTotal(tt.items)
			assert.ErrorIs(t, err, services.ErrInvalidFields)
			assert.Zero(t, total)
		})
	}
}

func TestCreateOrder(t *testing.T) {
	f := newOrderFixture(t)

	result := f.service.CreateOrder(testutil.SessionContext(f.customer), f.input())
	require.True(t, result.OK(), result.Error)
	assert.Equal(t, "Order created successfully", result.Success)

	require.NotNil(t, result.Order)
	order := result.Order
	assert.Equal(t, 21.97, order.TotalAmount)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, f.customer.ID, order.UserID)
	assert.Regexp(t, `^ORD-\d+$`, order.OrderNumber)
	require.Len(t, order.OrderItems, 2)
	require.NotNil(t, order.OrderItems[0].MenuItem)
	assert.Equal(t, "Classic Burger", order.OrderItems[0].MenuItem.Name)
	assert.Equal(t, 2, order.OrderItems[0].Quantity)

	var stored models.Order
	require.NoError(t, f.db.Preload("OrderItems").First(&stored, order.ID).Error)
	assert.Len(t, stored.OrderItems, 2)
	assert.InDelta(t, 21.97, stored.TotalAmount, 0.001)

	assert.Equal(t, []string{events.OrderCreated}, f.publisher.Keys())
	assert.Equal(t, []string{services.PathOrders}, f.revalidator.Revalidated())
}

func TestCreateOrderRequiresSession(t *testing.T) {
	f := newOrderFixture(t)

	result := f.service.CreateOrder(context.Background(), f.input())
	assert.Equal(t, "Unauthorized", result.Error)

	var count int64
	f.db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)
	assert.Empty(t, f.publisher.Keys())
}

func TestCreateOrderValidation(t *testing.T) {
	f := newOrderFixture(t)
	ctx := testutil.SessionContext(f.customer)

	tests := []struct {
		name   string
		mutate func(*services.OrderInput)
	}{
		{"no items", func(in *services.OrderInput) { in.Items = nil }},
		{"short phone", func(in *services.OrderInput) { in.CustomerPhone = "12345" }},
		{"short address", func(in *services.OrderInput) { in.CustomerAddress = "abc" }},
		{"short name", func(in *services.OrderInput) { in.CustomerName = "J" }},
		{"zero quantity", func(in *services.OrderInput) { in.Items[0].Quantity = 0 }},
		{"zero price", func(in *services.OrderInput) { in.Items[1].Price = 0 }},
		{"huge price", func(in *services.OrderInput) { in.Items[0].Price = 1e17 }},
		{"huge quantity", func(in *services.OrderInput) { in.Items[0].Quantity = 1 << 40 }},
		{"total above column", func(in *services.OrderInput) {
			in.Items[0].Price = 99999999.99
			in.Items[1].Price = 99999999.99
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := f.input()
			tt.mutate(&input)
			assert.Equal(t, "Invalid fields", f.service.CreateOrder(ctx, input).Error)
		})
	}

	var count int64
	f.db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateOrderPublishFailureIsNotFatal(t *testing.T) {
	f := newOrderFixture(t)
	f.publisher.Err = errors.New("broker down")

	result := f.service.CreateOrder(testutil.SessionContext(f.customer), f.input())
	assert.True(t, result.OK(), result.Error)
}

func TestGetOrdersOnlyReturnsOwnOrders(t *testing.T) {
	f := newOrderFixture(t)
	other := testutil.CreateUser(t, f.db, models.RoleUser, "other@example.com")

	require.True(t, f.service.CreateOrder(testutil.SessionContext(f.customer), f.input()).OK())
	require.True(t, f.service.CreateOrder(testutil.SessionContext(other), f.input()).OK())
	require.True(t, f.service.CreateOrder(testutil.SessionContext(f.customer), f.input()).OK())

	mine := f.service.GetOrders(testutil.SessionContext(f.customer))
	require.Len(t, mine, 2)
	for _, order := range mine {
		assert.Equal(t, f.customer.ID, order.UserID)
		assert.Len(t, order.OrderItems, 2)
	}
	assert.Greater(t, mine[0].ID, mine[1].ID, "newest first")

	assert.Len(t, f.service.GetOrders(testutil.SessionContext(other)), 1)
	assert.Empty(t, f.service.GetOrders(context.Background()))
}

func TestGetAllOrders(t *testing.T) {
	f := newOrderFixture(t)
	require.True(t, f.service.CreateOrder(testutil.SessionContext(f.customer), f.input()).OK())

	orders, err := f.service.GetAllOrders(testutil.SessionContext(f.admin))
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.NotNil(t, orders[0].User)
	assert.Equal(t, "user@example.com", orders[0].User.Email)

	_, err = f.service.GetAllOrders(testutil.SessionContext(f.customer))
	assert.ErrorIs(t, err, services.ErrForbidden)
}

func TestUpdateOrderStatus(t *testing.T) {
	f := newOrderFixture(t)
	created := f.service.CreateOrder(testutil.SessionContext(f.customer), f.input())
	require.True(t, created.OK())
	id := created.Order.ID
	admin := testutil.SessionContext(f.admin)

	result := f.service.UpdateOrderStatus(admin, id, models.OrderStatusPreparing)
	require.True(t, result.OK(), result.Error)
	assert.Equal(t, "Order status updated successfully", result.Success)

	var stored models.Order
	require.NoError(t, f.db.First(&stored, id).Error)
	assert.Equal(t, models.OrderStatusPreparing, stored.Status)
	assert.Equal(t, []string{events.OrderCreated, events.OrderStatusUpdated}, f.publisher.Keys())
	assert.Equal(t, []string{services.PathOrders, services.PathAdminOrders}, f.revalidator.Revalidated())

	t.Run("rejects unknown status", func(t *testing.T) {
		result := f.service.UpdateOrderStatus(admin, id, models.OrderStatus("EATEN"))
		assert.Equal(t, "Invalid fields", result.Error)
		require.NoError(t, f.db.First(&stored, id).Error)
		assert.Equal(t, models.OrderStatusPreparing, stored.Status)
	})

	t.Run("rejects non-admin", func(t *testing.T) {
		result := f.service.UpdateOrderStatus(testutil.SessionContext(f.customer), id, models.OrderStatusCancelled)
		assert.Equal(t, "Unauthorized", result.Error)
	})

	t.Run("missing order", func(t *testing.T) {
		result := f.service.UpdateOrderStatus(admin, id+100, models.OrderStatusReady)
		assert.Equal(t, "Order not found", result.Error)
	})
}

func TestGetOrderStats(t *testing.T) {
	f := newOrderFixture(t)
	ctx := testutil.SessionContext(f.customer)
	first := f.service.CreateOrder(ctx, f.input())
	require.True(t, f.service.CreateOrder(ctx, f.input()).OK())
	require.True(t, f.service.UpdateOrderStatus(testutil.SessionContext(f.admin), first.Order.ID, models.OrderStatusDelivered).OK())

	stats, err := f.service.GetOrderStats(testutil.SessionContext(f.admin))
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalOrders)
	assert.EqualValues(t, 1, stats.PendingOrders)
	assert.EqualValues(t, 2, stats.TotalUsers)
	assert.Equal(t, 43.94, stats.TotalRevenue)

	_, err = f.service.GetOrderStats(ctx)
	assert.ErrorIs(t, err, services.ErrForbidden)
}

func TestGetOrderForReceipt(t *testing.T) {
	f := newOrderFixture(t)
	created := f.service.CreateOrder(testutil.SessionContext(f.customer), f.input())
	require.True(t, created.OK())
	other := testutil.CreateUser(t, f.db, models.RoleUser, "other@example.com")

	order, err := f.service.GetOrderForReceipt(testutil.SessionContext(f.customer), created.Order.ID)
	require.NoError(t, err)
	assert.Len(t, order.OrderItems, 2)

	_, err = f.service.GetOrderForReceipt(testutil.SessionContext(f.admin), created.Order.ID)
	assert.NoError(t, err)

	_, err = f.service.GetOrderForReceipt(testutil.SessionContext(other), created.Order.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = f.service.GetOrderForReceipt(testutil.SessionContext(f.customer), 999)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
