package testutil

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/foodiego/models"
	"github.com/yeremiapane/foodiego/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Password is the plain-text password of every fixture user.
const Password = "secret123"

func CreateUser(t testing.TB, db *gorm.DB, role, email string) models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{Name: "Test " + role, Email: email, Password: string(hashed), Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func CreateCategory(t testing.TB, db *gorm.DB, name string) models.Category {
	t.Helper()
	category := models.Category{Name: name}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func CreateMenuItem(t testing.TB, db *gorm.DB, categoryID uint, name string, price float64) models.MenuItem {
	t.Helper()
	item := models.MenuItem{Name: name, Price: price, CategoryID: categoryID, Available: true}
	require.NoError(t, db.Create(&item).Error)
	return item
}

// CreateOrder stores a PENDING order with one line of the given item.
func CreateOrder(t testing.TB, db *gorm.DB, userID uint, item models.MenuItem, quantity int) models.Order {
	t.Helper()
	order := models.Order{
		OrderNumber:     "ORD-TEST",
		UserID:          userID,
		CustomerName:    "Test Customer",
		CustomerPhone:   "0812345678",
		CustomerAddress: "1 Test Street",
		Status:          models.OrderStatusPending,
		TotalAmount:     item.Price * float64(quantity),
		OrderItems: []models.OrderItem{
			{MenuItemID: item.ID, Quantity: quantity, Price: item.Price},
		},
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

// SessionContext returns a context signed in as user.
func SessionContext(user models.User) context.Context {
	return services.WithSession(context.Background(), &services.Session{
		UserID: user.ID,
		Role:   user.Role,
		Email:  user.Email,
	})
}

// Event is one call recorded by RecordingPublisher.
type Event struct {
	Key     string
	Payload any
}

// RecordingPublisher keeps every published event.
type RecordingPublisher struct {
	mu     sync.Mutex
	Events []Event
	Err    error
}

func (p *RecordingPublisher) Publish(_ context.Context, key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, Event{Key: key, Payload: v})
	return p.Err
}

func (p *RecordingPublisher) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]string, 0, len(p.Events))
	for _, e := range p.Events {
		keys = append(keys, e.Key)
	}
	return keys
}

// RecordingRevalidator keeps every revalidated path in call order.
type RecordingRevalidator struct {
	mu    sync.Mutex
	Paths []string
}

func (r *RecordingRevalidator) Revalidate(paths ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Paths = append(r.Paths, paths...)
}

func (r *RecordingRevalidator) Revalidated() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.Paths...)
}
