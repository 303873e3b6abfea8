package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusValid(t *testing.T) {
	for _, status := range OrderStatuses {
		assert.True(t, status.Valid(), string(status))
	}
	assert.False(t, OrderStatus("SHIPPED").Valid())
	assert.False(t, OrderStatus("pending").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestNewOrderNumber(t *testing.T) {
	ts := time.UnixMilli(1735689600123)
	assert.Equal(t, "ORD-1735689600123", NewOrderNumber(ts))
}

func TestUserIsAdmin(t *testing.T) {
	assert.True(t, User{Role: RoleAdmin}.IsAdmin())
	assert.False(t, User{Role: RoleUser}.IsAdmin())
}
