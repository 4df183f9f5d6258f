package order_test

import (
	"testing"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2025, 5, 10, 19, 30, 0, 0, time.UTC)

func mustItem(t *testing.T, ref string, qty int, price string) order.Item {
	t.Helper()
	item, err := order.NewItem(ref, qty, decimal.RequireFromString(price))
	require.NoError(t, err)
	return item
}

func mustInfo(t *testing.T, address string) order.DeliveryInfo {
	t.Helper()
	info, err := order.NewDeliveryInfo("Ana Souza", "+55 11 99999-0000", address, "apt 12", "20:00")
	require.NoError(t, err)
	return info
}

// twoItems totals 53.40.
func twoItems(t *testing.T) []order.Item {
	t.Helper()
	return []order.Item{
		mustItem(t, "burger", 2, "18.90"),
		mustItem(t, "fries", 1, "15.60"),
	}
}

func newOrder(t *testing.T, deliveryType order.DeliveryType) *order.Order {
	t.Helper()
	address := ""
	if deliveryType == order.Delivery {
		address = "Rua A, 100"
	}
	o, err := order.NewOrder(kernel.NewUUID(), "user-1", deliveryType, mustInfo(t, address), "card", twoItems(t), createdAt)
	require.NoError(t, err)
	return o
}
