// Package snapshottest holds the behaviour every ports.OrderSnapshotStore must show,
// packaged as a testify suite that adapter tests embed.
package snapshottest

import (
	"context"
	"time"

	"orderflow/internal/adapters/out/snapshot"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// StoreSuite runs the shared store checks. Embedders set NewStore and WriteRaw,
// typically in SetupTest after clearing the medium.
type StoreSuite struct {
	suite.Suite

	// NewStore returns a store over the (cleared) medium.
	NewStore func() ports.OrderSnapshotStore

	// WriteRaw puts arbitrary bytes under the orders key, bypassing the codec.
	WriteRaw func(data []byte)
}

// Orders returns a pending delivery order, a preparing pickup order and a cancelled
// order of two users.
func Orders(s *suite.Suite) []*order.Order {
	base := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

	burger, err := order.NewItem("burger", 2, decimal.RequireFromString("18.90"))
	s.Require().NoError(err)
	fries, err := order.NewItem("fries", 1, decimal.RequireFromString("15.60"))
	s.Require().NoError(err)

	deliveryInfo, err := order.NewDeliveryInfo("Ana", "555-0100", "Rua A, 100", "apt 3", "20:00")
	s.Require().NoError(err)
	pickupInfo, err := order.NewDeliveryInfo("Bruno", "555-0200", "", "", "ASAP")
	s.Require().NoError(err)

	pending, err := order.NewOrder(kernel.NewUUID(), "user-1", order.Delivery, deliveryInfo, "card",
		[]order.Item{burger, fries}, base)
	s.Require().NoError(err)

	preparing, err := order.NewOrder(kernel.NewUUID(), "user-2", order.Pickup, pickupInfo, "cash",
		[]order.Item{fries}, base.Add(time.Minute))
	s.Require().NoError(err)
	s.Require().NoError(preparing.Advance(order.Preparing, order.LocationKitchen))

	cancelled, err := order.NewOrder(kernel.NewUUID(), "user-1", order.Pickup, pickupInfo, "pix",
		[]order.Item{burger}, base.Add(-time.Hour))
	s.Require().NoError(err)
	s.Require().NoError(cancelled.Cancel())

	return []*order.Order{pending, preparing, cancelled}
}

func (s *StoreSuite) TestLoad_EmptyMedium() {
	orders, err := s.NewStore().Load(context.Background())

	s.Require().NoError(err)
	s.Empty(orders)
}

func (s *StoreSuite) TestSaveLoad_RoundTrip() {
	ctx := context.Background()
	store := s.NewStore()
	orders := Orders(&s.Suite)

	s.Require().NoError(store.Save(ctx, orders))
	loaded, err := s.NewStore().Load(ctx)
	s.Require().NoError(err)

	s.Require().Len(loaded, len(orders))
	want, err := snapshot.Encode(orders)
	s.Require().NoError(err)
	got, err := snapshot.Encode(loaded)
	s.Require().NoError(err)
	s.JSONEq(string(want), string(got))
}

func (s *StoreSuite) TestSave_ReplacesDocument() {
	ctx := context.Background()
	store := s.NewStore()
	orders := Orders(&s.Suite)

	s.Require().NoError(store.Save(ctx, orders))
	s.Require().NoError(store.Save(ctx, orders[:1]))

	loaded, err := store.Load(ctx)
	s.Require().NoError(err)
	s.Require().Len(loaded, 1)
	s.True(loaded[0].IsEqual(orders[0]))
}

func (s *StoreSuite) TestLoad_CorruptDocumentIsEmpty() {
	s.WriteRaw([]byte(`{"orders": "definitely not an array`))

	orders, err := s.NewStore().Load(context.Background())

	s.Require().NoError(err)
	s.Empty(orders)
}

func (s *StoreSuite) TestLoad_SkipsInvalidRecords() {
	ctx := context.Background()
	orders := Orders(&s.Suite)
	data, err := snapshot.Encode(orders[:1])
	s.Require().NoError(err)

	// second record has no items
	doc := string(data[:len(data)-1]) + `,{"id":"` + kernel.NewUUID().String() +
		`","userId":"user-9","items":[],"total":"0","status":"pending","deliveryType":"pickup",` +
		`"deliveryInfo":{"name":"X","phone":"1","time":"ASAP"},"paymentMethod":"card",` +
		`"createdAt":"2025-01-01T00:00:00Z","estimatedDelivery":"2025-01-01T00:40:00Z",` +
		`"currentLocation":"Restaurant"}]`
	s.WriteRaw([]byte(doc))

	loaded, err := s.NewStore().Load(ctx)

	s.Require().NoError(err)
	s.Require().Len(loaded, 1)
	s.True(loaded[0].IsEqual(orders[0]))
}
