// Package order models the customer order and its lifecycle.
//
// The package includes:
//   - Order: the aggregate root holding the cart snapshot, totals and delivery data
//   - Status: the state machine pending → preparing → (delivering →) completed, with
//     cancellation allowed from pending and preparing
//   - DeliveryType: delivery or pickup, which selects the timed schedule
//   - Step / ScheduleFor: the timed advances each new order goes through
//   - StatusChanged: the event raised after a committed change
//
// Key business rules:
//   - An order has at least one item and its total is fixed at creation
//   - Status only moves forward; completed and cancelled are terminal
//   - Delivery orders must carry an address
package order
