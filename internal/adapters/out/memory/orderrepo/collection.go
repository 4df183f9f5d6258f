// Package orderrepo holds the in-memory order collection and the repository that
// mutates it inside a unit of work.
package orderrepo

import (
	"fmt"
	"sort"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

// Collection is the full set of orders plus a userId → active order index.
// It is not safe for concurrent use; the unit of work owns the locking.
type Collection struct {
	orders []*order.Order
	byID   map[string]int
	active map[string]string
}

func NewCollection() *Collection {
	return &Collection{
		byID:   make(map[string]int),
		active: make(map[string]string),
	}
}

// CollectionFrom builds a collection from loaded orders. Orders that fail Add, such as
// a repeated id, are left out and reported in skipped; a user with several non-terminal
// orders gets the newest indexed.
func CollectionFrom(orders []*order.Order) (c *Collection, skipped []error) {
	c = NewCollection()
	for _, o := range orders {
		if err := c.Add(o); err != nil {
			skipped = append(skipped, fmt.Errorf("order %s: %w", o.ID(), err))
		}
	}
	return c, skipped
}

// Add stores o. The collection keeps the pointer; callers hand over ownership.
func (c *Collection) Add(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	key := o.ID().String()
	if _, exists := c.byID[key]; exists {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("order %s already exists", key))
	}

	c.byID[key] = len(c.orders)
	c.orders = append(c.orders, o)
	c.reindex(o)
	return nil
}

// Replace swaps the stored order having the same id as o.
func (c *Collection) Replace(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	key := o.ID().String()
	idx, exists := c.byID[key]
	if !exists {
		return errs.NewObjectNotFoundError("order", key)
	}

	c.orders[idx] = o
	c.reindex(o)
	return nil
}

func (c *Collection) Get(id kernel.UUID) (*order.Order, bool) {
	idx, exists := c.byID[id.String()]
	if !exists {
		return nil, false
	}
	return c.orders[idx], true
}

func (c *Collection) ActiveByUser(userID string) (*order.Order, bool) {
	id, exists := c.active[userID]
	if !exists {
		return nil, false
	}
	return c.orders[c.byID[id]], true
}

// AllByUser returns the user's orders, newest first.
func (c *Collection) AllByUser(userID string) []*order.Order {
	var result []*order.Order
	for _, o := range c.orders {
		if o.BelongsTo(userID) {
			result = append(result, o)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt().After(result[j].CreatedAt())
	})
	return result
}

// AllActive returns every non-terminal order, oldest first.
func (c *Collection) AllActive() []*order.Order {
	var result []*order.Order
	for _, o := range c.orders {
		if o.IsActive() {
			result = append(result, o)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt().Before(result[j].CreatedAt())
	})
	return result
}

// Orders returns the stored orders in insertion order. The slice is a copy, the
// orders are not.
func (c *Collection) Orders() []*order.Order {
	result := make([]*order.Order, len(c.orders))
	copy(result, c.orders)
	return result
}

func (c *Collection) Len() int {
	return len(c.orders)
}

// Clone returns a deep copy.
func (c *Collection) Clone() *Collection {
	clone := &Collection{
		orders: make([]*order.Order, len(c.orders)),
		byID:   make(map[string]int, len(c.byID)),
		active: make(map[string]string, len(c.active)),
	}
	for i, o := range c.orders {
		clone.orders[i] = o.Clone()
	}
	for k, v := range c.byID {
		clone.byID[k] = v
	}
	for k, v := range c.active {
		clone.active[k] = v
	}
	return clone
}

// reindex updates the active entry of o's owner after o was added or replaced.
func (c *Collection) reindex(o *order.Order) {
	userID := o.UserID()
	key := o.ID().String()
	current, hasCurrent := c.active[userID]

	if o.IsActive() {
		if !hasCurrent || current == key {
			c.active[userID] = key
			return
		}
		if o.CreatedAt().After(c.orders[c.byID[current]].CreatedAt()) {
			c.active[userID] = key
		}
		return
	}

	if hasCurrent && current == key {
		delete(c.active, userID)
		c.promoteNewestActive(userID)
	}
}

// promoteNewestActive only finds something for collections loaded with several
// active orders for one user.
func (c *Collection) promoteNewestActive(userID string) {
	var newest *order.Order
	for _, o := range c.orders {
		if !o.BelongsTo(userID) || !o.IsActive() {
			continue
		}
		if newest == nil || o.CreatedAt().After(newest.CreatedAt()) {
			newest = o
		}
	}
	if newest != nil {
		c.active[userID] = newest.ID().String()
	}
}
