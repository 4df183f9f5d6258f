// Package queries contains read-only operations served from the committed order
// collection.
package queries

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderResponse is the read model of an order handed to presentation.
type OrderResponse struct {
	ID                kernel.UUID
	UserID            string
	Items             []ItemResponse
	Total             decimal.Decimal
	Status            order.Status
	DeliveryType      order.DeliveryType
	DeliveryInfo      DeliveryInfoResponse
	PaymentMethod     string
	CreatedAt         time.Time
	EstimatedDelivery time.Time
	CurrentLocation   string
}

type ItemResponse struct {
	ProductRef string
	Quantity   int
	UnitPrice  decimal.Decimal
	Subtotal   decimal.Decimal
}

type DeliveryInfoResponse struct {
	Name       string
	Phone      string
	Address    string
	Complement string
	Time       string
}

// IsActive reports whether the order is still progressing.
func (r OrderResponse) IsActive() bool {
	return r.Status.IsActive()
}

// CanBeCancelled reports whether a cancel request would currently succeed.
func (r OrderResponse) CanBeCancelled() bool {
	return r.Status.ValidateCancel() == nil
}

// NewOrderResponse maps an aggregate to its read model.
func NewOrderResponse(o *order.Order) OrderResponse {
	items := o.Items()
	itemResponses := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		itemResponses = append(itemResponses, ItemResponse{
			ProductRef: item.ProductRef(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice(),
			Subtotal:   item.Subtotal(),
		})
	}

	info := o.DeliveryInfo()
	return OrderResponse{
		ID:           o.ID(),
		UserID:       o.UserID(),
		Items:        itemResponses,
		Total:        o.Total(),
		Status:       o.Status(),
		DeliveryType: o.DeliveryType(),
		DeliveryInfo: DeliveryInfoResponse{
			Name:       info.Name(),
			Phone:      info.Phone(),
			Address:    info.Address(),
			Complement: info.Complement(),
			Time:       info.Time(),
		},
		PaymentMethod:     o.PaymentMethod(),
		CreatedAt:         o.CreatedAt(),
		EstimatedDelivery: o.EstimatedDelivery(),
		CurrentLocation:   o.CurrentLocation(),
	}
}
