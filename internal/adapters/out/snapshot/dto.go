// Package snapshot converts the order collection to and from the JSON document kept
// by every durable store. Field names are the ones of the order data model
// (id, userId, items, total, ...), so documents written by earlier versions of the
// storefront stay readable.
package snapshot

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO is one element of the persisted document.
type OrderDTO struct {
	ID                string          `json:"id"`
	UserID            string          `json:"userId"`
	Items             []ItemDTO       `json:"items"`
	Total             decimal.Decimal `json:"total"`
	Status            string          `json:"status"`
	DeliveryType      string          `json:"deliveryType"`
	DeliveryInfo      DeliveryInfoDTO `json:"deliveryInfo"`
	PaymentMethod     string          `json:"paymentMethod"`
	CreatedAt         time.Time       `json:"createdAt"`
	EstimatedDelivery time.Time       `json:"estimatedDelivery"`
	CurrentLocation   string          `json:"currentLocation"`
}

type ItemDTO struct {
	ProductRef string          `json:"productRef"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
}

type DeliveryInfoDTO struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address,omitempty"`
	Complement string `json:"complement,omitempty"`
	Time       string `json:"time"`
}

func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()

	items := make([]ItemDTO, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, ItemDTO{
			ProductRef: item.ProductRef(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice(),
		})
	}

	return OrderDTO{
		ID:           s.ID.String(),
		UserID:       s.UserID,
		Items:        items,
		Total:        s.Total,
		Status:       s.Status.String(),
		DeliveryType: s.DeliveryType.String(),
		DeliveryInfo: DeliveryInfoDTO{
			Name:       s.DeliveryInfo.Name(),
			Phone:      s.DeliveryInfo.Phone(),
			Address:    s.DeliveryInfo.Address(),
			Complement: s.DeliveryInfo.Complement(),
			Time:       s.DeliveryInfo.Time(),
		},
		PaymentMethod:     s.PaymentMethod,
		CreatedAt:         s.CreatedAt.UTC(),
		EstimatedDelivery: s.EstimatedDelivery.UTC(),
		CurrentLocation:   s.CurrentLocation,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	deliveryType, err := order.ParseDeliveryType(dto.DeliveryType)
	if err != nil {
		return nil, err
	}

	info, err := order.NewDeliveryInfo(
		dto.DeliveryInfo.Name,
		dto.DeliveryInfo.Phone,
		dto.DeliveryInfo.Address,
		dto.DeliveryInfo.Complement,
		dto.DeliveryInfo.Time,
	)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(itemDTO.ProductRef, itemDTO.Quantity, itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.Restore(order.Snapshot{
		ID:                id,
		UserID:            dto.UserID,
		Items:             items,
		Total:             dto.Total,
		Status:            status,
		DeliveryType:      deliveryType,
		DeliveryInfo:      info,
		PaymentMethod:     dto.PaymentMethod,
		CreatedAt:         dto.CreatedAt,
		EstimatedDelivery: dto.EstimatedDelivery,
		CurrentLocation:   dto.CurrentLocation,
	})
}
