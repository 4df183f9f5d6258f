package http

import (
	"time"

	"orderflow/internal/core/application/usecases/queries"

	"github.com/shopspring/decimal"
)

type CreateOrderRequest struct {
	DeliveryType  string          `json:"deliveryType"`
	DeliveryInfo  DeliveryInfoDTO `json:"deliveryInfo"`
	PaymentMethod string          `json:"paymentMethod"`
	Items         []ItemDTO       `json:"items"`
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
	CanBeCancelled    bool            `json:"canBeCancelled"`
}

type CreatedOrderDTO struct {
	ID string `json:"id"`
}

type CancelOrderDTO struct {
	Cancelled bool `json:"cancelled"`
}

type ActiveOrderDTO struct {
	Order *OrderDTO `json:"order"`
}

type ErrorDTO struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newOrderDTO(view queries.OrderResponse) OrderDTO {
	items := make([]ItemDTO, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, ItemDTO{
			ProductRef: item.ProductRef,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		})
	}

	return OrderDTO{
		ID:           view.ID.String(),
		UserID:       view.UserID,
		Items:        items,
		Total:        view.Total,
		Status:       view.Status.String(),
		DeliveryType: view.DeliveryType.String(),
		DeliveryInfo: DeliveryInfoDTO{
			Name:       view.DeliveryInfo.Name,
			Phone:      view.DeliveryInfo.Phone,
			Address:    view.DeliveryInfo.Address,
			Complement: view.DeliveryInfo.Complement,
			Time:       view.DeliveryInfo.Time,
		},
		PaymentMethod:     view.PaymentMethod,
		CreatedAt:         view.CreatedAt,
		EstimatedDelivery: view.EstimatedDelivery,
		CurrentLocation:   view.CurrentLocation,
		CanBeCancelled:    view.CanBeCancelled(),
	}
}

func newActiveOrderDTO(view queries.OrderResponse, found bool) ActiveOrderDTO {
	if !found {
		return ActiveOrderDTO{}
	}
	dto := newOrderDTO(view)
	return ActiveOrderDTO{Order: &dto}
}
