package queries

import (
	"context"

	"orderflow/internal/core/ports"
)

// GetUserOrdersQueryHandler returns the caller's orders, newest first.
type GetUserOrdersQueryHandler struct {
	reader ports.OrderReader
}

func NewGetUserOrdersQueryHandler(reader ports.OrderReader) GetUserOrdersQueryHandler {
	return GetUserOrdersQueryHandler{reader: reader}
}

func (h GetUserOrdersQueryHandler) Handle(ctx context.Context, query GetUserOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0)
	if !query.Identity().IsAuthenticated() {
		return responses, nil
	}

	orders, err := h.reader.GetAllByUser(ctx, query.Identity().ID())
	if err != nil {
		return nil, err
	}

	for _, o := range orders {
		responses = append(responses, NewOrderResponse(o))
	}
	return responses, nil
}
