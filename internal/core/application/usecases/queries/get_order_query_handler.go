package queries

import (
	"context"
	"errors"

	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// GetOrderQueryHandler serves GetOrderQuery. An unknown id is not an error: the
// handler reports found = false.
type GetOrderQueryHandler struct {
	reader ports.OrderReader
}

func NewGetOrderQueryHandler(reader ports.OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{reader: reader}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, bool, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, false, err
	}

	o, err := h.reader.Get(ctx, query.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return OrderResponse{}, false, nil
	}
	if err != nil {
		return OrderResponse{}, false, err
	}

	return NewOrderResponse(o), true, nil
}
