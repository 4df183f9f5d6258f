package queries

import (
	"context"
	"errors"

	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// GetActiveOrderQueryHandler returns the caller's active order. found is false for
// anonymous callers and for users without an order in progress.
type GetActiveOrderQueryHandler struct {
	reader ports.OrderReader
}

func NewGetActiveOrderQueryHandler(reader ports.OrderReader) GetActiveOrderQueryHandler {
	return GetActiveOrderQueryHandler{reader: reader}
}

func (h GetActiveOrderQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrderQuery,
) (OrderResponse, bool, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, false, err
	}

	if !query.Identity().IsAuthenticated() {
		return OrderResponse{}, false, nil
	}

	o, err := h.reader.GetActiveByUser(ctx, query.Identity().ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return OrderResponse{}, false, nil
	}
	if err != nil {
		return OrderResponse{}, false, err
	}

	return NewOrderResponse(o), true, nil
}
