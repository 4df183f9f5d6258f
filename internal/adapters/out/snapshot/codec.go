package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"orderflow/internal/core/domain/model/order"
)

// ErrCorruptDocument is returned by Decode when the document is not a JSON array of
// orders.
var ErrCorruptDocument = errors.New("order document is corrupt")

// Encode serializes the full collection.
func Encode(orders []*order.Order) ([]byte, error) {
	dtos := make([]OrderDTO, 0, len(orders))
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		dtos = append(dtos, fromDomain(o))
	}

	return json.Marshal(dtos)
}

// Decode parses a document. Records that decode but break an order invariant are left
// out and reported in skipped; the remaining orders are returned.
func Decode(data []byte) (orders []*order.Order, skipped []error, err error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil, nil
	}

	var dtos []OrderDTO
	if err = json.Unmarshal(data, &dtos); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrCorruptDocument, err)
	}

	orders = make([]*order.Order, 0, len(dtos))
	seen := make(map[string]struct{}, len(dtos))
	for i, dto := range dtos {
		if _, dup := seen[dto.ID]; dup {
			skipped = append(skipped, fmt.Errorf("record %d: duplicate id %s", i, dto.ID))
			continue
		}

		o, restoreErr := toDomain(dto)
		if restoreErr != nil {
			skipped = append(skipped, fmt.Errorf("record %d (%s): %w", i, dto.ID, restoreErr))
			continue
		}

		seen[dto.ID] = struct{}{}
		orders = append(orders, o)
	}

	return orders, skipped, nil
}

// Read is Decode with the recovery policy shared by all stores: a corrupt document is
// an empty collection, and skipped records are only logged.
func Read(data []byte, logger *slog.Logger) []*order.Order {
	orders, skipped, err := Decode(data)
	if err != nil {
		logger.Warn("discarding unreadable order document", "error", err)
		return []*order.Order{}
	}

	for _, skipErr := range skipped {
		logger.Warn("skipping invalid order record", "error", skipErr)
	}

	if orders == nil {
		return []*order.Order{}
	}
	return orders
}
