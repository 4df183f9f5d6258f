package order

import (
	"errors"
	"fmt"
	"strings"

	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// MaxItemQuantity caps a single cart line.
const MaxItemQuantity = 999

// Item is one cart line copied into the order: a product reference, a quantity and the
// unit price at the time of ordering. Items are values; later cart changes do not
// reach them.
type Item struct {
	productRef    string
	quantity      int
	unitPrice     decimal.Decimal
	isConstructed bool
}

// NewItem validates a cart line: productRef is required, quantity must be within
// [1, MaxItemQuantity] and unitPrice must not be negative.
func NewItem(productRef string, quantity int, unitPrice decimal.Decimal) (Item, error) {
	var errList []error

	productRef = strings.TrimSpace(productRef)
	if productRef == "" {
		errList = append(errList, errs.NewValueIsRequiredError("productRef"))
	}
	if quantity < 1 || quantity > MaxItemQuantity {
		errList = append(errList, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxItemQuantity))
	}
	if unitPrice.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"unitPrice",
			fmt.Errorf("%s is negative", unitPrice),
		))
	}
	if err := errors.Join(errList...); err != nil {
		return Item{}, err
	}

	return Item{
		productRef:    productRef,
		quantity:      quantity,
		unitPrice:     unitPrice,
		isConstructed: true,
	}, nil
}

func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i Item) ProductRef() string {
	return i.productRef
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// Subtotal is quantity × unitPrice.
func (i Item) Subtotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}

// Total sums the subtotals of items.
func Total(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
