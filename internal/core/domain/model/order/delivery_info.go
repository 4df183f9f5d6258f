package order

import (
	"errors"
	"strings"

	"orderflow/internal/pkg/errs"
)

var ErrAddressIsRequired = errs.NewValueIsRequiredErrorWithCause(
	"address",
	errors.New("delivery orders need an address"),
)

// DeliveryInfo describes the recipient. Address and complement are optional for
// pickup orders; Time is the desired time as entered by the customer.
type DeliveryInfo struct {
	name       string
	phone      string
	address    string
	complement string
	time       string
}

// NewDeliveryInfo requires a name and a phone. Whether the address is required
// depends on the delivery type and is checked when the order is built.
func NewDeliveryInfo(name, phone, address, complement, desiredTime string) (DeliveryInfo, error) {
	info := DeliveryInfo{
		name:       strings.TrimSpace(name),
		phone:      strings.TrimSpace(phone),
		address:    strings.TrimSpace(address),
		complement: strings.TrimSpace(complement),
		time:       strings.TrimSpace(desiredTime),
	}

	var errList []error
	if info.name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	if info.phone == "" {
		errList = append(errList, errs.NewValueIsRequiredError("phone"))
	}
	if err := errors.Join(errList...); err != nil {
		return DeliveryInfo{}, err
	}

	return info, nil
}

func (d DeliveryInfo) Name() string       { return d.name }
func (d DeliveryInfo) Phone() string      { return d.phone }
func (d DeliveryInfo) Address() string    { return d.address }
func (d DeliveryInfo) Complement() string { return d.complement }
func (d DeliveryInfo) Time() string       { return d.time }

func (d DeliveryInfo) validateFor(deliveryType DeliveryType) error {
	if d.name == "" || d.phone == "" {
		return errs.NewValueIsRequiredError("deliveryInfo")
	}
	if deliveryType == Delivery && d.address == "" {
		return ErrAddressIsRequired
	}
	return nil
}
