package order

import "time"

// Step is one scheduled advance: after Offset from creation the order moves to Target
// and its current location becomes Location.
type Step struct {
	Offset   time.Duration
	Target   Status
	Location string
}

const (
	LocationRestaurant     = "Restaurant"
	LocationKitchen        = "Kitchen"
	LocationEnRoute        = "En route"
	LocationDelivered      = "Delivered"
	LocationReadyForPickup = "Ready for pickup"
)

var schedules = map[DeliveryType][]Step{
	Delivery: {
		{Offset: 60 * time.Second, Target: Preparing, Location: LocationKitchen},
		{Offset: 180 * time.Second, Target: Delivering, Location: LocationEnRoute},
		{Offset: 300 * time.Second, Target: Completed, Location: LocationDelivered},
	},
	Pickup: {
		{Offset: 60 * time.Second, Target: Preparing, Location: LocationKitchen},
		{Offset: 180 * time.Second, Target: Completed, Location: LocationReadyForPickup},
	},
}

// ScheduleFor returns the advances every new order of deliveryType goes through,
// ordered by Offset. Unknown delivery types have no schedule.
func ScheduleFor(deliveryType DeliveryType) []Step {
	steps := schedules[deliveryType]
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

// RemainingSteps returns the steps the order has not reached yet. Terminal orders have
// none left.
func (o *Order) RemainingSteps() []Step {
	if o.status.IsTerminal() {
		return nil
	}

	all := ScheduleFor(o.deliveryType)
	for i, step := range all {
		if step.Target == o.status {
			return all[i+1:]
		}
	}
	return all
}
