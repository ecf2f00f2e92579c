package entity

// ItemStatus is the production status of a single order item.
type ItemStatus string

const (
	ItemStatusPending      ItemStatus = "pending"
	ItemStatusToProduction ItemStatus = "to-production"
	ItemStatusInProduction ItemStatus = "in-production"
	ItemStatusCompleted    ItemStatus = "completed"
	ItemStatusInvoiced     ItemStatus = "invoiced"
	ItemStatusArchived     ItemStatus = "archived"
)

// Valid reports whether s is one of the six recognized item statuses.
func (s ItemStatus) Valid() bool {
	switch s {
	case ItemStatusPending, ItemStatusToProduction, ItemStatusInProduction,
		ItemStatusCompleted, ItemStatusInvoiced, ItemStatusArchived:
		return true
	}
	return false
}

// OrderStatus is the order-level status derived from the order's items.
type OrderStatus string

const (
	OrderStatusPending      OrderStatus = "pending"
	OrderStatusInProduction OrderStatus = "in-production"
	OrderStatusCompleted    OrderStatus = "completed"
	OrderStatusInvoiced     OrderStatus = "invoiced"
)

// ComputeProductionStatus derives an order's status from its items.
// The rules form a priority cascade and their order matters:
//
//  1. every item invoiced or archived          -> invoiced
//  2. every item completed/archived/invoiced,
//     at least one completed or archived       -> completed
//  3. any item in-production or to-production  -> in-production
//  4. otherwise                                -> pending
//
// An order with no items is pending.
func ComputeProductionStatus(items []OrderItem) OrderStatus {
	if len(items) == 0 {
		return OrderStatusPending
	}

	allSettled := true   // every item invoiced or archived
	allFinished := true  // every item completed, archived or invoiced
	anyProduced := false // at least one completed or archived
	anyInWork := false   // at least one in-production or to-production

	for _, item := range items {
		switch item.Status {
		case ItemStatusInvoiced:
			// settled and finished, but does not count as produced work
		case ItemStatusArchived:
			anyProduced = true
		case ItemStatusCompleted:
			allSettled = false
			anyProduced = true
		case ItemStatusInProduction, ItemStatusToProduction:
			allSettled = false
			allFinished = false
			anyInWork = true
		case ItemStatusPending:
			allSettled = false
			allFinished = false
		default:
			// unknown status blocks every completion rule
			allSettled = false
			allFinished = false
		}
	}

	switch {
	case allSettled:
		return OrderStatusInvoiced
	case allFinished && anyProduced:
		return OrderStatusCompleted
	case anyInWork:
		return OrderStatusInProduction
	default:
		return OrderStatusPending
	}
}
