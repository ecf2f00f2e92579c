package entity

import "testing"

func items(statuses ...ItemStatus) []OrderItem {
	out := make([]OrderItem, len(statuses))
	for i, s := range statuses {
		out[i] = OrderItem{Status: s}
	}
	return out
}

func TestComputeProductionStatusEmptyOrder(t *testing.T) {
	if got := ComputeProductionStatus(nil); got != OrderStatusPending {
		t.Errorf("empty order: got %q, want %q", got, OrderStatusPending)
	}
}

func TestComputeProductionStatusAllInvoiced(t *testing.T) {
	got := ComputeProductionStatus(items(ItemStatusInvoiced, ItemStatusInvoiced))
	if got != OrderStatusInvoiced {
		t.Errorf("got %q, want %q", got, OrderStatusInvoiced)
	}
}

func TestComputeProductionStatusInvoicedWithArchived(t *testing.T) {
	got := ComputeProductionStatus(items(ItemStatusInvoiced, ItemStatusArchived))
	if got != OrderStatusInvoiced {
		t.Errorf("got %q, want %q", got, OrderStatusInvoiced)
	}
}

func TestComputeProductionStatusAllCompleted(t *testing.T) {
	got := ComputeProductionStatus(items(ItemStatusCompleted, ItemStatusCompleted))
	if got != OrderStatusCompleted {
		t.Errorf("got %q, want %q", got, OrderStatusCompleted)
	}
}

func TestComputeProductionStatusCompletedMixedWithInvoiced(t *testing.T) {
	got := ComputeProductionStatus(items(ItemStatusCompleted, ItemStatusInvoiced))
	if got != OrderStatusCompleted {
		t.Errorf("got %q, want %q", got, OrderStatusCompleted)
	}
}

func TestComputeProductionStatusInProduction(t *testing.T) {
	for _, s := range []ItemStatus{ItemStatusToProduction, ItemStatusInProduction} {
		got := ComputeProductionStatus(items(s, ItemStatusPending, ItemStatusCompleted))
		if got != OrderStatusInProduction {
			t.Errorf("with %q item: got %q, want %q", s, got, OrderStatusInProduction)
		}
	}
}

// An order keeps waiting for its pending items even after part of it
// was completed and invoiced.
func TestComputeProductionStatusInvoicedPartStillLeavesOrderPending(t *testing.T) {
	got := ComputeProductionStatus(items(ItemStatusInvoiced, ItemStatusPending))
	if got != OrderStatusPending {
		t.Errorf("got %q, want %q", got, OrderStatusPending)
	}
}

func TestComputeProductionStatusAllPending(t *testing.T) {
	got := ComputeProductionStatus(items(ItemStatusPending, ItemStatusPending))
	if got != OrderStatusPending {
		t.Errorf("got %q, want %q", got, OrderStatusPending)
	}
}

func TestItemStatusValid(t *testing.T) {
	valid := []ItemStatus{
		ItemStatusPending,
		ItemStatusToProduction,
		ItemStatusInProduction,
		ItemStatusCompleted,
		ItemStatusInvoiced,
		ItemStatusArchived,
	}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range []ItemStatus{"", "done", "cancelled", "PENDING"} {
		if s.Valid() {
			t.Errorf("%q should be invalid", s)
		}
	}
}
