package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jakubrevaj/Matratex/internal/entity"
	"github.com/jakubrevaj/Matratex/internal/repository"
	"github.com/jakubrevaj/Matratex/internal/testutil"
)

func TestSplitItemKeepsOrderTotal(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	customer := testutil.SeedCustomer(t, db, "Hotel Royal", "")

	order, err := svc.Order.Create(ctx, &CreateOrderRequest{
		CustomerID: customer.ID,
		Items: []OrderItemInput{
			{ProductName: "Matrac Komfort", Price: 10, Quantity: 5},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	items, err := svc.OrderItem.Split(ctx, order.Items[0].ID, 2)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("split returned %d items, want 2", len(items))
	}

	original, split := items[0], items[1]
	if original.ID != order.Items[0].ID {
		t.Errorf("first returned item id = %d, want original %d", original.ID, order.Items[0].ID)
	}
	if original.Quantity != 3 {
		t.Errorf("original quantity = %d, want 3", original.Quantity)
	}
	if split.Quantity != 2 {
		t.Errorf("split quantity = %d, want 2", split.Quantity)
	}
	if split.InvoiceID != nil {
		t.Error("split item must not inherit an invoice reference")
	}

	reloaded, err := svc.Order.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if reloaded.TotalPrice != 50 {
		t.Errorf("total after split = %v, want 50", reloaded.TotalPrice)
	}
	if len(reloaded.Items) != 2 {
		t.Errorf("items = %d, want 2", len(reloaded.Items))
	}
}

func TestSplitRejectsOutOfRangeQuantity(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	customer := testutil.SeedCustomer(t, db, "Hotel Royal", "")

	order, err := svc.Order.Create(ctx, &CreateOrderRequest{
		CustomerID: customer.ID,
		Items: []OrderItemInput{
			{ProductName: "Matrac Komfort", Price: 10, Quantity: 5},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	for _, q := range []int{0, -1, 5, 6} {
		if _, err := svc.OrderItem.Split(ctx, order.Items[0].ID, q); !errors.Is(err, ErrInvalidSplitQuantity) {
			t.Errorf("split %d: got %v, want ErrInvalidSplitQuantity", q, err)
		}
	}
}

func TestSplitAndInvoiceStartsNewItemInvoiced(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	customer := testutil.SeedCustomer(t, db, "Hotel Royal", "")

	order, err := svc.Order.Create(ctx, &CreateOrderRequest{
		CustomerID: customer.ID,
		Items: []OrderItemInput{
			{ProductName: "Matrac Komfort", Price: 10, Quantity: 4, Status: entity.ItemStatusCompleted},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	items, err := svc.OrderItem.SplitAndInvoice(ctx, order.Items[0].ID, 1)
	if err != nil {
		t.Fatalf("split and invoice: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("split returned %d items, want 2", len(items))
	}
	if items[1].Status != entity.ItemStatusInvoiced {
		t.Errorf("split status = %q, want %q", items[1].Status, entity.ItemStatusInvoiced)
	}
	if items[0].Status != entity.ItemStatusCompleted {
		t.Errorf("original status = %q, want %q", items[0].Status, entity.ItemStatusCompleted)
	}
}

func TestUpdateStatusToArchivedSnapshotsOnce(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	customer := testutil.SeedCustomer(t, db, "Hotel Royal", "87654321")

	order, err := svc.Order.Create(ctx, &CreateOrderRequest{
		CustomerID: customer.ID,
		Items: []OrderItemInput{
			{ProductName: "Matrac Komfort", Price: 100, Quantity: 1, Status: entity.ItemStatusCompleted},
			{ProductName: "Matrac Klasik", Price: 50, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	itemID := order.Items[0].ID

	if _, err := svc.OrderItem.UpdateStatus(ctx, itemID, entity.ItemStatusArchived); err != nil {
		t.Fatalf("archive item: %v", err)
	}
	// repeated archival must not duplicate the snapshot
	if _, err := svc.OrderItem.UpdateStatus(ctx, itemID, entity.ItemStatusArchived); err != nil {
		t.Fatalf("re-archive item: %v", err)
	}

	snapshots, err := svc.Archive.ListArchivedItems(ctx)
	if err != nil {
		t.Fatalf("list snapshots: %v", err)
	}
	if len(snapshots) != 1 {
		t.Fatalf("snapshots = %d, want 1", len(snapshots))
	}
	snap := snapshots[0]
	if snap.OriginalItemID != itemID {
		t.Errorf("original item id = %d, want %d", snap.OriginalItemID, itemID)
	}
	if snap.CustomerName == nil || *snap.CustomerName != "Hotel Royal" {
		t.Errorf("customer name = %v, want Hotel Royal", snap.CustomerName)
	}
	if snap.OrderNumber == nil || *snap.OrderNumber != order.OrderNumber {
		t.Errorf("order number = %v, want %s", snap.OrderNumber, order.OrderNumber)
	}

	byOriginal, err := svc.Archive.GetArchivedItem(ctx, itemID)
	if err != nil {
		t.Fatalf("get snapshot by original id: %v", err)
	}
	if byOriginal.ID != snap.ID {
		t.Errorf("snapshot lookup returned id %d, want %d", byOriginal.ID, snap.ID)
	}
	if _, err := svc.Archive.GetArchivedItem(ctx, 999999); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("missing snapshot: got %v, want ErrNotFound", err)
	}
}

func TestListByOrderReturnsItemsInCreationOrder(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	customer := testutil.SeedCustomer(t, db, "Hotel Royal", "")

	order, err := svc.Order.Create(ctx, &CreateOrderRequest{
		CustomerID: customer.ID,
		Items: []OrderItemInput{
			{ProductName: "Matrac Komfort", Price: 10, Quantity: 1},
			{ProductName: "Matrac Klasik", Price: 20, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	items, err := svc.OrderItem.ListByOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("list by order: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if items[0].ProductName != "Matrac Komfort" || items[1].ProductName != "Matrac Klasik" {
		t.Errorf("unexpected item order: %s, %s", items[0].ProductName, items[1].ProductName)
	}

	if _, err := svc.OrderItem.ListByOrder(ctx, 999999); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("missing order: got %v, want ErrNotFound", err)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestServices(t)

	_, err := svc.OrderItem.UpdateStatus(context.Background(), 1, "done")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("got %v, want ErrInvalidStatus", err)
	}
}

func TestDeleteItemRecomputesOrder(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	customer := testutil.SeedCustomer(t, db, "Hotel Royal", "")

	order, err := svc.Order.Create(ctx, &CreateOrderRequest{
		CustomerID: customer.ID,
		Items: []OrderItemInput{
			{ProductName: "Matrac Komfort", Price: 100, Quantity: 1},
			{ProductName: "Matrac Klasik", Price: 50, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if err := svc.OrderItem.Delete(ctx, order.Items[1].ID); err != nil {
		t.Fatalf("delete item: %v", err)
	}

	reloaded, err := svc.Order.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if reloaded.TotalPrice != 100 {
		t.Errorf("total = %v, want 100", reloaded.TotalPrice)
	}
	if len(reloaded.Items) != 1 {
		t.Errorf("items = %d, want 1", len(reloaded.Items))
	}
}
