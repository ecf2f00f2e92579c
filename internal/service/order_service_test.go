package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jakubrevaj/Matratex/internal/entity"
	"github.com/jakubrevaj/Matratex/internal/repository"
	"github.com/jakubrevaj/Matratex/internal/testutil"
)

func TestCreateOrderAllocatesDailyNumbers(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	customer := testutil.SeedCustomer(t, db, "Hotel Royal", "12345678")

	first, err := svc.Order.Create(ctx, &CreateOrderRequest{
		CustomerID: customer.ID,
		Items: []OrderItemInput{
			{ProductName: "Matrac Komfort", Price: 120, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("create first order: %v", err)
	}

	prefix := time.Now().Format("20060102")
	if want := prefix + "001"; first.OrderNumber != want {
		t.Errorf("first order number = %q, want %q", first.OrderNumber, want)
	}

	second, err := svc.Order.Create(ctx, &CreateOrderRequest{
		CustomerID: customer.ID,
		Items: []OrderItemInput{
			{ProductName: "Matrac Klasik", Price: 80, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("create second order: %v", err)
	}
	if want := prefix + "002"; second.OrderNumber != want {
		t.Errorf("second order number = %q, want %q", second.OrderNumber, want)
	}
}

func TestCreateOrderCountsArchivedOrdersOfTheDay(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	customer := testutil.SeedCustomer(t, db, "Penzión Lipa", "")

	prefix := time.Now().Format("20060102")
	hist := &entity.HistoricalOrder{
		OrderNumber:      prefix + "001",
		CustomerName:     "Penzión Lipa",
		IssueDate:        time.Now(),
		ProductionStatus: entity.OrderStatusInvoiced,
	}
	if err := db.Create(hist).Error; err != nil {
		t.Fatalf("seed historical order: %v", err)
	}

	order, err := svc.Order.Create(ctx, &CreateOrderRequest{
		CustomerID: customer.ID,
		Items: []OrderItemInput{
			{ProductName: "Matrac Komfort", Price: 100, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if want := prefix + "002"; order.OrderNumber != want {
		t.Errorf("order number = %q, want %q: archived orders must keep their slot", order.OrderNumber, want)
	}
}

func TestCreateOrderRequiresExistingCustomer(t *testing.T) {
	svc, _ := newTestServices(t)

	_, err := svc.Order.Create(context.Background(), &CreateOrderRequest{CustomerID: 9999})
	if !errors.Is(err, ErrCustomerRequired) {
		t.Fatalf("got %v, want ErrCustomerRequired", err)
	}
}

func TestCreateOrderTotalsAndDerivedStatus(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	customer := testutil.SeedCustomer(t, db, "Hotel Royal", "")

	order, err := svc.Order.Create(ctx, &CreateOrderRequest{
		CustomerID: customer.ID,
		Items: []OrderItemInput{
			{ProductName: "Matrac Komfort", Price: 19.99, Quantity: 2},
			{ProductName: "Matrac Klasik", Price: 50, Quantity: 1, Status: entity.ItemStatusToProduction},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if order.TotalPrice != 89.98 {
		t.Errorf("total = %v, want 89.98", order.TotalPrice)
	}
	if order.ProductionStatus != entity.OrderStatusInProduction {
		t.Errorf("status = %q, want %q", order.ProductionStatus, entity.OrderStatusInProduction)
	}
}

func TestCreateOrderArchivesImmediatelyWhenAllInvoiced(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	customer := testutil.SeedCustomer(t, db, "Hotel Royal", "")

	order, err := svc.Order.Create(ctx, &CreateOrderRequest{
		CustomerID: customer.ID,
		Items: []OrderItemInput{
			{ProductName: "Matrac Komfort", Price: 100, Quantity: 1, Status: entity.ItemStatusInvoiced},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	var liveCount int64
	db.Model(&entity.Order{}).Count(&liveCount)
	if liveCount != 0 {
		t.Errorf("live orders = %d, want 0", liveCount)
	}

	hist, err := svc.Archive.ListHistorical(ctx)
	if err != nil {
		t.Fatalf("list historical: %v", err)
	}
	if len(hist) != 1 || hist[0].OrderNumber != order.OrderNumber {
		t.Fatalf("expected one historical order %q, got %+v", order.OrderNumber, hist)
	}
}

func TestUpdateOrderReplacesItems(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	customer := testutil.SeedCustomer(t, db, "Hotel Royal", "")

	order, err := svc.Order.Create(ctx, &CreateOrderRequest{
		CustomerID: customer.ID,
		Items: []OrderItemInput{
			{ProductName: "Matrac Komfort", Price: 100, Quantity: 1},
			{ProductName: "Matrac Klasik", Price: 50, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	kept := order.Items[0]
	updated, err := svc.Order.Update(ctx, order.ID, &UpdateOrderRequest{
		Items: []OrderItemInput{
			{ID: kept.ID, ProductID: kept.ProductID, ProductName: "Matrac Komfort Plus", Price: 110, Quantity: 1},
			{ProductName: "Vankúš", Price: 15, Quantity: 4},
		},
	})
	if err != nil {
		t.Fatalf("update order: %v", err)
	}

	if len(updated.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(updated.Items))
	}
	if updated.TotalPrice != 170 {
		t.Errorf("total = %v, want 170", updated.TotalPrice)
	}

	var gone entity.OrderItem
	err = db.First(&gone, order.Items[1].ID).Error
	if err == nil {
		t.Error("removed item still present")
	}
}

func TestFindByNumberFallsBackToHistorical(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	number := fmt.Sprintf("%s%03d", time.Now().Format("20060102"), 7)
	hist := &entity.HistoricalOrder{
		OrderNumber:      number,
		CustomerName:     "Hotel Royal",
		IssueDate:        time.Now(),
		ProductionStatus: entity.OrderStatusInvoiced,
	}
	if err := db.Create(hist).Error; err != nil {
		t.Fatalf("seed historical order: %v", err)
	}

	lookup, err := svc.Order.FindByNumber(ctx, number)
	if err != nil {
		t.Fatalf("find by number: %v", err)
	}
	if !lookup.Archived || lookup.Historical == nil {
		t.Fatalf("expected historical hit, got %+v", lookup)
	}

	_, err = svc.Order.FindByNumber(ctx, "19990101001")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestRecomputeSkipsWriteWhenUnchanged(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	customer := testutil.SeedCustomer(t, db, "Hotel Royal", "")

	order, err := svc.Order.Create(ctx, &CreateOrderRequest{
		CustomerID: customer.ID,
		Items: []OrderItemInput{
			{ProductName: "Matrac Komfort", Price: 10, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	before, err := svc.Order.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}

	if err := recomputeOrderTx(db, order.ID); err != nil {
		t.Fatalf("recompute: %v", err)
	}

	after, err := svc.Order.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if !after.UpdatedAt.Equal(before.UpdatedAt) {
		t.Errorf("updated_at changed on a no-op recompute: %v -> %v", before.UpdatedAt, after.UpdatedAt)
	}
	if after.ProductionStatus != before.ProductionStatus || after.TotalPrice != before.TotalPrice {
		t.Errorf("no-op recompute altered order: %+v -> %+v", before, after)
	}
}
