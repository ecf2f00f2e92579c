package handler

import (
	"fmt"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jakubrevaj/Matratex/internal/config"
	"github.com/jakubrevaj/Matratex/internal/repository"
	"github.com/jakubrevaj/Matratex/internal/service"
	"github.com/jakubrevaj/Matratex/internal/storage"
	"github.com/jakubrevaj/Matratex/internal/testutil"
)

func setupTestAPI(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	store, err := storage.New(config.MinIOConfig{LocalDir: t.TempDir()})
	if err != nil {
		t.Fatalf("init storage: %v", err)
	}
	cfg := &config.Config{
		Invoice: config.InvoiceConfig{
			SupplierName: "Matratex s.r.o.",
			IBAN:         "SK2202000000001572951551",
			VATRate:      0.23,
			DueDays:      14,
		},
	}

	services := service.NewServices(db, repository.NewRepositories(db), store, cfg, zap.NewNop())
	h := NewHandlers(services)

	r := testutil.SetupRouter()
	v1 := r.Group("/api/v1")
	orders := v1.Group("/orders")
	orders.GET("", h.Order.List)
	orders.POST("", h.Order.Create)
	orders.GET("/:id", h.Order.Get)
	orders.POST("/:id/invoice", h.Order.Invoice)
	items := v1.Group("/order-items")
	items.POST("/:id/split", h.OrderItem.Split)
	return r, db
}

func TestOrderEndpoints(t *testing.T) {
	r, db := setupTestAPI(t)
	customer := testutil.SeedCustomer(t, db, "Hotel Royal", "12345678")

	w := testutil.DoRequest(r, "POST", "/api/v1/orders", map[string]interface{}{
		"customer_id": customer.ID,
		"order_items": []map[string]interface{}{
			{"product_name": "Matrac Komfort", "price": 120, "quantity": 2, "status": "completed"},
		},
	})
	if w.Code != 201 {
		t.Fatalf("create order: status %d, body %s", w.Code, w.Body.String())
	}
	created := testutil.ParseResponse(w)
	data := created["data"].(map[string]interface{})
	orderID := uint(data["id"].(float64))
	if data["total_price"].(float64) != 240 {
		t.Errorf("total = %v, want 240", data["total_price"])
	}

	w = testutil.DoRequest(r, "GET", fmt.Sprintf("/api/v1/orders/%d", orderID), nil)
	if w.Code != 200 {
		t.Fatalf("get order: status %d", w.Code)
	}

	w = testutil.DoRequest(r, "POST", fmt.Sprintf("/api/v1/orders/%d/invoice", orderID), map[string]interface{}{
		"issued_by": "jv",
	})
	if w.Code != 201 {
		t.Fatalf("invoice order: status %d, body %s", w.Code, w.Body.String())
	}
	invoice := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if invoice["total_price"].(float64) != 240 {
		t.Errorf("invoice total = %v, want 240", invoice["total_price"])
	}

	w = testutil.DoRequest(r, "GET", "/api/v1/orders/999999", nil)
	if w.Code != 404 {
		t.Errorf("missing order: status %d, want 404", w.Code)
	}
}

func TestSplitEndpointValidation(t *testing.T) {
	r, db := setupTestAPI(t)
	customer := testutil.SeedCustomer(t, db, "Hotel Royal", "")

	w := testutil.DoRequest(r, "POST", "/api/v1/orders", map[string]interface{}{
		"customer_id": customer.ID,
		"order_items": []map[string]interface{}{
			{"product_name": "Matrac Komfort", "price": 10, "quantity": 5},
		},
	})
	if w.Code != 201 {
		t.Fatalf("create order: status %d", w.Code)
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	items := data["order_items"].([]interface{})
	itemID := uint(items[0].(map[string]interface{})["id"].(float64))

	w = testutil.DoRequest(r, "POST", fmt.Sprintf("/api/v1/order-items/%d/split", itemID), map[string]interface{}{
		"quantity": 5,
	})
	if w.Code != 400 {
		t.Errorf("oversized split: status %d, want 400", w.Code)
	}

	w = testutil.DoRequest(r, "POST", fmt.Sprintf("/api/v1/order-items/%d/split", itemID), map[string]interface{}{
		"quantity": 2,
	})
	if w.Code != 201 {
		t.Errorf("valid split: status %d, want 201, body %s", w.Code, w.Body.String())
	}
	pair := testutil.ParseResponse(w)["data"].([]interface{})
	if len(pair) != 2 {
		t.Fatalf("split response items = %d, want 2", len(pair))
	}
	first := pair[0].(map[string]interface{})
	if uint(first["id"].(float64)) != itemID {
		t.Errorf("first split response item id = %v, want original %d", first["id"], itemID)
	}
	if int(first["quantity"].(float64)) != 3 {
		t.Errorf("original quantity after split = %v, want 3", first["quantity"])
	}
}
