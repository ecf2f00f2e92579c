package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jakubrevaj/Matratex/internal/service"
)

type OrderHandler struct {
	orders   *service.OrderService
	invoices *service.InvoiceService
	archive  *service.ArchiveService
}

func NewOrderHandler(orders *service.OrderService, invoices *service.InvoiceService, archive *service.ArchiveService) *OrderHandler {
	return &OrderHandler{orders: orders, invoices: invoices, archive: archive}
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	order, err := h.orders.Create(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, order)
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	order, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, order)
}

// GetByNumber searches live orders first and archived ones second.
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	lookup, err := h.orders.FindByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, lookup)
}

func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req service.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	order, err := h.orders.Update(c.Request.Context(), id, &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, order)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}

// Invoice bills every completed item of the order.
func (h *OrderHandler) Invoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req service.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	invoice, err := h.invoices.CreateForOrder(c.Request.Context(), id, &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, invoice)
}

// ArchiveNow archives the order immediately instead of waiting for
// the nightly sweep.
func (h *OrderHandler) ArchiveNow(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	hist, err := h.archive.ArchiveOrder(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, hist)
}
