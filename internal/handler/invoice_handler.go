package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jakubrevaj/Matratex/internal/service"
)

type InvoiceHandler struct {
	svc *service.InvoiceService
}

func NewInvoiceHandler(svc *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{svc: svc}
}

func (h *InvoiceHandler) List(c *gin.Context) {
	invoices, err := h.svc.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, invoices)
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	invoice, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, invoice)
}

// CreateManual issues an invoice that has no backing order.
func (h *InvoiceHandler) CreateManual(c *gin.Context) {
	var req service.ManualInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	invoice, err := h.svc.CreateManual(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, invoice)
}

func (h *InvoiceHandler) Patch(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req service.PatchInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	invoice, err := h.svc.Patch(c.Request.Context(), id, &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, invoice)
}

// PDF streams the rendered invoice. ?vat=true adds the VAT columns.
func (h *InvoiceHandler) PDF(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	withVAT := c.Query("vat") == "true"
	data, err := h.svc.RenderPDF(c.Request.Context(), id, withVAT)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Data(200, "application/pdf", data)
}
