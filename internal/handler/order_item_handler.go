package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jakubrevaj/Matratex/internal/entity"
	"github.com/jakubrevaj/Matratex/internal/service"
)

type OrderItemHandler struct {
	svc *service.OrderItemService
}

func NewOrderItemHandler(svc *service.OrderItemService) *OrderItemHandler {
	return &OrderItemHandler{svc: svc}
}

// Create adds an item to the order in the :id path parameter.
func (h *OrderItemHandler) Create(c *gin.Context) {
	orderID, ok := idParam(c)
	if !ok {
		return
	}
	var input service.OrderItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}
	item, err := h.svc.Create(c.Request.Context(), orderID, &input)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, item)
}

// ListByOrder returns the items of the order in the :id path parameter.
func (h *OrderItemHandler) ListByOrder(c *gin.Context) {
	orderID, ok := idParam(c)
	if !ok {
		return
	}
	items, err := h.svc.ListByOrder(c.Request.Context(), orderID)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, items)
}

// Get resolves live items first and archived ones second.
func (h *OrderItemHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	lookup, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, lookup)
}

func (h *OrderItemHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input service.OrderItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, err.Error())
		return
	}
	item, err := h.svc.Update(c.Request.Context(), id, &input)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, item)
}

type updateStatusRequest struct {
	Status entity.ItemStatus `json:"status" binding:"required"`
}

func (h *OrderItemHandler) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	item, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, item)
}

func (h *OrderItemHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}

type splitRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// Split carves part of the item's quantity into a new item and
// returns both, the shrunk original first.
func (h *OrderItemHandler) Split(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req splitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	items, err := h.svc.Split(c.Request.Context(), id, req.Quantity)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, items)
}

// SplitAndInvoice splits and starts the new item invoiced.
func (h *OrderItemHandler) SplitAndInvoice(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req splitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	items, err := h.svc.SplitAndInvoice(c.Request.Context(), id, req.Quantity)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, items)
}
