package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jakubrevaj/Matratex/internal/entity"
	"github.com/jakubrevaj/Matratex/internal/service"
)

type CustomerHandler struct {
	svc *service.CustomerService
}

func NewCustomerHandler(svc *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var customer entity.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := h.svc.Create(c.Request.Context(), &customer); err != nil {
		HandleError(c, err)
		return
	}
	Created(c, customer)
}

func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, customers)
}

func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	customer, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, customer)
}

// GetOrders returns the customer with their live orders.
func (h *CustomerHandler) GetOrders(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	customer, err := h.svc.GetWithOrders(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, customer)
}

func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var customer entity.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		BadRequest(c, err.Error())
		return
	}
	customer.ID = id
	if err := h.svc.Update(c.Request.Context(), &customer); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, customer)
}

func (h *CustomerHandler) Delete(c *gin.Context) {
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
