package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jakubrevaj/Matratex/internal/repository"
	"github.com/jakubrevaj/Matratex/internal/service"
)

// Handlers bundles all HTTP handlers for dependency injection.
type Handlers struct {
	Customer   *CustomerHandler
	Catalog    *CatalogHandler
	Order      *OrderHandler
	OrderItem  *OrderItemHandler
	Invoice    *InvoiceHandler
	Archive    *ArchiveHandler
	Production *ProductionHandler
}

func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Customer:   NewCustomerHandler(svc.Customer),
		Catalog:    NewCatalogHandler(svc.Catalog),
		Order:      NewOrderHandler(svc.Order, svc.Invoice, svc.Archive),
		OrderItem:  NewOrderItemHandler(svc.OrderItem),
		Invoice:    NewInvoiceHandler(svc.Invoice),
		Archive:    NewArchiveHandler(svc.Archive),
		Production: NewProductionHandler(svc.Production),
	}
}

// Response is the common JSON envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a 200 response.
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created writes a 201 response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error writes an error response; the HTTP status is the leading
// three digits of code.
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// HandleError maps service errors onto HTTP responses.
func HandleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidSplitQuantity),
		errors.Is(err, service.ErrNoCompletedItems),
		errors.Is(err, service.ErrCustomerRequired),
		errors.Is(err, service.ErrScanMismatch):
		BadRequest(c, err.Error())
	default:
		InternalError(c, err.Error())
	}
}

// idParam parses the :id path parameter.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}
