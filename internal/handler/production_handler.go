package handler

import (
	"encoding/base64"

	"github.com/gin-gonic/gin"

	"github.com/jakubrevaj/Matratex/internal/service"
)

type ProductionHandler struct {
	svc *service.ProductionService
}

func NewProductionHandler(svc *service.ProductionService) *ProductionHandler {
	return &ProductionHandler{svc: svc}
}

// Queue lists items queued for or in production.
func (h *ProductionHandler) Queue(c *gin.Context) {
	items, err := h.svc.Queue(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, items)
}

// MoveAll sends every queued item into production and returns the
// generated label sheet and summary, base64 encoded.
func (h *ProductionHandler) MoveAll(c *gin.Context) {
	result, err := h.svc.MoveAllToProduction(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{
		"moved":       result.Moved,
		"labels_pdf":  base64.StdEncoding.EncodeToString(result.LabelsPDF),
		"summary_pdf": base64.StdEncoding.EncodeToString(result.SummaryPDF),
	})
}

type scanRequest struct {
	Code string `json:"code" binding:"required"`
}

// Scan records one produced unit from a scanned label barcode.
func (h *ProductionHandler) Scan(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	item, err := h.svc.Scan(c.Request.Context(), req.Code)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, item)
}
