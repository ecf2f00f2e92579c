package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jakubrevaj/Matratex/internal/entity"
	"github.com/jakubrevaj/Matratex/internal/service"
)

type CatalogHandler struct {
	svc *service.CatalogService
}

func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) CreateMattress(c *gin.Context) {
	var mattress entity.Mattress
	if err := c.ShouldBindJSON(&mattress); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := h.svc.CreateMattress(c.Request.Context(), &mattress); err != nil {
		HandleError(c, err)
		return
	}
	Created(c, mattress)
}

func (h *CatalogHandler) ListMattresses(c *gin.Context) {
	mattresses, err := h.svc.ListMattresses(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, mattresses)
}

func (h *CatalogHandler) GetMattress(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	mattress, err := h.svc.GetMattress(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, mattress)
}

func (h *CatalogHandler) UpdateMattress(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var mattress entity.Mattress
	if err := c.ShouldBindJSON(&mattress); err != nil {
		BadRequest(c, err.Error())
		return
	}
	mattress.ID = id
	if err := h.svc.UpdateMattress(c.Request.Context(), &mattress); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, mattress)
}

func (h *CatalogHandler) DeleteMattress(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteMattress(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}

// Price quotes a mattress price for custom dimensions.
func (h *CatalogHandler) Price(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	length, err := strconv.ParseFloat(c.Query("length"), 64)
	if err != nil {
		BadRequest(c, "invalid length")
		return
	}
	width, err := strconv.ParseFloat(c.Query("width"), 64)
	if err != nil {
		BadRequest(c, "invalid width")
		return
	}

	price, err := h.svc.PriceFor(c.Request.Context(), id, length, width)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"price": price})
}

func (h *CatalogHandler) CreateMaterial(c *gin.Context) {
	var material entity.Material
	if err := c.ShouldBindJSON(&material); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := h.svc.CreateMaterial(c.Request.Context(), &material); err != nil {
		HandleError(c, err)
		return
	}
	Created(c, material)
}

func (h *CatalogHandler) ListMaterials(c *gin.Context) {
	materials, err := h.svc.ListMaterials(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, materials)
}

func (h *CatalogHandler) DeleteMaterial(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteMaterial(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}
