package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jakubrevaj/Matratex/internal/service"
)

type ArchiveHandler struct {
	svc *service.ArchiveService
}

func NewArchiveHandler(svc *service.ArchiveService) *ArchiveHandler {
	return &ArchiveHandler{svc: svc}
}

// ListOrders returns archived orders, newest first.
func (h *ArchiveHandler) ListOrders(c *gin.Context) {
	orders, err := h.svc.ListHistorical(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, orders)
}

func (h *ArchiveHandler) GetOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	order, err := h.svc.GetHistorical(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, order)
}

// ListItems returns the per-item archive snapshots.
func (h *ArchiveHandler) ListItems(c *gin.Context) {
	items, err := h.svc.ListArchivedItems(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, items)
}

// GetItem returns the archive snapshot for an original item id, so
// scanned labels keep resolving after the order is archived.
func (h *ArchiveHandler) GetItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	item, err := h.svc.GetArchivedItem(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, item)
}

// Sweep archives every fully invoiced order on demand, the same
// operation the nightly job runs.
func (h *ArchiveHandler) Sweep(c *gin.Context) {
	archived, err := h.svc.ArchiveAllInvoiced(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"archived": archived})
}
