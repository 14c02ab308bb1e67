// internal/handlers/catalog.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/services"
	"github.com/javajoker/storefront-backend/internal/utils"
)

// CatalogHandler serves the CRUD routes shared by categories,
// manufacturers and materials.
type CatalogHandler[T any, PT interface {
	*T
	models.NamedEntity
}] struct {
	service *services.CatalogService[T, PT]
}

func NewCatalogHandler[T any, PT interface {
	*T
	models.NamedEntity
}](service *services.CatalogService[T, PT]) *CatalogHandler[T, PT] {
	return &CatalogHandler[T, PT]{service: service}
}

func (h *CatalogHandler[T, PT]) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, items)
}

func (h *CatalogHandler[T, PT]) Create(c *gin.Context) {
	var req services.NamedEntityRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, item)
}

func (h *CatalogHandler[T, PT]) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.NamedEntityRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, item)
}

func (h *CatalogHandler[T, PT]) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	label := h.service.Label()
	utils.SuccessResponse(c, gin.H{"message": strings.ToUpper(label[:1]) + label[1:] + " deleted successfully"})
}

// Register mounts the routes on group; writes go through the given gates.
func (h *CatalogHandler[T, PT]) Register(group *gin.RouterGroup, writeGates ...gin.HandlerFunc) {
	group.GET("", h.List)

	protected := group.Group("")
	protected.Use(writeGates...)
	{
		protected.POST("", h.Create)
		protected.PUT("/:id", h.Update)
		protected.DELETE("/:id", h.Delete)
	}
}
