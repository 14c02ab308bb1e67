// internal/handlers/favorite.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront-backend/internal/services"
	"github.com/javajoker/storefront-backend/internal/utils"
)

type FavoriteHandler struct {
	favoriteService *services.FavoriteService
}

func NewFavoriteHandler(favoriteService *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// GET /favorites
func (h *FavoriteHandler) GetFavorites(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	products, err := h.favoriteService.ListFavorites(c.Request.Context(), actor.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, products)
}

// POST /favorites/:productId
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	productID, ok := parseID(c, "productId")
	if !ok {
		return
	}

	favorite, err := h.favoriteService.AddFavorite(c.Request.Context(), actor.UserID, productID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, favorite)
}

// DELETE /favorites/:productId
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	productID, ok := parseID(c, "productId")
	if !ok {
		return
	}

	removed, err := h.favoriteService.RemoveFavorite(c.Request.Context(), actor.UserID, productID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Favorite removed",
		"removed": removed,
	})
}
