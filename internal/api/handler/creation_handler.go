package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/quickai/internal/api/middleware"
	"github.com/d60-Lab/quickai/pkg/response"
)

type toggleLikeRequest struct {
	ID int64 `json:"id" binding:"required"`
}

// GetUserCreations lists the caller's creations, newest first.
// @Summary List own creations
// @Tags user
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/user/get-user-creations [get]
func (h *Handler) GetUserCreations(c *gin.Context) {
	creations, err := h.creations.ListByUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		failFromError(c, "Error fetching creations", err)
		return
	}
	response.Success(c, gin.H{"creations": creations})
}

// GetPublishedCreations lists all published creations, newest first.
// @Summary List published creations
// @Tags user
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/user/get-published-creations [get]
func (h *Handler) GetPublishedCreations(c *gin.Context) {
	creations, err := h.creations.ListPublished(c.Request.Context())
	if err != nil {
		failFromError(c, "Error fetching creations", err)
		return
	}
	response.Success(c, gin.H{"creations": creations})
}

// ToggleLikeCreation likes a creation, or unlikes it if already liked.
// @Summary Toggle like on a creation
// @Tags user
// @Accept json
// @Produce json
// @Param request body toggleLikeRequest true "creation id"
// @Success 200 {object} map[string]interface{}
// @Router /api/user/toggle-like-creations [post]
func (h *Handler) ToggleLikeCreation(c *gin.Context) {
	var req toggleLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FailErr(c, "Error updating like", err)
		return
	}
	liked, err := h.creations.ToggleLike(c.Request.Context(), req.ID, middleware.UserID(c))
	if err != nil {
		failFromError(c, "Error updating like", err)
		return
	}
	message := "Creation disliked successfully"
	if liked {
		message = "Creation liked successfully"
	}
	response.Success(c, gin.H{"message": message})
}
