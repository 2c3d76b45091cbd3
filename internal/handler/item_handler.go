package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"stylescout-go/internal/service"
)

// CreateItem ingests one catalog item from a product URL, an uploaded
// image, manual fields, or any mix of the three.
func (h *Handlers) CreateItem(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Details: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}
	if req.URL == "" && req.ImageData == "" && req.Title == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Details: "one of url, image_data, or title is required",
			Code:    http.StatusBadRequest,
		})
		return
	}

	sub := service.ItemSubmission{
		URL:         req.URL,
		ImageData:   req.ImageData,
		Title:       req.Title,
		BrandName:   req.BrandName,
		Description: req.Description,
		Price:       req.Price,
		Size:        req.Size,
		Color:       req.Color,
		Category:    req.Category,
	}
	if req.PurchaseDate != "" {
		parsed, err := time.Parse("2006-01-02", req.PurchaseDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_request",
				Details: "purchase_date must be YYYY-MM-DD",
				Code:    http.StatusBadRequest,
			})
			return
		}
		sub.PurchaseDate = &parsed
	}

	userID := CurrentUserID(c)
	item, err := h.items.Ingest(c.Request.Context(), userID, sub)
	if err != nil {
		logrus.Errorf("Failed to ingest item for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "item_ingest_failed",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, ItemResponse{Success: true, Item: *item})
}

// ListItems returns the caller's catalog items, newest first.
func (h *Handlers) ListItems(c *gin.Context) {
	userID := CurrentUserID(c)
	items, err := h.repo.ListItems(userID)
	if err != nil {
		logrus.Errorf("Failed to list items for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "items_list_failed",
			Code:  http.StatusInternalServerError,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}
