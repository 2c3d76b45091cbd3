package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ListSuppressedBrands returns the caller's brand opt-out set.
func (h *Handlers) ListSuppressedBrands(c *gin.Context) {
	userID := CurrentUserID(c)
	brands, err := h.repo.ListSuppressedBrands(userID)
	if err != nil {
		logrus.Errorf("Failed to list suppressed brands for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "brands_list_failed",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	names := make([]string, 0, len(brands))
	for _, b := range brands {
		names = append(names, b.BrandName)
	}
	c.JSON(http.StatusOK, gin.H{"brands": names, "count": len(names)})
}

// SuppressBrand adds a brand to the caller's opt-out set. Future scans drop
// messages from it; already ingested messages are untouched.
func (h *Handlers) SuppressBrand(c *gin.Context) {
	var req SuppressBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Details: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	userID := CurrentUserID(c)
	if err := h.repo.SuppressBrand(userID, req.BrandName); err != nil {
		logrus.Errorf("Failed to suppress brand %q for user %d: %v", req.BrandName, userID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "brand_suppress_failed",
			Code:  http.StatusInternalServerError,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "brand_name": req.BrandName})
}

// UnsuppressBrand removes a brand from the caller's opt-out set.
func (h *Handlers) UnsuppressBrand(c *gin.Context) {
	brand := c.Param("brand")
	if brand == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Details: "brand path parameter is required",
			Code:    http.StatusBadRequest,
		})
		return
	}

	userID := CurrentUserID(c)
	if err := h.repo.UnsuppressBrand(userID, brand); err != nil {
		logrus.Errorf("Failed to unsuppress brand %q for user %d: %v", brand, userID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "brand_unsuppress_failed",
			Code:  http.StatusInternalServerError,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "brand_name": brand})
}
