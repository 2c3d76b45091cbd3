package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"stylescout-go/internal/model"
	"stylescout-go/internal/service"
)

// PutCredential stores or replaces the caller's mail account credential.
func (h *Handlers) PutCredential(c *gin.Context) {
	var req CredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Details: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	cred := &model.MailCredential{
		UserID:         CurrentUserID(c),
		AccountAddress: req.AccountAddress,
		AccessToken:    req.AccessToken,
		RefreshToken:   req.RefreshToken,
		ExpiresAt:      req.ExpiresAt,
		Scope:          req.Scope,
	}
	if err := h.repo.SaveCredential(cred); err != nil {
		logrus.Errorf("Failed to save credential for user %d: %v", cred.UserID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "credential_save_failed",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "account_address": cred.AccountAddress})
}

// ScanMail triggers one synchronous mail scan for the caller. A missing or
// unrefreshable credential maps to 401 so the client prompts the user to
// reconnect; provider and storage failures map to 500.
func (h *Handlers) ScanMail(c *gin.Context) {
	var req ScanRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_request",
				Details: err.Error(),
				Code:    http.StatusBadRequest,
			})
			return
		}
	}

	userID := CurrentUserID(c)
	result, err := h.scans.Scan(c.Request.Context(), userID, req.MaxResults)
	if err != nil {
		if errors.Is(err, service.ErrNoCredential) || errors.Is(err, service.ErrReconnectRequired) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "mail_account_reconnect_required",
				Details: err.Error(),
				Code:    http.StatusUnauthorized,
			})
			return
		}
		logrus.Errorf("Mail scan failed for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "scan_failed",
			Details: err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	resp := ScanResponse{
		ProcessedCount: result.ProcessedCount,
		Messages:       make([]MessageResponse, 0, len(result.Messages)),
	}
	now := h.now()
	for _, m := range result.Messages {
		resp.Messages = append(resp.Messages, messageResponse(m, now))
	}
	c.JSON(http.StatusOK, resp)
}

// ListMessages returns the caller's ingested messages, newest first.
func (h *Handlers) ListMessages(c *gin.Context) {
	userID := CurrentUserID(c)
	msgs, err := h.repo.ListMessages(userID)
	if err != nil {
		logrus.Errorf("Failed to list messages for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "messages_list_failed",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	responses := make([]MessageResponse, 0, len(msgs))
	now := h.now()
	for _, m := range msgs {
		responses = append(responses, messageResponse(m, now))
	}
	c.JSON(http.StatusOK, gin.H{"messages": responses, "count": len(responses)})
}
