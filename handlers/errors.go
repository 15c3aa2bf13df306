package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gebedsrooster/services/auth"
	"gebedsrooster/services/registration"
	"gebedsrooster/utils"
)

type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{registration.ErrSlotUnavailable, http.StatusConflict, "slot_unavailable"},
	{registration.ErrEmailMismatch, http.StatusForbidden, "email_mismatch"},
	{registration.ErrNotFound, http.StatusNotFound, "not_found"},
	{auth.ErrEmailInUse, http.StatusConflict, "email_in_use"},
	{auth.ErrUserNotFound, http.StatusNotFound, "user_not_found"},
	{auth.ErrWrongPassword, http.StatusUnauthorized, "wrong_password"},
	{auth.ErrInvalidToken, http.StatusUnauthorized, "invalid_token"},
	{auth.ErrWeakPassword, http.StatusBadRequest, "weak_password"},
	{auth.ErrInvalidResetCode, http.StatusBadRequest, "invalid_reset_code"},
	{auth.ErrUserDisabled, http.StatusForbidden, "user_disabled"},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "timeout"},
}

// respondError maps service errors to a status and an error code.
func respondError(c *gin.Context, err error) {
	var verr *registration.ValidationError
	if errors.As(err, &verr) {
		utils.JSONErrorResponse(c, http.StatusBadRequest, utils.ErrorResponse{
			Error:  "Invalid request",
			Code:   "invalid_request",
			Fields: verr.Fields,
		})
		return
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			utils.JSONError(c, m.status, m.code, m.target.Error())
			return
		}
	}
	getLogger(c).Error("request failed", zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "internal", "Internal server error")
}

func respondBindError(c *gin.Context, err error) {
	utils.JSONErrorResponse(c, http.StatusBadRequest, utils.ErrorResponse{
		Error:   "Invalid request payload",
		Code:    "invalid_request",
		Details: err.Error(),
	})
}
