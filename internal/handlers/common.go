// internal/handlers/common.go
package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-backend/internal/services"
	"github.com/javajoker/storefront-backend/internal/utils"
)

// bindJSON decodes and validates the body, writing the error response
// itself when either step fails.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return false
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}
	return true
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		utils.BadRequestResponse(c, "Invalid "+param, nil)
		return 0, false
	}
	return uint(id), true
}

func currentActor(c *gin.Context) (services.Actor, bool) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return services.Actor{}, false
	}
	role, _ := utils.GetRoleFromContext(c)
	return services.Actor{UserID: userID, Role: role}, true
}

// respondError maps service errors onto the HTTP error taxonomy.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
			utils.ValidationErrorResponse(c, validationErrors)
			return
		}
		utils.BadRequestResponse(c, publicMessage(err, services.ErrValidation), nil)
	case errors.Is(err, services.ErrUnauthorized):
		utils.UnauthorizedResponse(c, publicMessage(err, services.ErrUnauthorized))
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, publicMessage(err, services.ErrForbidden))
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, publicMessage(err, services.ErrNotFound))
	case errors.Is(err, services.ErrConflict):
		utils.ConflictResponse(c, publicMessage(err, services.ErrConflict))
	default:
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("Unhandled service error")
		utils.InternalErrorResponse(c, "")
	}
}

// publicMessage drops the leading "<kind>: " that wrapping adds.
func publicMessage(err, kind error) string {
	return strings.TrimPrefix(err.Error(), kind.Error()+": ")
}
