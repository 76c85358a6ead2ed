// internal/handlers/handlers.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/petbao/petbao-backend/internal/i18n"
	"github.com/petbao/petbao-backend/internal/services"
	"github.com/petbao/petbao-backend/internal/utils"
)

// respondServiceError maps the service error taxonomy onto HTTP responses.
// notFoundKey/invalidKey are the i18n keys used for the missing-resource and
// rejected-precondition cases of the endpoint at hand.
func respondServiceError(c *gin.Context, err error, notFoundKey, invalidKey string) {
	lang := utils.GetLangFromContext(c)

	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, notFoundKey)
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, "")
	case errors.Is(err, services.ErrInvalidState):
		utils.BadRequestResponse(c, i18n.T(lang, invalidKey), err.Error())
	default:
		utils.InternalErrorResponse(c, "")
	}
}
