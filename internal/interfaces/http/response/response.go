package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "github.com/Erik-List/ranked-capital/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. AppErrors carry their own HTTP status;
// bare sentinels are mapped here, anything else becomes a 500.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = fromSentinel(err)
	}

	body := gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	}
	if appErr.Field != "" {
		body["field"] = appErr.Field
	}
	c.JSON(appErr.Status, body)
}

func fromSentinel(err error) *domainerrors.AppError {
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound("resource not found")
	case errors.Is(err, domainerrors.ErrUnauthenticated):
		return domainerrors.Unauthenticated("authentication required")
	case errors.Is(err, domainerrors.ErrCredentials):
		return domainerrors.NewAppError(http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password", domainerrors.ErrCredentials)
	case errors.Is(err, domainerrors.ErrForbidden):
		return domainerrors.Forbidden("forbidden")
	case errors.Is(err, domainerrors.ErrInvalidTarget):
		return domainerrors.InvalidTarget("invalid target")
	case errors.Is(err, domainerrors.ErrValidation), errors.Is(err, domainerrors.ErrInvalidInput):
		return domainerrors.BadRequest("invalid input")
	case errors.Is(err, domainerrors.ErrConflict):
		return domainerrors.Conflict("conflict")
	default:
		return domainerrors.InternalError(err)
	}
}
