package httptransport

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	platformerrors "gallery-server/internal/platform/errors"
	"gallery-server/internal/platform/logging"
)

// RespondMessage writes the API's `{message}` envelope.
func RespondMessage(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, gin.H{"message": message})
}

// RespondError maps a domain error onto the wire. Client-caused errors
// (validation, auth, forbidden, notfound) surface their message;
// anything else is logged and reduced to a generic 500 so no internal
// detail leaks.
func RespondError(c *gin.Context, logger *logging.Logger, err error, fallback string) {
	status := platformerrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.ErrorTag("HTTP", "%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		RespondMessage(c, status, fallback)
		return
	}

	message := fallback
	var typed *platformerrors.Error
	if errors.As(err, &typed) && typed.Message != "" {
		message = typed.Message
	}
	RespondMessage(c, status, message)
}
