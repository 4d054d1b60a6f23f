package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/magallanes/coursecatalog/internal/app/models/dto"
	"github.com/magallanes/coursecatalog/internal/pkg/apperrors"
	"github.com/magallanes/coursecatalog/internal/pkg/logger"
)

// HandleAPIError logs err and answers with the generic 500 body. The cause is
// never written to the response.
func HandleAPIError(c *gin.Context, err error) {
	_ = c.Error(err)
	event := logger.Error().
		Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("requestId", c.GetString(RequestIDKey)).
		Bool("catalogUnavailable", apperrors.Is(err, apperrors.ErrQuery, apperrors.ErrLoad))

	var custom *apperrors.CustomError
	if errors.As(err, &custom) && len(custom.Details) > 0 {
		event = event.Fields(custom.Details)
	}
	event.Msg("Request failed")

	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewInternalErrorResponse())
}

// Recovery converts panics in later handlers into the generic 500 body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered interface{}) {
		HandleAPIError(c, fmt.Errorf("panic: %v", recovered))
	})
}
