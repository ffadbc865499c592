package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	domainerrors "profile-api.backend/internal/domain/errors"
	"profile-api.backend/internal/interfaces/http/response"
)

// Recovery turns a panic in the handler chain into a 500 INTERNAL_ERROR body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		response.Error(c, domainerrors.InternalError(fmt.Errorf("panic: %v", recovered)))
	})
}

// RouteNotFound answers requests no route matched.
func RouteNotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Error(c, domainerrors.NotFound(domainerrors.CodeRouteNotFound,
			fmt.Sprintf("Route %s %s not found", c.Request.Method, c.Request.URL.Path)))
	}
}
