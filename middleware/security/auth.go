package security

import (
	"net/http"
	"strings"

	"PairChat/tools/errs"
	"PairChat/tools/security"

	"github.com/gin-gonic/gin"
)

// context key for the authenticated user id (int64)
const CtxUserIDKey = "userID"

// Middleware verifies the bearer token and stores the user id in the
// request context. Requests without a valid token never reach the handler.
func Middleware(opts security.Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader("Authorization"))
		if strings.HasPrefix(strings.ToLower(token), "bearer ") {
			token = strings.TrimSpace(token[len("bearer "):])
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusOK, errs.ErrTokenInvalid)
			return
		}
		claims, err := security.Verify(opts, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusOK, errs.ErrTokenExpired)
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusOK, errs.ErrTokenInvalid)
			return
		}
		c.Set(CtxUserIDKey, userID)
		c.Next()
	}
}

// CurrentUserID reads the user id the middleware stored.
func CurrentUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(CtxUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
