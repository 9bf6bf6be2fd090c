package middleware

import (
	"net/http"
	"strings"

	"github.com/fatihtunali/travelquotebot/pkg/utils"
	"github.com/gin-gonic/gin"
)

const OperatorIDKey = "operator_id"

// OperatorAuthMiddleware accepts a bearer token, or the web app's session
// cookie, and stores the token's operator id on the context. An empty secret
// disables auth for deployments that sit behind the web app only.
func OperatorAuthMiddleware(secret string) gin.HandlerFunc {
	if secret == "" {
		return func(c *gin.Context) { c.Next() }
	}
	key := []byte(secret)

	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		claims, err := utils.ValidateOperatorToken(key, tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(OperatorIDKey, claims.OperatorID)
		c.Set("Role", claims.Role)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := c.Cookie("tqb_token"); err == nil {
		return cookie
	}
	return ""
}

// OperatorAllowed reports whether the authenticated operator, if any, may act
// for operatorID.
func OperatorAllowed(c *gin.Context, operatorID string) bool {
	authed, ok := c.Get(OperatorIDKey)
	if !ok {
		return true
	}
	return authed.(string) == operatorID
}
