package middlewares

import (
	"context"
	"net/http"

	"bitbucket.org/lfkitchen/costing_backend/utils"
	"github.com/gin-gonic/gin"
)

type authString string

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.Request.Header.Get("Authorization")

		if auth == "" {
			c.Next()
			return
		}

		bearer := "Bearer "
		auth = auth[len(bearer):]

		validate, err := utils.JwtValidate(auth)
		if err != nil || !validate.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		customClaim, _ := validate.Claims.(*utils.JwtCustomClaim)

		ctx := context.WithValue(c.Request.Context(), authString("auth"), customClaim)
		ctx = utils.SetUserIdInContext(ctx, customClaim.ID)
		ctx = utils.SetUserEmailInContext(ctx, customClaim.Email)
		ctx = utils.SetUserNameInContext(ctx, customClaim.Name)
		ctx = utils.SetIsAdminInContext(ctx, customClaim.Role == "admin")
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func CtxValue(ctx context.Context) *utils.JwtCustomClaim {
	raw, _ := ctx.Value(authString("auth")).(*utils.JwtCustomClaim)
	return raw
}

// RequireAuth rejects requests that did not carry a valid token.
// AuthMiddleware lets anonymous requests pass so public routes work;
// protected groups mount this behind it.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CtxValue(c.Request.Context()) == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}
