package middleware

import (
	"fmt"
	"strings"

	"staffing-site-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const adminRole = "admin"

// AdminAuth requires an unexpired HS256 bearer token with role=admin.
// An empty secret leaves the route open. Rejections are attached with c.Error
// and rendered by ErrorHandler.
func AdminAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			_ = c.Error(apperror.Unauthorized("Authorization header required"))
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			_ = c.Error(apperror.Unauthorized("Invalid token"))
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			_ = c.Error(apperror.Unauthorized("Invalid claims"))
			c.Abort()
			return
		}

		role, _ := claims["role"].(string)
		if role != adminRole {
			_ = c.Error(apperror.Forbidden("Admin access required"))
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		c.Set("AdminSubject", sub)
		c.Next()
	}
}
