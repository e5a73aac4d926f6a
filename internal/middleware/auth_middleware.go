package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	autherrors "campus-hr/internal/auth/errors"
	"campus-hr/internal/shared/contextutil"
	"campus-hr/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			errObj := autherrors.ErrInvalidToken
			if err != nil && strings.Contains(err.Error(), "expired") {
				errObj = autherrors.ErrTokenExpired
			}
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		personID, ok := claims["person_id"].(string)
		if !ok || personID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Person ID not found in token", nil)
			c.Abort()
			return
		}

		role, _ := claims["role"].(string)
		position, _ := claims["position"].(string)

		c.Set("user_id", personID)
		c.Set("person_id", personID)
		c.Set("role", role)
		c.Set("position", position)

		ctx := contextutil.WithUserID(c.Request.Context(), personID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
