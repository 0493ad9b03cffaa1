package middlewares

import (
	"net/http"
	"strings"

	"github.com/ChurchSite/models"
	"github.com/ChurchSite/services"
	"github.com/gin-gonic/gin"
)

const CurrentUserKey = "currentUser"

// CheckAuth rejects the request with 401 unless it carries a valid bearer
// token. The decoded identity is stored under CurrentUserKey.
func CheckAuth(tokens services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization header is missing"})
			return
		}

		authToken := strings.Split(authHeader, " ")
		if len(authToken) != 2 || authToken[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token format"})
			return
		}

		identity, err := tokens.ParseToken(authToken[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		c.Set(CurrentUserKey, identity)
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (models.Identity, bool) {
	value, exists := c.Get(CurrentUserKey)
	if !exists {
		return models.Identity{}, false
	}
	identity, ok := value.(models.Identity)
	return identity, ok
}
