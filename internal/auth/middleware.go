package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SharerUserHeader carries the acting user's id when no bearer token is used.
const SharerUserHeader = "X-Sharer-User-Id"

// ActorRequired resolves the acting user's identity and stores it in the
// request context. Identity arrives out-of-band: either as a signed
// Authorization: Bearer <token>, or as the plain X-Sharer-User-Id header.
// A request carrying neither is rejected.
func ActorRequired(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "invalid Authorization header format",
				})
				return
			}

			claims, err := jwtManager.ParseAndValidate(parts[1])
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "invalid or expired token",
				})
				return
			}

			setActorID(c, claims.UserID)
			c.Next()
			return
		}

		if id := c.GetHeader(SharerUserHeader); id != "" {
			if _, err := uuid.Parse(id); err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "invalid " + SharerUserHeader + " header",
				})
				return
			}
			setActorID(c, id)
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization or " + SharerUserHeader + " header",
		})
	}
}
